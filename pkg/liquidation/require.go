package liquidation

import (
	"liquidator/core"

	"github.com/pkg/errors"
)

// Require returns code annotated with msg when condition is false
func Require(condition bool, msg string, code core.ErrorCode) error {
	if condition {
		return nil
	}

	return errors.Wrap(code, msg)
}
