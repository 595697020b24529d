package id

import (
	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// IsTraceID s is a canonical uuid
func IsTraceID(s string) bool {
	id, err := uuid.FromString(s)
	return err == nil && id.String() == s
}
