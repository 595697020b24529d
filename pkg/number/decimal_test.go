package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestDecimal(t *testing.T) {
	data := map[string]string{
		"100":     "100",
		"1e18":    "1000000000000000000",
		"-42":     "-42",
		"invalid": "0",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Decimal(k).String(), "should parse")
		})
	}
}

func TestPow10(t *testing.T) {
	assert.Equal(t, "100000000", Pow10(8).String())
	assert.Equal(t, "10000000000", Pow10(10).String())
}
