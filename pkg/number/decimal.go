package number

import (
	"github.com/shopspring/decimal"
)

// Decimal parse v, invalid input yields zero
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Pow10 10^n
func Pow10(n int32) decimal.Decimal {
	return decimal.New(1, n)
}
