package number

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrOverflow value outside the int256 range
	ErrOverflow = errors.New("number: int256 overflow")
	// ErrDivisionByZero division by zero
	ErrDivisionByZero = errors.New("number: division by zero")
	// ErrNotInteger value with a fractional part
	ErrNotInteger = errors.New("number: not an integer")
)

var (
	// MaxInt256 2^255 - 1
	MaxInt256 = decimal.NewFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1)), 0)
	// MinInt256 -2^255
	MinInt256 = decimal.NewFromBigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255)), 0)
)

// Check d must be an integer inside the int256 range
func Check(d decimal.Decimal) error {
	if !d.IsInteger() {
		return ErrNotInteger
	}

	if d.GreaterThan(MaxInt256) || d.LessThan(MinInt256) {
		return ErrOverflow
	}

	return nil
}

// Quo integer division truncated toward zero
func Quo(a, b decimal.Decimal) (decimal.Decimal, error) {
	return Of(a).Div(b).Result()
}

// MulDiv a * b / c, truncated toward zero
func MulDiv(a, b, c decimal.Decimal) (decimal.Decimal, error) {
	return Of(a).Mul(b).Div(c).Result()
}

// Expr chained int256 arithmetic. The first failure sticks and
// every later step is skipped.
type Expr struct {
	v   decimal.Decimal
	err error
}

// Of start an expression from d
func Of(d decimal.Decimal) Expr {
	return Expr{v: d, err: Check(d)}
}

func (e Expr) apply(d decimal.Decimal, f func(a, b decimal.Decimal) (decimal.Decimal, error)) Expr {
	if e.err != nil {
		return e
	}

	if err := Check(d); err != nil {
		return Expr{err: err}
	}

	v, err := f(e.v, d)
	if err == nil {
		err = Check(v)
	}

	if err != nil {
		return Expr{err: err}
	}

	return Expr{v: v}
}

// Add e + d
func (e Expr) Add(d decimal.Decimal) Expr {
	return e.apply(d, func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Add(b), nil
	})
}

// Sub e - d
func (e Expr) Sub(d decimal.Decimal) Expr {
	return e.apply(d, func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Sub(b), nil
	})
}

// Mul e * d
func (e Expr) Mul(d decimal.Decimal) Expr {
	return e.apply(d, func(a, b decimal.Decimal) (decimal.Decimal, error) {
		return a.Mul(b), nil
	})
}

// Div e / d truncated toward zero
func (e Expr) Div(d decimal.Decimal) Expr {
	return e.apply(d, func(a, b decimal.Decimal) (decimal.Decimal, error) {
		if b.IsZero() {
			return decimal.Zero, ErrDivisionByZero
		}

		q, _ := a.QuoRem(b, 0)
		return q, nil
	})
}

// Neg -e
func (e Expr) Neg() Expr {
	return e.apply(decimal.Zero, func(a, _ decimal.Decimal) (decimal.Decimal, error) {
		return a.Neg(), nil
	})
}

// Result value and the first error met
func (e Expr) Result() (decimal.Decimal, error) {
	if e.err != nil {
		return decimal.Zero, e.err
	}

	return e.v, nil
}
