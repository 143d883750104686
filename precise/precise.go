// Package precise implements the fixed-point arithmetic that backs every
// bonding-curve calculation. A Number is a non-negative rational stored as an
// integer scaled by 10^12, with all operations checked against a 256-bit
// inner width so that adversarial inputs surface as errors instead of
// silently wrapping.
package precise

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

const (
	// decimalPlaces is the number of base-10 digits kept to the right of the
	// point. 10^12 gives enough headroom to square 64-bit reserve balances
	// inside the 256-bit inner width.
	decimalPlaces = 12

	// sqrtIterations caps the Newton iteration for square roots. The initial
	// guess is within a factor of two of the true root, so convergence takes
	// a handful of rounds; the cap only matters for the terminal oscillation
	// between adjacent integers.
	sqrtIterations = 100
)

var (
	scale      = new(big.Int).Exp(big.NewInt(10), big.NewInt(decimalPlaces), nil)
	halfScale  = new(big.Int).Quo(scale, big.NewInt(2))
	maxInner   = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	maxUnscale = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// Number is an immutable non-negative fixed-point value. The zero value is
// usable and equal to zero.
type Number struct {
	value *big.Int
}

// New builds a Number equal to the given integer amount.
func New(amount sdkmath.Int) (Number, error) {
	if amount.IsNil() {
		return Number{}, ErrOverflow.Wrap("uninitialized amount")
	}
	return NewFromBigInt(amount.BigInt())
}

// NewFromBigInt builds a Number equal to the given integer amount. The input
// is copied, not retained.
func NewFromBigInt(amount *big.Int) (Number, error) {
	if amount.Sign() < 0 {
		return Number{}, ErrUnderflow.Wrap("negative amount")
	}
	v := new(big.Int).Mul(amount, scale)
	if v.Cmp(maxInner) > 0 {
		return Number{}, ErrOverflow.Wrapf("%s does not fit the inner width", amount)
	}
	return Number{value: v}, nil
}

// NewFromUint64 builds a Number equal to the given integer amount. A uint64
// always fits the inner width.
func NewFromUint64(amount uint64) Number {
	v := new(big.Int).SetUint64(amount)
	return Number{value: v.Mul(v, scale)}
}

func (n Number) raw() *big.Int {
	if n.value == nil {
		return new(big.Int)
	}
	return n.value
}

// Add returns n + rhs, failing when the sum exceeds the inner width.
func (n Number) Add(rhs Number) (Number, error) {
	v := new(big.Int).Add(n.raw(), rhs.raw())
	if v.Cmp(maxInner) > 0 {
		return Number{}, ErrOverflow.Wrap("addition overflow")
	}
	return Number{value: v}, nil
}

// Sub returns n - rhs, failing when the result would be negative.
func (n Number) Sub(rhs Number) (Number, error) {
	v := new(big.Int).Sub(n.raw(), rhs.raw())
	if v.Sign() < 0 {
		return Number{}, ErrUnderflow.Wrap("subtraction underflow")
	}
	return Number{value: v}, nil
}

// Mul returns n * rhs truncated toward zero. When the full double-scaled
// product would exceed the inner width, the larger operand is unscaled first,
// trading precision for range instead of failing outright.
func (n Number) Mul(rhs Number) (Number, error) {
	a, b := n.raw(), rhs.raw()
	product := new(big.Int).Mul(a, b)
	if product.Cmp(maxInner) <= 0 {
		return Number{value: product.Quo(product, scale)}, nil
	}
	hi, lo := a, b
	if hi.Cmp(lo) < 0 {
		hi, lo = lo, hi
	}
	v := new(big.Int).Quo(hi, scale)
	v.Mul(v, lo)
	if v.Cmp(maxInner) > 0 {
		return Number{}, ErrOverflow.Wrap("multiplication overflow")
	}
	return Number{value: v}, nil
}

// Div returns n / rhs truncated toward zero, with the same scale-first
// fallback as Mul when the scaled numerator would exceed the inner width.
func (n Number) Div(rhs Number) (Number, error) {
	if rhs.IsZero() {
		return Number{}, ErrDivideByZero
	}
	scaled := new(big.Int).Mul(n.raw(), scale)
	if scaled.Cmp(maxInner) <= 0 {
		return Number{value: scaled.Quo(scaled, rhs.raw())}, nil
	}
	v := new(big.Int).Quo(n.raw(), rhs.raw())
	v.Mul(v, scale)
	if v.Cmp(maxInner) > 0 {
		return Number{}, ErrOverflow.Wrap("division overflow")
	}
	return Number{value: v}, nil
}

// Sqrt returns the square root of n at full scale. The result r satisfies
// r*r <= n < (r+epsilon)*(r+epsilon) at the scale's resolution; it never
// overestimates, so squaring the result cannot exceed the input.
func (n Number) Sqrt() (Number, error) {
	if n.IsZero() {
		return Number{value: new(big.Int)}, nil
	}
	// The root of a value scaled by 10^12 is the integer root of the value
	// scaled by 10^24, itself scaled back by 10^12.
	target := new(big.Int).Mul(n.raw(), scale)
	// Start from 2^ceil(bits/2), which is at least the true root and at most
	// twice it, so the descent is short.
	guess := new(big.Int).Lsh(big.NewInt(1), uint(target.BitLen()+1)/2)
	root, err := Converge(guess, sqrtIterations, func(current *big.Int) (*big.Int, error) {
		next := new(big.Int).Quo(target, current)
		next.Add(next, current)
		return next.Rsh(next, 1), nil
	})
	if err != nil {
		return Number{}, err
	}
	// Newton with integer division can land one above or below the true
	// floor root; settle on the exact floor.
	for new(big.Int).Mul(root, root).Cmp(target) > 0 {
		root.Sub(root, big.NewInt(1))
	}
	for next := new(big.Int).Add(root, big.NewInt(1)); new(big.Int).Mul(next, next).Cmp(target) <= 0; next.Add(next, big.NewInt(1)) {
		root.Set(next)
	}
	return Number{value: root}, nil
}

// Floor truncates n to its integer part.
func (n Number) Floor() Number {
	v := new(big.Int).Set(n.raw())
	v.Sub(v, new(big.Int).Rem(v, scale))
	return Number{value: v}
}

// Ceiling rounds n up to the next integer, failing only at the very top of
// the representable range.
func (n Number) Ceiling() (Number, error) {
	v := new(big.Int).Set(n.raw())
	rem := new(big.Int).Rem(v, scale)
	if rem.Sign() != 0 {
		v.Add(v, new(big.Int).Sub(scale, rem))
		if v.Cmp(maxInner) > 0 {
			return Number{}, ErrOverflow.Wrap("ceiling overflow")
		}
	}
	return Number{value: v}, nil
}

// ToImprecise unscales n back to a plain integer, rounding half up, and fails
// when the result does not fit the 128-bit boundary width.
func (n Number) ToImprecise() (sdkmath.Int, error) {
	v := new(big.Int).Add(n.raw(), halfScale)
	v.Quo(v, scale)
	if v.Cmp(maxUnscale) > 0 {
		return sdkmath.Int{}, ErrOverflow.Wrap("value does not fit the boundary width")
	}
	return sdkmath.NewIntFromBigInt(v), nil
}

// IsZero reports whether n is exactly zero.
func (n Number) IsZero() bool { return n.raw().Sign() == 0 }

// Equal reports whether n and rhs are bit-for-bit equal.
func (n Number) Equal(rhs Number) bool { return n.raw().Cmp(rhs.raw()) == 0 }

// LT reports n < rhs.
func (n Number) LT(rhs Number) bool { return n.raw().Cmp(rhs.raw()) < 0 }

// LTE reports n <= rhs.
func (n Number) LTE(rhs Number) bool { return n.raw().Cmp(rhs.raw()) <= 0 }

// GT reports n > rhs.
func (n Number) GT(rhs Number) bool { return n.raw().Cmp(rhs.raw()) > 0 }

// GTE reports n >= rhs.
func (n Number) GTE(rhs Number) bool { return n.raw().Cmp(rhs.raw()) >= 0 }

// AlmostEqual reports whether n and rhs differ by no more than epsilon.
func (n Number) AlmostEqual(rhs Number, epsilon Number) bool {
	diff := new(big.Int).Sub(n.raw(), rhs.raw())
	return diff.CmpAbs(epsilon.raw()) <= 0
}

// String renders the value with its fractional part, mainly for logs and
// test failures.
func (n Number) String() string {
	quo, rem := new(big.Int).QuoRem(n.raw(), scale, new(big.Int))
	if rem.Sign() == 0 {
		return quo.String()
	}
	frac := new(big.Int).Add(rem, scale).String()[1:]
	return quo.String() + "." + frac
}
