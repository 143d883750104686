package curve

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// Overflow-safe integer helpers for the curve formulas. Public amounts are
// 64-bit-scale token quantities; the formulas multiply two of them, so the
// working width is 128 bits, and the stable-swap solver squares the working
// width again, so its intermediates are capped at 256 bits. Anything beyond
// a cap is a calculation failure, never a wrapped value.

var (
	maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	bigOne = big.NewInt(1)
)

// amountToBig validates a public amount and returns it as a fresh big.Int in
// the 128-bit working range.
func amountToBig(amount sdkmath.Int) (*big.Int, error) {
	if amount.IsNil() {
		return nil, ErrCalculation.Wrap("uninitialized amount")
	}
	if amount.IsNegative() {
		return nil, ErrCalculation.Wrap("negative amount")
	}
	v := amount.BigInt()
	if v.Cmp(maxUint128) > 0 {
		return nil, ErrCalculation.Wrap("amount exceeds working width")
	}
	return v, nil
}

func checkedAdd(a, b, limit *big.Int) (*big.Int, error) {
	result := new(big.Int).Add(a, b)
	if result.Cmp(limit) > 0 {
		return nil, ErrCalculation.Wrap("addition overflow")
	}
	return result, nil
}

func checkedSub(a, b *big.Int) (*big.Int, error) {
	result := new(big.Int).Sub(a, b)
	if result.Sign() < 0 {
		return nil, ErrCalculation.Wrapf("underflow: cannot subtract %s from %s", b, a)
	}
	return result, nil
}

func checkedMul(a, b, limit *big.Int) (*big.Int, error) {
	result := new(big.Int).Mul(a, b)
	if result.Cmp(limit) > 0 {
		return nil, ErrCalculation.Wrap("multiplication overflow")
	}
	return result, nil
}

func checkedQuo(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrCalculation.Wrap("division by zero")
	}
	return new(big.Int).Quo(a, b), nil
}

func checkedRem(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ErrCalculation.Wrap("division by zero")
	}
	return new(big.Int).Rem(a, b), nil
}

// checkedCeilDiv divides rounding the quotient up, then trims the divisor
// down to the smallest value that still yields that quotient. Swaps use the
// pair to charge the caller no more source than the rounded-up destination
// actually requires. A zero quotient fails: dividing a small dividend by a
// huge divisor must not quietly round up to 1.
func checkedCeilDiv(dividend, divisor *big.Int) (quotient, minDivisor *big.Int, err error) {
	if divisor.Sign() == 0 {
		return nil, nil, ErrCalculation.Wrap("division by zero")
	}
	quotient = new(big.Int).Quo(dividend, divisor)
	if quotient.Sign() == 0 {
		return nil, nil, ErrCalculation.Wrap("ceiling division rounds to zero")
	}
	minDivisor = new(big.Int).Set(divisor)
	rem := new(big.Int).Rem(dividend, divisor)
	if rem.Sign() > 0 {
		quotient.Add(quotient, bigOne)
		minDivisor.Quo(dividend, quotient)
		rem.Rem(dividend, quotient)
		if rem.Sign() > 0 {
			minDivisor.Add(minDivisor, bigOne)
		}
	}
	return quotient, minDivisor, nil
}

// calcFailure folds a fixed-point arithmetic failure into the curve's
// uniform calculation error class.
func calcFailure(err error) error {
	return ErrCalculation.Wrap(err.Error())
}

// mapZeroToFail rejects a zero result where the formulas require movement.
func mapZeroToFail(v *big.Int, what string) (*big.Int, error) {
	if v.Sign() == 0 {
		return nil, ErrCalculation.Wrapf("%s is zero", what)
	}
	return v, nil
}

func newIntPair(a, b *big.Int) TradingTokenResult {
	return TradingTokenResult{
		TokenAAmount: sdkmath.NewIntFromBigInt(a),
		TokenBAmount: sdkmath.NewIntFromBigInt(b),
	}
}
