package curve

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/openamm/swapmath/precise"
)

// stableIterations caps the Newton iterations in the invariant and output
// solvers. Realistic reserve ratios converge well inside the cap; if it is
// exhausted the best estimate is used.
const stableIterations = 32

// StableCurve implements the Curve.fi invariant for two assets:
//
//	A * sum(x) * n^n + D = A * D * n^n + D^(n+1) / (n^n * prod(x))
//
// Amp is stored pre-multiplied by the coin count: the stored value equals
// the whitepaper A times n, the convention of the deployed stableswap
// contracts, because D^n / prod(x) loses precision under a huge raw A.
type StableCurve struct {
	// Amp is the amplification coefficient scaled by the coin count.
	Amp uint64
}

func (c StableCurve) leverage() (*big.Int, error) {
	leverage := new(big.Int).SetUint64(c.Amp)
	leverage.Mul(leverage, big.NewInt(TokensInPool))
	if c.Amp == 0 || leverage.Sign() == 0 {
		return nil, ErrCalculation.Wrap("zero amplification")
	}
	return leverage, nil
}

// calculateStep is one Newton update for D:
//
//	d = (leverage * sumX + dProduct * n) * d / ((leverage - 1) * d + (n + 1) * dProduct)
func calculateStep(initialD, leverage, sumX, dProduct *big.Int) (*big.Int, error) {
	leverageMul, err := checkedMul(leverage, sumX, maxUint256)
	if err != nil {
		return nil, err
	}
	dPMul, err := checkedMul(dProduct, big.NewInt(TokensInPool), maxUint256)
	if err != nil {
		return nil, err
	}
	numerator, err := checkedAdd(leverageMul, dPMul, maxUint256)
	if err != nil {
		return nil, err
	}
	numerator, err = checkedMul(numerator, initialD, maxUint256)
	if err != nil {
		return nil, err
	}
	leverageSub, err := checkedSub(leverage, bigOne)
	if err != nil {
		return nil, err
	}
	leverageSub, err = checkedMul(initialD, leverageSub, maxUint256)
	if err != nil {
		return nil, err
	}
	nCoinsSum, err := checkedMul(dProduct, big.NewInt(TokensInPool+1), maxUint256)
	if err != nil {
		return nil, err
	}
	denominator, err := checkedAdd(leverageSub, nCoinsSum, maxUint256)
	if err != nil {
		return nil, err
	}
	return checkedQuo(numerator, denominator)
}

// computeD solves for the invariant D by Newton iteration starting from the
// reserve sum. dProduct is rebuilt from the current estimate each round by
// dividing D^2 through both scaled reserves; the +1 on each scaled reserve
// keeps an empty side from zeroing the divisor. A zero reserve sum short
// circuits to D = 0.
func computeD(leverage, amountA, amountB *big.Int) (*big.Int, error) {
	two := big.NewInt(TokensInPool)
	amountATimesCoins, err := checkedMul(amountA, two, maxUint256)
	if err != nil {
		return nil, err
	}
	amountATimesCoins.Add(amountATimesCoins, bigOne)
	amountBTimesCoins, err := checkedMul(amountB, two, maxUint256)
	if err != nil {
		return nil, err
	}
	amountBTimesCoins.Add(amountBTimesCoins, bigOne)
	sumX, err := checkedAdd(amountA, amountB, maxUint128)
	if err != nil {
		return nil, err
	}
	if sumX.Sign() == 0 {
		return new(big.Int), nil
	}
	d, err := precise.Converge(sumX, stableIterations, func(current *big.Int) (*big.Int, error) {
		dProduct, err := checkedMul(current, current, maxUint256)
		if err != nil {
			return nil, err
		}
		dProduct, err = checkedQuo(dProduct, amountATimesCoins)
		if err != nil {
			return nil, err
		}
		dProduct, err = checkedMul(dProduct, current, maxUint256)
		if err != nil {
			return nil, err
		}
		dProduct, err = checkedQuo(dProduct, amountBTimesCoins)
		if err != nil {
			return nil, err
		}
		return calculateStep(current, leverage, sumX, dProduct)
	})
	if err != nil {
		return nil, err
	}
	if d.Cmp(maxUint128) > 0 {
		return nil, ErrCalculation.Wrap("invariant exceeds working width")
	}
	return d, nil
}

// computeNewDestinationAmount solves the invariant for the destination
// reserve y given the post-trade source reserve, iterating
//
//	y = (y^2 + c) / (2y + b - D)
//
// with c = D^(n+1) / (n^n * S * leverage) and b = S + D / leverage.
func computeNewDestinationAmount(leverage, newSourceAmount, dVal *big.Int) (*big.Int, error) {
	c, err := checkedMul(dVal, dVal, maxUint256)
	if err != nil {
		return nil, err
	}
	c, err = checkedMul(c, dVal, maxUint256)
	if err != nil {
		return nil, err
	}
	denom, err := checkedMul(newSourceAmount, big.NewInt(TokensInPool*TokensInPool), maxUint256)
	if err != nil {
		return nil, err
	}
	denom, err = checkedMul(denom, leverage, maxUint256)
	if err != nil {
		return nil, err
	}
	c, err = checkedQuo(c, denom)
	if err != nil {
		return nil, err
	}
	b, err := checkedQuo(dVal, leverage)
	if err != nil {
		return nil, err
	}
	b, err = checkedAdd(newSourceAmount, b, maxUint256)
	if err != nil {
		return nil, err
	}
	return precise.Converge(new(big.Int).Set(dVal), stableIterations, func(current *big.Int) (*big.Int, error) {
		numerator, err := checkedMul(current, current, maxUint256)
		if err != nil {
			return nil, err
		}
		numerator, err = checkedAdd(numerator, c, maxUint256)
		if err != nil {
			return nil, err
		}
		denominator, err := checkedMul(current, big.NewInt(2), maxUint256)
		if err != nil {
			return nil, err
		}
		denominator, err = checkedAdd(denominator, b, maxUint256)
		if err != nil {
			return nil, err
		}
		denominator, err = checkedSub(denominator, dVal)
		if err != nil {
			return nil, err
		}
		return checkedQuo(numerator, denominator)
	})
}

// SwapWithoutFees implements Calculator.
func (c StableCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, _ TradeDirection) (SwapWithoutFeesResult, error) {
	leverage, err := c.leverage()
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	source, err := amountToBig(sourceAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	swapSource, err := amountToBig(swapSourceAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	swapDestination, err := amountToBig(swapDestinationAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	newSourceAmount, err := checkedAdd(swapSource, source, maxUint128)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	dVal, err := computeD(leverage, swapSource, swapDestination)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	newDestinationAmount, err := computeNewDestinationAmount(leverage, newSourceAmount, dVal)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	amountSwapped, err := checkedSub(swapDestination, newDestinationAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	amountSwapped, err = mapZeroToFail(amountSwapped, "destination amount swapped")
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sdkmath.NewIntFromBigInt(source),
		DestinationAmountSwapped: sdkmath.NewIntFromBigInt(amountSwapped),
	}, nil
}

// PoolTokensToTradingTokens implements Calculator. Shares convert pro rata,
// same as the constant product curve; the invariant only shapes trades.
func (c StableCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int, round RoundDirection) (TradingTokenResult, error) {
	return ConstantProductCurve{}.PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB, round)
}

// DepositSingleTokenType implements Calculator: pool tokens are the pool
// supply scaled by the relative growth of D from the one-sided deposit,
// floored.
func (c StableCurve) DepositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
	leverage, err := c.leverage()
	if err != nil {
		return sdkmath.Int{}, err
	}
	source, err := amountToBig(sourceAmount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return sdkmath.Int{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return sdkmath.Int{}, err
	}
	supply, err := amountToBig(poolSupply)
	if err != nil {
		return sdkmath.Int{}, err
	}

	d0, err := computeD(leverage, a, b)
	if err != nil {
		return sdkmath.Int{}, err
	}
	newA, newB := a, b
	if direction == AtoB {
		newA, err = checkedAdd(a, source, maxUint128)
	} else {
		newB, err = checkedAdd(b, source, maxUint128)
	}
	if err != nil {
		return sdkmath.Int{}, err
	}
	d1, err := computeD(leverage, newA, newB)
	if err != nil {
		return sdkmath.Int{}, err
	}
	diff, err := checkedSub(d1, d0)
	if err != nil {
		return sdkmath.Int{}, err
	}
	minted, err := checkedMul(diff, supply, maxUint256)
	if err != nil {
		return sdkmath.Int{}, err
	}
	minted, err = checkedQuo(minted, d0)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if minted.Cmp(maxUint128) > 0 {
		return sdkmath.Int{}, ErrCalculation.Wrap("pool token amount exceeds working width")
	}
	return sdkmath.NewIntFromBigInt(minted), nil
}

// WithdrawSingleTokenTypeExactOut implements Calculator: the pool tokens to
// burn are the supply scaled by the relative shrink of D, rounded up.
func (c StableCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
	leverage, err := c.leverage()
	if err != nil {
		return sdkmath.Int{}, err
	}
	source, err := amountToBig(sourceAmount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return sdkmath.Int{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return sdkmath.Int{}, err
	}
	supply, err := amountToBig(poolSupply)
	if err != nil {
		return sdkmath.Int{}, err
	}

	d0, err := computeD(leverage, a, b)
	if err != nil {
		return sdkmath.Int{}, err
	}
	newA, newB := a, b
	if direction == AtoB {
		newA, err = checkedSub(a, source)
	} else {
		newB, err = checkedSub(b, source)
	}
	if err != nil {
		return sdkmath.Int{}, err
	}
	d1, err := computeD(leverage, newA, newB)
	if err != nil {
		return sdkmath.Int{}, err
	}
	diff, err := checkedSub(d0, d1)
	if err != nil {
		return sdkmath.Int{}, err
	}
	burned, err := checkedMul(diff, supply, maxUint256)
	if err != nil {
		return sdkmath.Int{}, err
	}
	rem, err := checkedRem(burned, d0)
	if err != nil {
		return sdkmath.Int{}, err
	}
	burned, err = checkedQuo(burned, d0)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if rem.Sign() > 0 {
		burned.Add(burned, bigOne)
	}
	if burned.Cmp(maxUint128) > 0 {
		return sdkmath.Int{}, ErrCalculation.Wrap("pool token amount exceeds working width")
	}
	return sdkmath.NewIntFromBigInt(burned), nil
}

// Validate implements Calculator. A zero amplification makes the leverage
// term underflow in every solver step.
func (c StableCurve) Validate() error {
	if c.Amp == 0 {
		return ErrInvalidCurve.Wrap("amplification coefficient must not be zero")
	}
	return nil
}

// ValidateSupply implements Calculator.
func (c StableCurve) ValidateSupply(tokenAAmount, tokenBAmount sdkmath.Int) error {
	return defaultValidateSupply(tokenAAmount, tokenBAmount)
}

// AllowsDeposits implements Calculator.
func (StableCurve) AllowsDeposits() bool { return true }

// NormalizedValue implements Calculator: D / n, since D carries the
// dimension of the whole pool across n tokens.
func (c StableCurve) NormalizedValue(swapTokenA, swapTokenB sdkmath.Int) (precise.Number, error) {
	leverage, err := c.leverage()
	if err != nil {
		return precise.Number{}, err
	}
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return precise.Number{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return precise.Number{}, err
	}
	d, err := computeD(leverage, a, b)
	if err != nil {
		return precise.Number{}, err
	}
	dNum, err := precise.NewFromBigInt(d)
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	value, err := dNum.Div(precise.NewFromUint64(TokensInPool))
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	return value, nil
}

// NewPoolSupply implements Calculator.
func (StableCurve) NewPoolSupply() sdkmath.Int { return defaultNewPoolSupply() }
