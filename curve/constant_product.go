package curve

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/openamm/swapmath/precise"
)

// ConstantProductCurve prices trades against the Uniswap-style invariant
// reserveA * reserveB = k. It has no parameters.
type ConstantProductCurve struct{}

// The formulas are factored out as free functions over already-adjusted
// reserves so the offset curve can reuse them with a shifted B side, and the
// stable curve can reuse the proportional share conversion.

// swapConstantProduct holds for all inputs such that
// swapSourceAmount * swapDestinationAmount and swapSourceAmount + sourceAmount
// fit the 128-bit working width. The invariant's output side is divided
// rounding up, so the recomputed product can only grow: the pool never loses
// value to rounding on a swap.
func swapConstantProduct(sourceAmount, swapSourceAmount, swapDestinationAmount *big.Int) (sourceSwapped, destinationSwapped *big.Int, err error) {
	invariant, err := checkedMul(swapSourceAmount, swapDestinationAmount, maxUint128)
	if err != nil {
		return nil, nil, err
	}
	newSwapSourceAmount, err := checkedAdd(swapSourceAmount, sourceAmount, maxUint128)
	if err != nil {
		return nil, nil, err
	}
	newSwapDestinationAmount, newSwapSourceAmount, err := checkedCeilDiv(invariant, newSwapSourceAmount)
	if err != nil {
		return nil, nil, err
	}
	sourceSwapped, err = checkedSub(newSwapSourceAmount, swapSourceAmount)
	if err != nil {
		return nil, nil, err
	}
	destinationSwapped, err = checkedSub(swapDestinationAmount, newSwapDestinationAmount)
	if err != nil {
		return nil, nil, err
	}
	destinationSwapped, err = mapZeroToFail(destinationSwapped, "destination amount swapped")
	if err != nil {
		return nil, nil, err
	}
	return sourceSwapped, destinationSwapped, nil
}

// poolTokensToTradingTokensProportional converts pool tokens to both reserve
// sides pro rata. Ceiling adds at most one unit per side, and only when the
// floored amount was already non-zero: a share too small to reach a token
// never rounds up into one.
func poolTokensToTradingTokensProportional(poolTokens, poolTokenSupply, swapTokenA, swapTokenB *big.Int, round RoundDirection) (tokenA, tokenB *big.Int, err error) {
	scaledA, err := checkedMul(poolTokens, swapTokenA, maxUint128)
	if err != nil {
		return nil, nil, err
	}
	scaledB, err := checkedMul(poolTokens, swapTokenB, maxUint128)
	if err != nil {
		return nil, nil, err
	}
	tokenA, err = checkedQuo(scaledA, poolTokenSupply)
	if err != nil {
		return nil, nil, err
	}
	tokenB, err = checkedQuo(scaledB, poolTokenSupply)
	if err != nil {
		return nil, nil, err
	}
	if round == Ceiling {
		remA, err := checkedRem(scaledA, poolTokenSupply)
		if err != nil {
			return nil, nil, err
		}
		if remA.Sign() > 0 && tokenA.Sign() > 0 {
			tokenA.Add(tokenA, bigOne)
		}
		remB, err := checkedRem(scaledB, poolTokenSupply)
		if err != nil {
			return nil, nil, err
		}
		if remB.Sign() > 0 && tokenB.Sign() > 0 {
			tokenB.Add(tokenB, bigOne)
		}
	}
	return tokenA, tokenB, nil
}

// depositSingleTokenType computes pool tokens for a one-sided deposit via the
// closed form supply * (sqrt(1 + source/reserve) - 1), floored in the pool's
// favor.
func depositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply *big.Int, direction TradeDirection) (sdkmath.Int, error) {
	swapSourceAmount := swapTokenA
	if direction == BtoA {
		swapSourceAmount = swapTokenB
	}
	source, err := precise.NewFromBigInt(sourceAmount)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	reserve, err := precise.NewFromBigInt(swapSourceAmount)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	one := precise.NewFromUint64(1)
	ratio, err := source.Div(reserve)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	base, err := one.Add(ratio)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	root, err := base.Sqrt()
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	root, err = root.Sub(one)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	supply, err := precise.NewFromBigInt(poolSupply)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	poolTokens, err := supply.Mul(root)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	out, err := poolTokens.Floor().ToImprecise()
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	return out, nil
}

// withdrawSingleTokenTypeExactOut computes the pool tokens to burn for an
// exact one-sided withdrawal via supply * (1 - sqrt(1 - source/reserve)),
// rounded up in the pool's favor. Taking the entire reserve side (or more)
// cannot be priced.
func withdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply *big.Int, direction TradeDirection) (sdkmath.Int, error) {
	swapSourceAmount := swapTokenA
	if direction == BtoA {
		swapSourceAmount = swapTokenB
	}
	if sourceAmount.Cmp(swapSourceAmount) >= 0 {
		return sdkmath.Int{}, ErrCalculation.Wrap("withdrawal would drain the reserve")
	}
	source, err := precise.NewFromBigInt(sourceAmount)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	reserve, err := precise.NewFromBigInt(swapSourceAmount)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	one := precise.NewFromUint64(1)
	ratio, err := source.Div(reserve)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	base, err := one.Sub(ratio)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	root, err := base.Sqrt()
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	root, err = one.Sub(root)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	supply, err := precise.NewFromBigInt(poolSupply)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	poolTokens, err := supply.Mul(root)
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	ceiled, err := poolTokens.Ceiling()
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	out, err := ceiled.ToImprecise()
	if err != nil {
		return sdkmath.Int{}, calcFailure(err)
	}
	return out, nil
}

// normalizedValueConstantProduct is sqrt(reserveA * reserveB), the invariant
// brought back to single-token dimension.
func normalizedValueConstantProduct(swapTokenA, swapTokenB *big.Int) (precise.Number, error) {
	a, err := precise.NewFromBigInt(swapTokenA)
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	b, err := precise.NewFromBigInt(swapTokenB)
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	product, err := a.Mul(b)
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	root, err := product.Sqrt()
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	return root, nil
}

// SwapWithoutFees implements Calculator.
func (ConstantProductCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, _ TradeDirection) (SwapWithoutFeesResult, error) {
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
	sourceSwapped, destinationSwapped, err := swapConstantProduct(source, swapSource, swapDestination)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sdkmath.NewIntFromBigInt(sourceSwapped),
		DestinationAmountSwapped: sdkmath.NewIntFromBigInt(destinationSwapped),
	}, nil
}

// PoolTokensToTradingTokens implements Calculator.
func (ConstantProductCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int, round RoundDirection) (TradingTokenResult, error) {
	pt, err := amountToBig(poolTokens)
	if err != nil {
		return TradingTokenResult{}, err
	}
	supply, err := amountToBig(poolTokenSupply)
	if err != nil {
		return TradingTokenResult{}, err
	}
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return TradingTokenResult{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return TradingTokenResult{}, err
	}
	tokenA, tokenB, err := poolTokensToTradingTokensProportional(pt, supply, a, b, round)
	if err != nil {
		return TradingTokenResult{}, err
	}
	return newIntPair(tokenA, tokenB), nil
}

// DepositSingleTokenType implements Calculator.
func (ConstantProductCurve) DepositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
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
	return depositSingleTokenType(source, a, b, supply, direction)
}

// WithdrawSingleTokenTypeExactOut implements Calculator.
func (ConstantProductCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
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
	return withdrawSingleTokenTypeExactOut(source, a, b, supply, direction)
}

// Validate implements Calculator. The constant product curve has no
// parameters to check.
func (ConstantProductCurve) Validate() error { return nil }

// ValidateSupply implements Calculator.
func (ConstantProductCurve) ValidateSupply(tokenAAmount, tokenBAmount sdkmath.Int) error {
	return defaultValidateSupply(tokenAAmount, tokenBAmount)
}

// AllowsDeposits implements Calculator.
func (ConstantProductCurve) AllowsDeposits() bool { return true }

// NormalizedValue implements Calculator.
func (ConstantProductCurve) NormalizedValue(swapTokenA, swapTokenB sdkmath.Int) (precise.Number, error) {
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return precise.Number{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return precise.Number{}, err
	}
	return normalizedValueConstantProduct(a, b)
}

// NewPoolSupply implements Calculator.
func (ConstantProductCurve) NewPoolSupply() sdkmath.Int { return defaultNewPoolSupply() }
