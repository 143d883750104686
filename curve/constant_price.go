package curve

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/openamm/swapmath/precise"
)

// ConstantPriceCurve always trades at a fixed rate: TokenBPrice units of
// token A per unit of token B. Reserves never move the price.
type ConstantPriceCurve struct {
	// TokenBPrice is the amount of token A equal to one token B.
	TokenBPrice uint64
}

// tradingTokensToPoolTokens converts a one-sided trading-token amount into
// pool tokens against the price-weighted pool value. Shared by single-sided
// deposits (Floor) and exact-out withdrawals (Ceiling). Intermediates run at
// 256-bit width because the pool supply multiplies an already-128-bit value.
func tradingTokensToPoolTokens(tokenBPrice uint64, sourceAmount, swapTokenA, swapTokenB, poolSupply *big.Int, direction TradeDirection, round RoundDirection) (*big.Int, error) {
	price := new(big.Int).SetUint64(tokenBPrice)
	givenValue := new(big.Int).Set(sourceAmount)
	if direction == BtoA {
		var err error
		givenValue, err = checkedMul(sourceAmount, price, maxUint256)
		if err != nil {
			return nil, err
		}
	}
	totalValue, err := checkedMul(swapTokenB, price, maxUint256)
	if err != nil {
		return nil, err
	}
	totalValue, err = checkedAdd(totalValue, swapTokenA, maxUint256)
	if err != nil {
		return nil, err
	}
	numerator, err := checkedMul(poolSupply, givenValue, maxUint256)
	if err != nil {
		return nil, err
	}
	var poolTokens *big.Int
	switch round {
	case Floor:
		poolTokens, err = checkedQuo(numerator, totalValue)
	case Ceiling:
		poolTokens, _, err = checkedCeilDiv(numerator, totalValue)
	}
	if err != nil {
		return nil, err
	}
	if poolTokens.Cmp(maxUint128) > 0 {
		return nil, ErrCalculation.Wrap("pool token amount exceeds working width")
	}
	return poolTokens, nil
}

// SwapWithoutFees implements Calculator. On an A to B trade the source
// remainder modulo the price is trimmed, so the source actually consumed is
// an exact multiple of the price and no value leaks through truncation.
func (c ConstantPriceCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, direction TradeDirection) (SwapWithoutFeesResult, error) {
	source, err := amountToBig(sourceAmount)
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	price := new(big.Int).SetUint64(c.TokenBPrice)

	var sourceSwapped, destinationSwapped *big.Int
	switch direction {
	case BtoA:
		sourceSwapped = source
		destinationSwapped, err = checkedMul(source, price, maxUint128)
		if err != nil {
			return SwapWithoutFeesResult{}, err
		}
	case AtoB:
		destinationSwapped, err = checkedQuo(source, price)
		if err != nil {
			return SwapWithoutFeesResult{}, err
		}
		remainder, err := checkedRem(source, price)
		if err != nil {
			return SwapWithoutFeesResult{}, err
		}
		sourceSwapped = new(big.Int).Sub(source, remainder)
	}
	sourceSwapped, err = mapZeroToFail(sourceSwapped, "source amount swapped")
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	destinationSwapped, err = mapZeroToFail(destinationSwapped, "destination amount swapped")
	if err != nil {
		return SwapWithoutFeesResult{}, err
	}
	return SwapWithoutFeesResult{
		SourceAmountSwapped:      sdkmath.NewIntFromBigInt(sourceSwapped),
		DestinationAmountSwapped: sdkmath.NewIntFromBigInt(destinationSwapped),
	}, nil
}

// PoolTokensToTradingTokens implements Calculator. The conversion is
// weighted by the token B price rather than split 50/50.
func (c ConstantPriceCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int, round RoundDirection) (TradingTokenResult, error) {
	pt, err := amountToBig(poolTokens)
	if err != nil {
		return TradingTokenResult{}, err
	}
	supply, err := amountToBig(poolTokenSupply)
	if err != nil {
		return TradingTokenResult{}, err
	}
	price := new(big.Int).SetUint64(c.TokenBPrice)

	value, err := c.NormalizedValue(swapTokenA, swapTokenB)
	if err != nil {
		return TradingTokenResult{}, err
	}
	imprecise, err := value.ToImprecise()
	if err != nil {
		return TradingTokenResult{}, calcFailure(err)
	}
	totalValue := imprecise.BigInt()

	scaledValue, err := checkedMul(pt, totalValue, maxUint128)
	if err != nil {
		return TradingTokenResult{}, err
	}
	var tokenA, tokenB *big.Int
	switch round {
	case Floor:
		tokenA, err = checkedQuo(scaledValue, supply)
		if err != nil {
			return TradingTokenResult{}, err
		}
		tokenB, err = checkedQuo(scaledValue, price)
		if err != nil {
			return TradingTokenResult{}, err
		}
		tokenB, err = checkedQuo(tokenB, supply)
		if err != nil {
			return TradingTokenResult{}, err
		}
	case Ceiling:
		tokenA, _, err = checkedCeilDiv(scaledValue, supply)
		if err != nil {
			return TradingTokenResult{}, err
		}
		poolValueAsTokenB, _, err := checkedCeilDiv(scaledValue, price)
		if err != nil {
			return TradingTokenResult{}, err
		}
		tokenB, _, err = checkedCeilDiv(poolValueAsTokenB, supply)
		if err != nil {
			return TradingTokenResult{}, err
		}
	}
	return newIntPair(tokenA, tokenB), nil
}

// DepositSingleTokenType implements Calculator.
func (c ConstantPriceCurve) DepositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
	return c.singleSided(sourceAmount, swapTokenA, swapTokenB, poolSupply, direction, Floor)
}

// WithdrawSingleTokenTypeExactOut implements Calculator.
func (c ConstantPriceCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
	return c.singleSided(sourceAmount, swapTokenA, swapTokenB, poolSupply, direction, Ceiling)
}

func (c ConstantPriceCurve) singleSided(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection, round RoundDirection) (sdkmath.Int, error) {
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
	poolTokens, err := tradingTokensToPoolTokens(c.TokenBPrice, source, a, b, supply, direction, round)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return sdkmath.NewIntFromBigInt(poolTokens), nil
}

// Validate implements Calculator.
func (c ConstantPriceCurve) Validate() error {
	if c.TokenBPrice == 0 {
		return ErrInvalidCurve.Wrap("token B price must not be zero")
	}
	return nil
}

// ValidateSupply implements Calculator. Token B may start empty; the fixed
// price defines its value regardless of balance.
func (c ConstantPriceCurve) ValidateSupply(tokenAAmount, _ sdkmath.Int) error {
	if tokenAAmount.IsNil() || !tokenAAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token A")
	}
	return nil
}

// AllowsDeposits implements Calculator.
func (ConstantPriceCurve) AllowsDeposits() bool { return true }

// NormalizedValue implements Calculator: (reserveA + reserveB * price) / 2.
// This curve's invariant is additive where the others are multiplicative, so
// halving the sum is what brings it to single-token dimension. Near the top
// of the working width the operands are halved before adding to avoid
// overflowing the sum.
func (c ConstantPriceCurve) NormalizedValue(swapTokenA, swapTokenB sdkmath.Int) (precise.Number, error) {
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return precise.Number{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return precise.Number{}, err
	}
	bValue, err := checkedMul(b, new(big.Int).SetUint64(c.TokenBPrice), maxUint128)
	if err != nil {
		return precise.Number{}, err
	}
	two := big.NewInt(2)
	value := new(big.Int).Add(a, bValue)
	if value.Cmp(maxUint128) > 0 {
		value.Add(new(big.Int).Quo(a, two), new(big.Int).Quo(bValue, two))
	} else {
		value.Quo(value, two)
	}
	n, err := precise.NewFromBigInt(value)
	if err != nil {
		return precise.Number{}, calcFailure(err)
	}
	return n, nil
}

// NewPoolSupply implements Calculator.
func (ConstantPriceCurve) NewPoolSupply() sdkmath.Int { return defaultNewPoolSupply() }
