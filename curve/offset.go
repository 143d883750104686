package curve

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/openamm/swapmath/precise"
)

// OffsetCurve is a constant product curve with phantom liquidity on the
// token B side: every computation sees reserveB + TokenBOffset instead of
// the real balance. The creator effectively seeds one side of the book
// without holding the tokens.
//
// Deposits after creation are forbidden. A depositor's share would be priced
// against the offset-inflated invariant while their withdrawal claim is on
// real balances only, which lets the pool creator extract the difference.
type OffsetCurve struct {
	// TokenBOffset is added to the token B reserve before every pricing
	// computation.
	TokenBOffset uint64
}

// SwapWithoutFees implements Calculator. The guarantees of the constant
// product swap apply to the shifted reserves, so a token B balance and
// offset that are both near the top of the range can overflow the invariant
// and fail.
func (c OffsetCurve) SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, direction TradeDirection) (SwapWithoutFeesResult, error) {
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
	offset := new(big.Int).SetUint64(c.TokenBOffset)
	if direction == AtoB {
		swapDestination, err = checkedAdd(swapDestination, offset, maxUint128)
	} else {
		swapSource, err = checkedAdd(swapSource, offset, maxUint128)
	}
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

// PoolTokensToTradingTokens implements Calculator. The offset is deliberately
// NOT applied here: LP redemption claims a pro-rata share of the real
// balances, and folding in the phantom side would promise token B the pool
// does not hold.
func (c OffsetCurve) PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int, round RoundDirection) (TradingTokenResult, error) {
	return ConstantProductCurve{}.PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB, round)
}

// DepositSingleTokenType implements Calculator. Kept for completeness even
// though AllowsDeposits is false; the wrapper layer uses it when valuing
// fees in pool tokens.
func (c OffsetCurve) DepositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
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
	b, err = checkedAdd(b, new(big.Int).SetUint64(c.TokenBOffset), maxUint128)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return depositSingleTokenType(source, a, b, supply, direction)
}

// WithdrawSingleTokenTypeExactOut implements Calculator. The offset is
// applied to the B side so the implied swap is priced on the shifted curve.
func (c OffsetCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error) {
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
	b, err = checkedAdd(b, new(big.Int).SetUint64(c.TokenBOffset), maxUint128)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return withdrawSingleTokenTypeExactOut(source, a, b, supply, direction)
}

// Validate implements Calculator. A zero offset degenerates to the plain
// constant product curve, which should be selected explicitly instead.
func (c OffsetCurve) Validate() error {
	if c.TokenBOffset == 0 {
		return ErrInvalidCurve.Wrap("token B offset must not be zero")
	}
	return nil
}

// ValidateSupply implements Calculator. The offset supplies the B side, so
// only token A liquidity is required at creation.
func (c OffsetCurve) ValidateSupply(tokenAAmount, _ sdkmath.Int) error {
	if tokenAAmount.IsNil() || !tokenAAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token A")
	}
	return nil
}

// AllowsDeposits implements Calculator. Always false, see the type comment.
func (OffsetCurve) AllowsDeposits() bool { return false }

// NormalizedValue implements Calculator: sqrt(reserveA * (reserveB + offset)).
func (c OffsetCurve) NormalizedValue(swapTokenA, swapTokenB sdkmath.Int) (precise.Number, error) {
	a, err := amountToBig(swapTokenA)
	if err != nil {
		return precise.Number{}, err
	}
	b, err := amountToBig(swapTokenB)
	if err != nil {
		return precise.Number{}, err
	}
	b, err = checkedAdd(b, new(big.Int).SetUint64(c.TokenBOffset), maxUint128)
	if err != nil {
		return precise.Number{}, err
	}
	return normalizedValueConstantProduct(a, b)
}

// NewPoolSupply implements Calculator.
func (OffsetCurve) NewPoolSupply() sdkmath.Int { return defaultNewPoolSupply() }
