package curve

import (
	sdkmath "cosmossdk.io/math"
)

// CurveType names one of the four curve variants. The set is closed: the
// value-conservation arguments are made per variant, so there is no open
// registration.
type CurveType uint8

const (
	// ConstantProduct is the Uniswap-style x*y=k curve.
	ConstantProduct CurveType = iota
	// ConstantPrice trades at a fixed token B price.
	ConstantPrice
	// Stable is the Curve.fi-style amplified invariant.
	Stable
	// Offset is constant product with phantom token B liquidity.
	Offset
)

func (t CurveType) String() string {
	switch t {
	case ConstantProduct:
		return "constant-product"
	case ConstantPrice:
		return "constant-price"
	case Stable:
		return "stable"
	case Offset:
		return "offset"
	default:
		return "unknown"
	}
}

// ParseCurveType maps a configuration string back to a CurveType.
func ParseCurveType(s string) (CurveType, error) {
	switch s {
	case "constant-product":
		return ConstantProduct, nil
	case "constant-price":
		return ConstantPrice, nil
	case "stable":
		return Stable, nil
	case "offset":
		return Offset, nil
	default:
		return 0, ErrUnsupportedCurveType.Wrap(s)
	}
}

// Params carries the variant-specific parameter for pool creation. Only the
// field matching the curve type is read.
type Params struct {
	// TokenBPrice configures ConstantPrice.
	TokenBPrice uint64
	// TokenBOffset configures Offset.
	TokenBOffset uint64
	// Amp configures Stable.
	Amp uint64
}

// SwapCurve pairs a curve variant with its calculator and layers the fee
// model over the raw curve results. It is configured once at pool creation
// and immutable afterwards.
type SwapCurve struct {
	CurveType  CurveType
	Calculator Calculator
}

// NewSwapCurve builds and validates the calculator for the given type.
func NewSwapCurve(curveType CurveType, params Params) (SwapCurve, error) {
	var calc Calculator
	switch curveType {
	case ConstantProduct:
		calc = ConstantProductCurve{}
	case ConstantPrice:
		calc = ConstantPriceCurve{TokenBPrice: params.TokenBPrice}
	case Stable:
		calc = StableCurve{Amp: params.Amp}
	case Offset:
		calc = OffsetCurve{TokenBOffset: params.TokenBOffset}
	default:
		return SwapCurve{}, ErrUnsupportedCurveType.Wrapf("%d", curveType)
	}
	if err := calc.Validate(); err != nil {
		return SwapCurve{}, err
	}
	return SwapCurve{CurveType: curveType, Calculator: calc}, nil
}

// SwapResult carries a fee-inclusive swap: the full source amount taken from
// the trader (fees included), the destination amount released, and the
// post-trade reserves.
type SwapResult struct {
	// NewSwapSourceAmount is the source reserve after the trade.
	NewSwapSourceAmount sdkmath.Int
	// NewSwapDestinationAmount is the destination reserve after the trade.
	NewSwapDestinationAmount sdkmath.Int
	// SourceAmountSwapped includes the fees taken from the source.
	SourceAmountSwapped sdkmath.Int
	// DestinationAmountSwapped is what the trader receives.
	DestinationAmountSwapped sdkmath.Int
	// TradeFee stays in the pool for the liquidity providers.
	TradeFee sdkmath.Int
	// OwnerFee is owed to the pool owner.
	OwnerFee sdkmath.Int
}

// Swap prices a trade with fees: the trade and owner fees come off the
// source first, the remainder is priced on the raw curve, and the fees are
// folded back into the source side so they accrue to the pool.
func (sc SwapCurve) Swap(sourceAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, direction TradeDirection, fees Fees) (SwapResult, error) {
	for _, amount := range []sdkmath.Int{sourceAmount, swapSourceAmount, swapDestinationAmount} {
		if amount.IsNil() || amount.IsNegative() {
			return SwapResult{}, ErrCalculation.Wrap("invalid amount")
		}
	}
	tradeFee, err := fees.TradingFee(sourceAmount)
	if err != nil {
		return SwapResult{}, err
	}
	ownerFee, err := fees.OwnerTradingFee(sourceAmount)
	if err != nil {
		return SwapResult{}, err
	}
	totalFees := tradeFee.Add(ownerFee)
	sourceLessFees := sourceAmount.Sub(totalFees)
	if sourceLessFees.IsNegative() {
		return SwapResult{}, ErrCalculation.Wrap("fees exceed source amount")
	}
	result, err := sc.Calculator.SwapWithoutFees(sourceLessFees, swapSourceAmount, swapDestinationAmount, direction)
	if err != nil {
		return SwapResult{}, err
	}
	sourceSwapped := result.SourceAmountSwapped.Add(totalFees)
	newDestination, err := checkedSub(swapDestinationAmount.BigInt(), result.DestinationAmountSwapped.BigInt())
	if err != nil {
		return SwapResult{}, err
	}
	newSource, err := checkedAdd(swapSourceAmount.BigInt(), sourceSwapped.BigInt(), maxUint128)
	if err != nil {
		return SwapResult{}, err
	}
	return SwapResult{
		NewSwapSourceAmount:      sdkmath.NewIntFromBigInt(newSource),
		NewSwapDestinationAmount: sdkmath.NewIntFromBigInt(newDestination),
		SourceAmountSwapped:      sourceSwapped,
		DestinationAmountSwapped: result.DestinationAmountSwapped,
		TradeFee:                 tradeFee,
		OwnerFee:                 ownerFee,
	}, nil
}

// DepositSingleTokenType converts a one-sided deposit into pool tokens with
// the trading fee charged on half the source, since depositing one side
// implicitly swaps half of it to the other.
func (sc SwapCurve) DepositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection, fees Fees) (sdkmath.Int, error) {
	if sourceAmount.IsNil() || sourceAmount.IsNegative() {
		return sdkmath.Int{}, ErrCalculation.Wrap("invalid amount")
	}
	if sourceAmount.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	half := sourceAmount.QuoRaw(2)
	if half.IsZero() {
		half = sdkmath.OneInt()
	}
	tradeFee, err := fees.TradingFee(half)
	if err != nil {
		return sdkmath.Int{}, err
	}
	netSource := sourceAmount.Sub(tradeFee)
	if netSource.IsNegative() {
		return sdkmath.Int{}, ErrCalculation.Wrap("fee exceeds source amount")
	}
	return sc.Calculator.DepositSingleTokenType(netSource, swapTokenA, swapTokenB, poolSupply, direction)
}

// WithdrawSingleTokenTypeExactOut computes the pool tokens to burn for an
// exact one-sided withdrawal, grossing the source up by the trading fee on
// half of it (rounded up) so the burner covers the implicit swap.
func (sc SwapCurve) WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection, fees Fees) (sdkmath.Int, error) {
	if sourceAmount.IsNil() || sourceAmount.IsNegative() {
		return sdkmath.Int{}, ErrCalculation.Wrap("invalid amount")
	}
	if sourceAmount.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	half := sourceAmount.AddRaw(1).QuoRaw(2)
	tradeFee, err := fees.TradingFee(half)
	if err != nil {
		return sdkmath.Int{}, err
	}
	grossSource := sourceAmount.Add(tradeFee)
	return sc.Calculator.WithdrawSingleTokenTypeExactOut(grossSource, swapTokenA, swapTokenB, poolSupply, direction)
}
