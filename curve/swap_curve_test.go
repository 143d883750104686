package curve

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurveTypeStringRoundTrip(t *testing.T) {
	for _, curveType := range []CurveType{ConstantProduct, ConstantPrice, Stable, Offset} {
		parsed, err := ParseCurveType(curveType.String())
		require.NoError(t, err)
		require.Equal(t, curveType, parsed)
	}
	_, err := ParseCurveType("bonding")
	require.ErrorIs(t, err, ErrUnsupportedCurveType)
	require.Equal(t, "unknown", CurveType(42).String())
}

func TestNewSwapCurve(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)
	require.IsType(t, ConstantProductCurve{}, sc.Calculator)

	sc, err = NewSwapCurve(ConstantPrice, Params{TokenBPrice: 42})
	require.NoError(t, err)
	require.Equal(t, ConstantPriceCurve{TokenBPrice: 42}, sc.Calculator)

	sc, err = NewSwapCurve(Stable, Params{Amp: 100})
	require.NoError(t, err)
	require.Equal(t, StableCurve{Amp: 100}, sc.Calculator)

	sc, err = NewSwapCurve(Offset, Params{TokenBOffset: 7})
	require.NoError(t, err)
	require.Equal(t, OffsetCurve{TokenBOffset: 7}, sc.Calculator)
}

func TestNewSwapCurveRejectsBadParams(t *testing.T) {
	_, err := NewSwapCurve(ConstantPrice, Params{})
	require.ErrorIs(t, err, ErrInvalidCurve)
	_, err = NewSwapCurve(Stable, Params{})
	require.ErrorIs(t, err, ErrInvalidCurve)
	_, err = NewSwapCurve(Offset, Params{})
	require.ErrorIs(t, err, ErrInvalidCurve)
	_, err = NewSwapCurve(CurveType(42), Params{})
	require.ErrorIs(t, err, ErrUnsupportedCurveType)
}

func TestSwapCurveSwapWithFees(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)
	fees := Fees{TradeFeeNumerator: 1, TradeFeeDenominator: 100}

	result, err := sc.Swap(uintInt(100), uintInt(1000), uintInt(1000), AtoB, fees)
	require.NoError(t, err)
	// Fee of 1 comes off the top, 99 goes through the curve for 90 out, and
	// the fee folds back into the source reserve.
	require.Equal(t, uintInt(1), result.TradeFee)
	require.True(t, result.OwnerFee.IsZero())
	require.Equal(t, uintInt(100), result.SourceAmountSwapped)
	require.Equal(t, uintInt(90), result.DestinationAmountSwapped)
	require.Equal(t, uintInt(1100), result.NewSwapSourceAmount)
	require.Equal(t, uintInt(910), result.NewSwapDestinationAmount)
}

func TestSwapCurveSwapFeeFree(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)

	result, err := sc.Swap(uintInt(100), uintInt(1000), uintInt(1000), AtoB, Fees{})
	require.NoError(t, err)
	require.True(t, result.TradeFee.IsZero())
	require.Equal(t, uintInt(99), result.SourceAmountSwapped)
	require.Equal(t, uintInt(90), result.DestinationAmountSwapped)
}

func TestSwapCurveSwapFeesExceedSource(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)
	fees := Fees{
		TradeFeeNumerator: 1, TradeFeeDenominator: 2,
		OwnerTradeFeeNumerator: 1, OwnerTradeFeeDenominator: 2,
	}
	// Each fee floors at one token, so a one-token trade owes two.
	_, err = sc.Swap(uintInt(1), uintInt(1000), uintInt(1000), AtoB, fees)
	require.ErrorIs(t, err, ErrCalculation)
}

func TestSwapCurveSwapZeroSourceFails(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)
	_, err = sc.Swap(uintInt(0), uintInt(1000), uintInt(1000), AtoB, Fees{})
	require.ErrorIs(t, err, ErrCalculation)
}

func TestSwapCurveDepositSingleTokenType(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)
	fees := Fees{TradeFeeNumerator: 1, TradeFeeDenominator: 100}

	// Half of 21 owes the minimum fee of 1, leaving 20 to deposit:
	// 100 * (sqrt(1.2) - 1) floors to 9.
	minted, err := sc.DepositSingleTokenType(uintInt(21), uintInt(100), uintInt(100), uintInt(100), AtoB, fees)
	require.NoError(t, err)
	require.Equal(t, uintInt(9), minted)

	minted, err = sc.DepositSingleTokenType(uintInt(0), uintInt(100), uintInt(100), uintInt(100), AtoB, fees)
	require.NoError(t, err)
	require.True(t, minted.IsZero())
}

func TestSwapCurveWithdrawSingleTokenTypeExactOut(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)
	fees := Fees{TradeFeeNumerator: 1, TradeFeeDenominator: 100}

	// The 19 requested grosses up by the fee on half of it (rounded up) to
	// 20: 100 * (1 - sqrt(0.8)) rounds up to 11.
	burned, err := sc.WithdrawSingleTokenTypeExactOut(uintInt(19), uintInt(100), uintInt(100), uintInt(100), AtoB, fees)
	require.NoError(t, err)
	require.Equal(t, uintInt(11), burned)

	burned, err = sc.WithdrawSingleTokenTypeExactOut(uintInt(0), uintInt(100), uintInt(100), uintInt(100), AtoB, fees)
	require.NoError(t, err)
	require.True(t, burned.IsZero())
}

func TestSwapCurveFeeFreeSingleSidedMatchesCalculator(t *testing.T) {
	sc, err := NewSwapCurve(ConstantProduct, Params{})
	require.NoError(t, err)

	minted, err := sc.DepositSingleTokenType(uintInt(21), uintInt(100), uintInt(100), uintInt(100), AtoB, Fees{})
	require.NoError(t, err)
	want, err := sc.Calculator.DepositSingleTokenType(uintInt(21), uintInt(100), uintInt(100), uintInt(100), AtoB)
	require.NoError(t, err)
	require.Equal(t, want, minted)
}
