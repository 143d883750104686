package curve

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestTradingFee(t *testing.T) {
	fees := Fees{TradeFeeNumerator: 1, TradeFeeDenominator: 100}

	fee, err := fees.TradingFee(uintInt(1000))
	require.NoError(t, err)
	require.Equal(t, uintInt(10), fee)

	// 50 * 1/100 truncates to zero, so the minimum fee of one applies.
	fee, err = fees.TradingFee(uintInt(50))
	require.NoError(t, err)
	require.Equal(t, uintInt(1), fee)

	// A zero amount owes nothing, minimum or not.
	fee, err = fees.TradingFee(uintInt(0))
	require.NoError(t, err)
	require.True(t, fee.IsZero())
}

func TestDisabledFeeIsZero(t *testing.T) {
	var fees Fees
	for _, amount := range []uint64{0, 1, 1_000_000} {
		fee, err := fees.TradingFee(uintInt(amount))
		require.NoError(t, err)
		require.True(t, fee.IsZero())
		fee, err = fees.OwnerTradingFee(uintInt(amount))
		require.NoError(t, err)
		require.True(t, fee.IsZero())
	}
}

func TestOwnerWithdrawAndHostFees(t *testing.T) {
	fees := Fees{
		OwnerWithdrawFeeNumerator:   1,
		OwnerWithdrawFeeDenominator: 6,
		HostFeeNumerator:            1,
		HostFeeDenominator:          4,
	}
	fee, err := fees.OwnerWithdrawFee(uintInt(60))
	require.NoError(t, err)
	require.Equal(t, uintInt(10), fee)

	// The host fee carves out of an owner fee already computed.
	host, err := fees.HostFee(uintInt(10))
	require.NoError(t, err)
	require.Equal(t, uintInt(2), host)
}

func TestFeeRejectsUninitializedAmount(t *testing.T) {
	fees := Fees{TradeFeeNumerator: 1, TradeFeeDenominator: 100}
	_, err := fees.TradingFee(sdkmath.Int{})
	require.ErrorIs(t, err, ErrCalculation)
}

func TestFeesValidate(t *testing.T) {
	require.NoError(t, Fees{}.Validate())
	require.NoError(t, Fees{
		TradeFeeNumerator: 25, TradeFeeDenominator: 10_000,
		OwnerTradeFeeNumerator: 5, OwnerTradeFeeDenominator: 10_000,
		OwnerWithdrawFeeNumerator: 1, OwnerWithdrawFeeDenominator: 6,
		HostFeeNumerator: 2, HostFeeDenominator: 10,
	}.Validate())

	require.ErrorIs(t, Fees{TradeFeeNumerator: 1, TradeFeeDenominator: 1}.Validate(), ErrInvalidFee)
	require.ErrorIs(t, Fees{TradeFeeNumerator: 3, TradeFeeDenominator: 2}.Validate(), ErrInvalidFee)
	// A numerator with no denominator is never valid.
	require.ErrorIs(t, Fees{OwnerTradeFeeNumerator: 1}.Validate(), ErrInvalidFee)
	require.ErrorIs(t, Fees{HostFeeNumerator: 1}.Validate(), ErrInvalidFee)
}
