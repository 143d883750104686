package curve

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openamm/swapmath/precise"
)

// conversionBasisPointsGuarantee is the relative-error bound, in basis
// points, between a one-sided deposit and the equivalent swap-plus-deposit.
const conversionBasisPointsGuarantee = 50

func uintInt(v uint64) sdkmath.Int { return sdkmath.NewIntFromUint64(v) }

// reservesFor orders (source, destination) into (tokenA, tokenB) for the
// given trade direction.
func reservesFor(direction TradeDirection, swapSourceAmount, swapDestinationAmount sdkmath.Int) (tokenA, tokenB sdkmath.Int) {
	if direction == AtoB {
		return swapSourceAmount, swapDestinationAmount
	}
	return swapDestinationAmount, swapSourceAmount
}

// checkDepositTokenConversion verifies that depositing one side directly
// mints nearly the same pool tokens as swapping half and depositing both
// results, within epsilon basis points. Truncation makes exact equality
// impossible.
func checkDepositTokenConversion(t *testing.T, calc Calculator, sourceTokenAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, direction TradeDirection, poolSupply sdkmath.Int, epsilonBasisPoints int64) {
	t.Helper()

	amountToSwap := sourceTokenAmount.QuoRaw(2)
	results, err := calc.SwapWithoutFees(amountToSwap, swapSourceAmount, swapDestinationAmount, direction)
	require.NoError(t, err)
	tokenA, tokenB := reservesFor(direction, swapSourceAmount, swapDestinationAmount)

	poolTokensFromOneSide, err := calc.DepositSingleTokenType(sourceTokenAmount, tokenA, tokenB, poolSupply, direction)
	require.NoError(t, err)

	// Deposit each side separately against the post-swap reserves.
	newTokenA, newTokenB := reservesFor(direction,
		swapSourceAmount.Add(results.SourceAmountSwapped),
		swapDestinationAmount.Sub(results.DestinationAmountSwapped))
	poolTokensFromSource, err := calc.DepositSingleTokenType(
		sourceTokenAmount.Sub(results.SourceAmountSwapped), newTokenA, newTokenB, poolSupply, direction)
	require.NoError(t, err)
	poolTokensFromDestination, err := calc.DepositSingleTokenType(
		results.DestinationAmountSwapped, newTokenA, newTokenB,
		poolSupply.Add(poolTokensFromSource), direction.Opposite())
	require.NoError(t, err)

	poolTokensTotalSeparate := poolTokensFromSource.Add(poolTokensFromDestination)

	epsilon := poolTokensTotalSeparate.MulRaw(epsilonBasisPoints).QuoRaw(10_000)
	if epsilon.LT(sdkmath.OneInt()) {
		epsilon = sdkmath.OneInt()
	}
	difference := poolTokensFromOneSide.Sub(poolTokensTotalSeparate).Abs()
	require.True(t, difference.LTE(epsilon),
		"one-sided %s vs separate %s differ by %s, epsilon %s",
		poolTokensFromOneSide, poolTokensTotalSeparate, difference, epsilon)
}

// checkCurveValueFromSwap verifies that a swap never shrinks the pool's
// normalized value.
func checkCurveValueFromSwap(t *testing.T, calc Calculator, sourceTokenAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, direction TradeDirection) {
	t.Helper()

	results, err := calc.SwapWithoutFees(sourceTokenAmount, swapSourceAmount, swapDestinationAmount, direction)
	require.NoError(t, err)
	tokenA, tokenB := reservesFor(direction, swapSourceAmount, swapDestinationAmount)
	previousValue, err := calc.NormalizedValue(tokenA, tokenB)
	require.NoError(t, err)

	newTokenA, newTokenB := reservesFor(direction,
		swapSourceAmount.Add(results.SourceAmountSwapped),
		swapDestinationAmount.Sub(results.DestinationAmountSwapped))
	newValue, err := calc.NormalizedValue(newTokenA, newTokenB)
	require.NoError(t, err)

	require.True(t, newValue.GTE(previousValue),
		"pool value dropped from %s to %s", previousValue, newValue)
}

// checkPoolValueFromDeposit verifies that minting pool tokens for a deposit
// never dilutes existing holders: value per pool token must not decrease.
func checkPoolValueFromDeposit(t *testing.T, calc Calculator, poolTokenAmount, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int) {
	t.Helper()

	// Depositing rounds the caller's contribution up for the pool tokens
	// minted.
	deposit, err := calc.PoolTokensToTradingTokens(poolTokenAmount, poolTokenSupply, swapTokenA, swapTokenB, Ceiling)
	require.NoError(t, err)
	requireValuePerTokenNonDecreasing(t, calc,
		swapTokenA, swapTokenB, poolTokenSupply,
		swapTokenA.Add(deposit.TokenAAmount), swapTokenB.Add(deposit.TokenBAmount),
		poolTokenSupply.Add(poolTokenAmount))
}

// checkPoolValueFromWithdraw verifies that burning pool tokens for a
// withdrawal never enriches the leaver at the remaining holders' expense.
func checkPoolValueFromWithdraw(t *testing.T, calc Calculator, poolTokenAmount, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int) {
	t.Helper()

	// Withdrawing pays out floored amounts for the pool tokens burned.
	withdraw, err := calc.PoolTokensToTradingTokens(poolTokenAmount, poolTokenSupply, swapTokenA, swapTokenB, Floor)
	require.NoError(t, err)
	requireValuePerTokenNonDecreasing(t, calc,
		swapTokenA, swapTokenB, poolTokenSupply,
		swapTokenA.Sub(withdraw.TokenAAmount), swapTokenB.Sub(withdraw.TokenBAmount),
		poolTokenSupply.Sub(poolTokenAmount))
}

func requireValuePerTokenNonDecreasing(t *testing.T, calc Calculator, oldA, oldB, oldSupply, newA, newB, newSupply sdkmath.Int) {
	t.Helper()

	oldValue, err := calc.NormalizedValue(oldA, oldB)
	require.NoError(t, err)
	newValue, err := calc.NormalizedValue(newA, newB)
	require.NoError(t, err)
	oldSupplyNum, err := precise.New(oldSupply)
	require.NoError(t, err)
	newSupplyNum, err := precise.New(newSupply)
	require.NoError(t, err)

	// newValue/newSupply >= oldValue/oldSupply, cross-multiplied to stay in
	// integer arithmetic.
	lhs, err := newValue.Mul(oldSupplyNum)
	require.NoError(t, err)
	rhs, err := oldValue.Mul(newSupplyNum)
	require.NoError(t, err)
	require.True(t, lhs.GTE(rhs), "value per pool token decreased")
}
