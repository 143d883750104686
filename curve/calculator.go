// Package curve implements the pricing formulas of an AMM liquidity pool:
// four interchangeable bonding curves behind one calculator contract, the fee
// fractions layered around them, and the checked arithmetic both depend on.
// Everything here is pure and deterministic; callers own all state.
package curve

import (
	sdkmath "cosmossdk.io/math"

	"github.com/openamm/swapmath/precise"
)

// InitialSwapPoolAmount is the fixed LP-token supply minted when a pool is
// created with no prior liquidity. Uniswap derives this from the geometric
// mean of the deposits and Balancer uses 100e18; a hard-coded supply keeps
// the share math independent of the first deposit's size.
const InitialSwapPoolAmount = 1_000_000_000

// TokensInPool is the number of trading-token types in a pool.
const TokensInPool = 2

// TradeDirection identifies which reserve the source amount flows into.
type TradeDirection uint8

const (
	// AtoB trades token A in for token B out.
	AtoB TradeDirection = iota
	// BtoA trades token B in for token A out.
	BtoA
)

// Opposite returns the reverse direction. It is an involution:
// d.Opposite().Opposite() == d.
func (d TradeDirection) Opposite() TradeDirection {
	if d == AtoB {
		return BtoA
	}
	return AtoB
}

func (d TradeDirection) String() string {
	if d == AtoB {
		return "a-to-b"
	}
	return "b-to-a"
}

// RoundDirection controls how fractional LP-to-reserve conversions truncate.
// Floor is used on deposits and Ceiling on withdrawals so that rounding error
// always accrues to the pool, never to the caller.
type RoundDirection uint8

const (
	// Floor truncates toward zero.
	Floor RoundDirection = iota
	// Ceiling rounds away from zero.
	Ceiling
)

// SwapWithoutFeesResult carries both legs of a priced swap before any fee is
// taken. DestinationAmountSwapped is always at least 1; a swap that would
// move nothing is rejected rather than rounded to zero.
type SwapWithoutFeesResult struct {
	SourceAmountSwapped      sdkmath.Int
	DestinationAmountSwapped sdkmath.Int
}

// TradingTokenResult pairs the trading-token amounts corresponding to some
// quantity of pool tokens.
type TradingTokenResult struct {
	TokenAAmount sdkmath.Int
	TokenBAmount sdkmath.Int
}

// Calculator is the contract every curve variant implements. All amounts are
// non-negative integers; implementations report ErrCalculation when a request
// cannot be priced (overflow, zero output, violated precondition) and the
// named configuration errors from Validate and ValidateSupply.
type Calculator interface {
	// SwapWithoutFees prices a trade of sourceAmount against the given
	// reserves, before fees.
	SwapWithoutFees(sourceAmount, swapSourceAmount, swapDestinationAmount sdkmath.Int, direction TradeDirection) (SwapWithoutFeesResult, error)

	// PoolTokensToTradingTokens converts an LP-token quantity into the pair
	// of underlying reserve amounts it represents, proportional to the
	// curve's notion of total pool value.
	PoolTokensToTradingTokens(poolTokens, poolTokenSupply, swapTokenA, swapTokenB sdkmath.Int, round RoundDirection) (TradingTokenResult, error)

	// DepositSingleTokenType returns the LP tokens minted for a one-sided
	// deposit. Rounds down.
	DepositSingleTokenType(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error)

	// WithdrawSingleTokenTypeExactOut returns the LP tokens that must be
	// burned to withdraw exactly sourceAmount of one side. Rounds up.
	WithdrawSingleTokenTypeExactOut(sourceAmount, swapTokenA, swapTokenB, poolSupply sdkmath.Int, direction TradeDirection) (sdkmath.Int, error)

	// Validate checks the curve's own parameters.
	Validate() error

	// ValidateSupply checks the initial reserves at pool creation.
	ValidateSupply(tokenAAmount, tokenBAmount sdkmath.Int) error

	// AllowsDeposits reports whether the curve accepts deposits after pool
	// creation.
	AllowsDeposits() bool

	// NormalizedValue is a single-token-dimension scalar for total pool
	// value, used to verify that no operation sequence loses value.
	NormalizedValue(swapTokenA, swapTokenB sdkmath.Int) (precise.Number, error)

	// NewPoolSupply is the LP supply minted at pool creation.
	NewPoolSupply() sdkmath.Int
}

// defaultNewPoolSupply is shared by every variant; none currently overrides.
func defaultNewPoolSupply() sdkmath.Int {
	return sdkmath.NewInt(InitialSwapPoolAmount)
}

// defaultValidateSupply requires liquidity on both sides, the right default
// for multiplicative invariants.
func defaultValidateSupply(tokenAAmount, tokenBAmount sdkmath.Int) error {
	if tokenAAmount.IsNil() || !tokenAAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token A")
	}
	if tokenBAmount.IsNil() || !tokenBAmount.IsPositive() {
		return ErrEmptySupply.Wrap("token B")
	}
	return nil
}
