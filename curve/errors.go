package curve

import "cosmossdk.io/errors"

// ModuleName is the codespace for curve errors.
const ModuleName = "curve"

var (
	// ErrCalculation covers every expected, recoverable pricing failure:
	// overflow or underflow in an intermediate step, division by zero, or a
	// result that would round to zero where a non-zero result is required.
	// Callers should treat it as "this trade cannot be priced" and abort the
	// surrounding operation.
	ErrCalculation = errors.Register(ModuleName, 1, "calculation failure")

	// ErrInvalidFee reports a fee fraction with numerator >= denominator.
	ErrInvalidFee = errors.Register(ModuleName, 2, "invalid fee fraction")

	// ErrInvalidCurve reports a curve parameter that is out of range, such
	// as a zero fixed price or a zero reserve offset.
	ErrInvalidCurve = errors.Register(ModuleName, 3, "invalid curve parameters")

	// ErrEmptySupply reports empty initial reserves where the curve
	// requires liquidity at pool creation.
	ErrEmptySupply = errors.Register(ModuleName, 4, "empty pool supply")

	// ErrUnsupportedCurveType reports a curve type outside the closed
	// variant set.
	ErrUnsupportedCurveType = errors.Register(ModuleName, 5, "unsupported curve type")
)
