package precise

import "cosmossdk.io/errors"

const codespace = "precise"

var (
	// ErrOverflow is returned when a value cannot be represented within the
	// inner 256-bit width, or when unscaling would exceed the 128-bit
	// boundary width.
	ErrOverflow = errors.Register(codespace, 1, "value exceeds representable range")

	// ErrUnderflow is returned when a subtraction would produce a negative
	// value. Amounts in this domain are never negative.
	ErrUnderflow = errors.Register(codespace, 2, "result would be negative")

	// ErrDivideByZero is returned on division by a zero value.
	ErrDivideByZero = errors.Register(codespace, 3, "division by zero")
)
