package curve

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// Fees holds every fee fraction applied around the raw curve math. Each
// fraction is either disabled (both parts zero) or a proper fraction below 1.
type Fees struct {
	// TradeFeeNumerator / TradeFeeDenominator stay in the token accounts on
	// every trade, raising the value of pool tokens.
	TradeFeeNumerator   uint64
	TradeFeeDenominator uint64

	// OwnerTradeFeeNumerator / OwnerTradeFeeDenominator are taken on every
	// trade for the pool owner, paid out as the pool-token equivalent.
	OwnerTradeFeeNumerator   uint64
	OwnerTradeFeeDenominator uint64

	// OwnerWithdrawFeeNumerator / OwnerWithdrawFeeDenominator are taken
	// from pool tokens on every withdrawal.
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64

	// HostFeeNumerator / HostFeeDenominator carve a sub-fraction out of the
	// owner trade fee for the frontend hosting the trade.
	HostFeeNumerator   uint64
	HostFeeDenominator uint64
}

// calculateFee applies a fee fraction to an amount. A non-zero fraction on a
// non-zero amount never returns zero: the fee floors at one token, so dust
// trades cannot duck the fee entirely.
func calculateFee(amount sdkmath.Int, numerator, denominator uint64) (sdkmath.Int, error) {
	if amount.IsNil() {
		return sdkmath.Int{}, ErrCalculation.Wrap("uninitialized amount")
	}
	if numerator == 0 || amount.IsZero() {
		return sdkmath.ZeroInt(), nil
	}
	v, err := amountToBig(amount)
	if err != nil {
		return sdkmath.Int{}, err
	}
	fee, err := checkedMul(v, new(big.Int).SetUint64(numerator), maxUint128)
	if err != nil {
		return sdkmath.Int{}, err
	}
	fee, err = checkedQuo(fee, new(big.Int).SetUint64(denominator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	if fee.Sign() == 0 {
		return sdkmath.OneInt(), nil
	}
	return sdkmath.NewIntFromBigInt(fee), nil
}

func validateFraction(numerator, denominator uint64) error {
	if denominator == 0 && numerator == 0 {
		return nil
	}
	if numerator >= denominator {
		return ErrInvalidFee.Wrapf("fraction %d/%d is not below one", numerator, denominator)
	}
	return nil
}

// TradingFee is the trade fee on a source amount, kept inside the pool.
func (f Fees) TradingFee(tradingTokens sdkmath.Int) (sdkmath.Int, error) {
	return calculateFee(tradingTokens, f.TradeFeeNumerator, f.TradeFeeDenominator)
}

// OwnerTradingFee is the owner's cut of a trade, in trading tokens.
func (f Fees) OwnerTradingFee(tradingTokens sdkmath.Int) (sdkmath.Int, error) {
	return calculateFee(tradingTokens, f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator)
}

// OwnerWithdrawFee is the withdrawal fee, in pool tokens.
func (f Fees) OwnerWithdrawFee(poolTokens sdkmath.Int) (sdkmath.Int, error) {
	return calculateFee(poolTokens, f.OwnerWithdrawFeeNumerator, f.OwnerWithdrawFeeDenominator)
}

// HostFee is the host's share of an already-computed owner fee.
func (f Fees) HostFee(ownerFee sdkmath.Int) (sdkmath.Int, error) {
	return calculateFee(ownerFee, f.HostFeeNumerator, f.HostFeeDenominator)
}

// Validate checks every fraction, returning ErrInvalidFee on the first one
// that is neither disabled nor below one.
func (f Fees) Validate() error {
	if err := validateFraction(f.TradeFeeNumerator, f.TradeFeeDenominator); err != nil {
		return err
	}
	if err := validateFraction(f.OwnerTradeFeeNumerator, f.OwnerTradeFeeDenominator); err != nil {
		return err
	}
	if err := validateFraction(f.OwnerWithdrawFeeNumerator, f.OwnerWithdrawFeeDenominator); err != nil {
		return err
	}
	return validateFraction(f.HostFeeNumerator, f.HostFeeDenominator)
}
