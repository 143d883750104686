package cmd

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/openamm/swapmath/curve"
)

// poolConfig is a fully parsed pool definition: the validated curve, its fee
// fractions and the current reserves.
type poolConfig struct {
	Curve    curve.SwapCurve
	Fees     curve.Fees
	ReserveA sdkmath.Int
	ReserveB sdkmath.Int
}

// loadPool reads and validates a pool definition file. Supported keys:
//
//	curve:          constant-product | constant-price | stable | offset
//	token_b_price:  parameter for constant-price
//	token_b_offset: parameter for offset
//	amp:            parameter for stable
//	reserves:
//	  token_a: <amount>
//	  token_b: <amount>
//	fees:
//	  trade_fee_numerator / trade_fee_denominator
//	  owner_trade_fee_numerator / owner_trade_fee_denominator
//	  owner_withdraw_fee_numerator / owner_withdraw_fee_denominator
//	  host_fee_numerator / host_fee_denominator
func loadPool(path string) (poolConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return poolConfig{}, fmt.Errorf("read pool definition: %w", err)
	}

	curveType, err := curve.ParseCurveType(cast.ToString(v.Get("curve")))
	if err != nil {
		return poolConfig{}, err
	}
	params := curve.Params{
		TokenBPrice:  cast.ToUint64(v.Get("token_b_price")),
		TokenBOffset: cast.ToUint64(v.Get("token_b_offset")),
		Amp:          cast.ToUint64(v.Get("amp")),
	}
	swapCurve, err := curve.NewSwapCurve(curveType, params)
	if err != nil {
		return poolConfig{}, err
	}

	fees := curve.Fees{
		TradeFeeNumerator:           cast.ToUint64(v.Get("fees.trade_fee_numerator")),
		TradeFeeDenominator:         cast.ToUint64(v.Get("fees.trade_fee_denominator")),
		OwnerTradeFeeNumerator:      cast.ToUint64(v.Get("fees.owner_trade_fee_numerator")),
		OwnerTradeFeeDenominator:    cast.ToUint64(v.Get("fees.owner_trade_fee_denominator")),
		OwnerWithdrawFeeNumerator:   cast.ToUint64(v.Get("fees.owner_withdraw_fee_numerator")),
		OwnerWithdrawFeeDenominator: cast.ToUint64(v.Get("fees.owner_withdraw_fee_denominator")),
		HostFeeNumerator:            cast.ToUint64(v.Get("fees.host_fee_numerator")),
		HostFeeDenominator:          cast.ToUint64(v.Get("fees.host_fee_denominator")),
	}
	if err := fees.Validate(); err != nil {
		return poolConfig{}, err
	}

	return poolConfig{
		Curve:    swapCurve,
		Fees:     fees,
		ReserveA: sdkmath.NewIntFromUint64(cast.ToUint64(v.Get("reserves.token_a"))),
		ReserveB: sdkmath.NewIntFromUint64(cast.ToUint64(v.Get("reserves.token_b"))),
	}, nil
}

// parseDirection accepts the same names TradeDirection prints.
func parseDirection(s string) (curve.TradeDirection, error) {
	switch s {
	case curve.AtoB.String():
		return curve.AtoB, nil
	case curve.BtoA.String():
		return curve.BtoA, nil
	default:
		return 0, fmt.Errorf("unknown trade direction %q", s)
	}
}

// parseAmount parses a decimal token amount from a flag.
func parseAmount(s string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}
