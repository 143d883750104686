package cmd

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"

	"github.com/openamm/swapmath/curve"
)

const (
	flagAmount     = "amount"
	flagDirection  = "direction"
	flagPoolSupply = "pool-supply"
	flagRound      = "round"
)

func newQuoteCmd() *cobra.Command {
	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price operations against a pool definition",
	}

	quoteCmd.AddCommand(
		newQuoteSwapCmd(),
		newQuoteDepositCmd(),
		newQuoteWithdrawCmd(),
		newQuoteRedeemCmd(),
	)

	return quoteCmd
}

// printYAML renders a quote result to stdout.
func printYAML(cmd *cobra.Command, v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	cmd.Print(string(out))
	return nil
}

func newQuoteSwapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Quote a fee-inclusive swap",
		Long: `Quote a swap against the pool's curve with the trade and owner fees
taken off the source amount.

Example:
  $ ammcli quote swap --pool pool.yaml --amount 100 --direction a-to-b`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			pool, amount, direction, err := quoteInputs(cmd)
			if err != nil {
				return err
			}

			swapSource, swapDestination := pool.ReserveA, pool.ReserveB
			if direction == curve.BtoA {
				swapSource, swapDestination = pool.ReserveB, pool.ReserveA
			}
			result, err := pool.Curve.Swap(amount, swapSource, swapDestination, direction, pool.Fees)
			if err != nil {
				return err
			}
			logger.Info("priced swap",
				"curve", pool.Curve.CurveType.String(),
				"direction", direction.String(),
				"source", result.SourceAmountSwapped.String(),
				"destination", result.DestinationAmountSwapped.String(),
			)

			return printYAML(cmd, struct {
				SourceAmountSwapped      string `yaml:"source_amount_swapped"`
				DestinationAmountSwapped string `yaml:"destination_amount_swapped"`
				TradeFee                 string `yaml:"trade_fee"`
				OwnerFee                 string `yaml:"owner_fee"`
				NewSourceReserve         string `yaml:"new_source_reserve"`
				NewDestinationReserve    string `yaml:"new_destination_reserve"`
			}{
				SourceAmountSwapped:      result.SourceAmountSwapped.String(),
				DestinationAmountSwapped: result.DestinationAmountSwapped.String(),
				TradeFee:                 result.TradeFee.String(),
				OwnerFee:                 result.OwnerFee.String(),
				NewSourceReserve:         result.NewSwapSourceAmount.String(),
				NewDestinationReserve:    result.NewSwapDestinationAmount.String(),
			})
		},
	}
	addQuoteFlags(cmd)
	return cmd
}

func newQuoteDepositCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Quote the pool tokens minted for a one-sided deposit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, amount, direction, err := quoteInputs(cmd)
			if err != nil {
				return err
			}
			if !pool.Curve.Calculator.AllowsDeposits() {
				return fmt.Errorf("%s pools do not accept deposits", pool.Curve.CurveType)
			}
			supply, err := poolSupply(cmd, pool)
			if err != nil {
				return err
			}

			minted, err := pool.Curve.DepositSingleTokenType(
				amount, pool.ReserveA, pool.ReserveB, supply, direction, pool.Fees)
			if err != nil {
				return err
			}
			return printYAML(cmd, struct {
				PoolTokensMinted string `yaml:"pool_tokens_minted"`
			}{minted.String()})
		},
	}
	addQuoteFlags(cmd)
	return cmd
}

func newQuoteWithdrawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Quote the pool tokens burned for an exact one-sided withdrawal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, amount, direction, err := quoteInputs(cmd)
			if err != nil {
				return err
			}
			supply, err := poolSupply(cmd, pool)
			if err != nil {
				return err
			}

			burned, err := pool.Curve.WithdrawSingleTokenTypeExactOut(
				amount, pool.ReserveA, pool.ReserveB, supply, direction, pool.Fees)
			if err != nil {
				return err
			}
			return printYAML(cmd, struct {
				PoolTokensBurned string `yaml:"pool_tokens_burned"`
			}{burned.String()})
		},
	}
	addQuoteFlags(cmd)
	return cmd
}

func newQuoteRedeemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem",
		Short: "Convert pool tokens to the trading-token pair they represent",
		Long: `Convert a pool-token amount into its share of both reserves. The round
flag picks the truncation: floor pays out a withdrawal, ceiling prices a
proportional deposit.

Example:
  $ ammcli quote redeem --pool pool.yaml --amount 10 --round floor`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			poolPath, err := cmd.Flags().GetString(flagPool)
			if err != nil {
				return err
			}
			pool, err := loadPool(poolPath)
			if err != nil {
				return err
			}
			amountStr, err := cmd.Flags().GetString(flagAmount)
			if err != nil {
				return err
			}
			amount, err := parseAmount(amountStr)
			if err != nil {
				return err
			}
			supply, err := poolSupply(cmd, pool)
			if err != nil {
				return err
			}
			roundStr, err := cmd.Flags().GetString(flagRound)
			if err != nil {
				return err
			}
			round := curve.Floor
			switch roundStr {
			case "floor":
			case "ceiling":
				round = curve.Ceiling
			default:
				return fmt.Errorf("unknown round direction %q", roundStr)
			}

			result, err := pool.Curve.Calculator.PoolTokensToTradingTokens(
				amount, supply, pool.ReserveA, pool.ReserveB, round)
			if err != nil {
				return err
			}
			return printYAML(cmd, struct {
				TokenAAmount string `yaml:"token_a_amount"`
				TokenBAmount string `yaml:"token_b_amount"`
			}{result.TokenAAmount.String(), result.TokenBAmount.String()})
		},
	}
	addAmountFlags(cmd.Flags())
	cmd.Flags().String(flagRound, "floor", "rounding: floor or ceiling")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate a pool definition file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			poolPath, err := cmd.Flags().GetString(flagPool)
			if err != nil {
				return err
			}
			pool, err := loadPool(poolPath)
			if err != nil {
				return err
			}
			if err := pool.Curve.Calculator.ValidateSupply(pool.ReserveA, pool.ReserveB); err != nil {
				return err
			}
			newLogger().Info("pool definition valid",
				"curve", pool.Curve.CurveType.String(),
				"token_a", pool.ReserveA.String(),
				"token_b", pool.ReserveB.String(),
			)
			return nil
		},
	}
}

func addQuoteFlags(cmd *cobra.Command) {
	addAmountFlags(cmd.Flags())
	cmd.Flags().String(flagDirection, curve.AtoB.String(), "trade direction: a-to-b or b-to-a")
}

func addAmountFlags(fs *pflag.FlagSet) {
	fs.String(flagAmount, "", "source token amount")
	fs.String(flagPoolSupply, "", "current pool token supply (defaults to the initial supply)")
}

// quoteInputs gathers the pool definition, amount and direction shared by the
// quote subcommands.
func quoteInputs(cmd *cobra.Command) (poolConfig, sdkmath.Int, curve.TradeDirection, error) {
	poolPath, err := cmd.Flags().GetString(flagPool)
	if err != nil {
		return poolConfig{}, sdkmath.Int{}, 0, err
	}
	pool, err := loadPool(poolPath)
	if err != nil {
		return poolConfig{}, sdkmath.Int{}, 0, err
	}
	amountStr, err := cmd.Flags().GetString(flagAmount)
	if err != nil {
		return poolConfig{}, sdkmath.Int{}, 0, err
	}
	amount, err := parseAmount(amountStr)
	if err != nil {
		return poolConfig{}, sdkmath.Int{}, 0, err
	}
	directionStr, err := cmd.Flags().GetString(flagDirection)
	if err != nil {
		return poolConfig{}, sdkmath.Int{}, 0, err
	}
	direction, err := parseDirection(directionStr)
	if err != nil {
		return poolConfig{}, sdkmath.Int{}, 0, err
	}
	return pool, amount, direction, nil
}

// poolSupply reads the supply flag, defaulting to the curve's initial supply.
func poolSupply(cmd *cobra.Command, pool poolConfig) (sdkmath.Int, error) {
	supplyStr, err := cmd.Flags().GetString(flagPoolSupply)
	if err != nil {
		return sdkmath.Int{}, err
	}
	if supplyStr == "" {
		return pool.Curve.Calculator.NewPoolSupply(), nil
	}
	return parseAmount(supplyStr)
}
