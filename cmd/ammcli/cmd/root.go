// Package cmd implements the ammcli command tree: offline quoting against a
// pool definition file, with no chain or network access involved.
package cmd

import (
	"os"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
)

const flagPool = "pool"

// NewRootCmd builds the ammcli root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ammcli",
		Short: "Offline quoting for AMM pool curves",
		Long: `ammcli prices swaps, single-sided deposits and withdrawals against a
pool definition without touching any chain state. The pool file declares the
curve variant, its parameter, the fee fractions and the current reserves.

Example:
  $ ammcli quote swap --pool pool.yaml --amount 100 --direction a-to-b`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String(flagPool, "pool.yaml", "path to the pool definition file")

	rootCmd.AddCommand(
		newQuoteCmd(),
		newValidateCmd(),
	)

	return rootCmd
}

// newLogger writes human-readable logs to stderr, keeping stdout for the
// quoted result.
func newLogger() log.Logger {
	return log.NewLogger(os.Stderr)
}
