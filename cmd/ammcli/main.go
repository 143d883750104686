package main

import (
	"os"

	"github.com/openamm/swapmath/cmd/ammcli/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
