package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "A multi-instrument portfolio strategy research platform",
	Long: `Portfolio is the decision core of a multi-instrument trading strategy.

It provides tools for:
  - Replaying recorded bar slices through the strategy core
  - VaR-budgeted position sizing across a portfolio of instruments
  - Trailing-stop exit management per instrument
  - Journaling rebalance instructions and signal snapshots
  - Generating and validating configuration files`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
