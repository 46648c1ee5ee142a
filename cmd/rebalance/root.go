package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rebalance",
	Short: "Rebalance is a portfolio rebalancing toolkit",
	Long: `Rebalance computes the buy/sell orders needed to move a brokerage account
from its current allocation toward a target allocation, and reports the
account's current weights. Orders are proposed, never placed, unless
--execute is passed explicitly.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Optional; credentials may come from the real environment instead
		godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
