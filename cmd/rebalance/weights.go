package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quantfold/rebalance/pkg/alpaca"
	"github.com/quantfold/rebalance/pkg/portfolio"
)

var weightsAccountID string

var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show the current allocation of the account",
	Long: `Show the account's current allocation as decimal weights, including its
cash component.

Example:
  rebalance weights --account 12345`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := alpaca.NewClientFromEnv()
		if err != nil {
			return fmt.Errorf("error creating alpaca client: %v", err)
		}

		engine := portfolio.NewEngine(client, client)
		weights, err := engine.CurrentPortfolioWeights(cmd.Context(), weightsAccountID)
		if err != nil {
			return fmt.Errorf("error computing current weights: %v", err)
		}

		fmt.Printf("Current allocation for account %s:\n", weightsAccountID)
		for _, weight := range weights {
			fmt.Printf("\t%-8s %s\n", weight.ContractCode, weight.Weight.StringFixed(4))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(weightsCmd)

	weightsCmd.Flags().StringVar(&weightsAccountID, "account", "", "Brokerage account ID")
	weightsCmd.MarkFlagRequired("account")
}
