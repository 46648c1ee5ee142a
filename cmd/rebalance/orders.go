package main

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quantfold/rebalance/pkg/alpaca"
	"github.com/quantfold/rebalance/pkg/portfolio"
)

var (
	ordersAccountID string
	ordersWeights   string
	ordersExecute   bool
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Compute the rebalancing orders for a target allocation",
	Long: `Compute the buy/sell orders that move the account toward the target
allocation. Weights are a JSON object of contract code to decimal weight;
they need not sum to 1, the remainder stays in cash.

Example:
  rebalance orders --account 12345 --weights '{"AAPL": 0.5, "MSFT": 0.3}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targetWeights := map[string]decimal.Decimal{}
		if err := json.Unmarshal([]byte(ordersWeights), &targetWeights); err != nil {
			return fmt.Errorf("invalid --weights: %v", err)
		}

		client, err := alpaca.NewClientFromEnv()
		if err != nil {
			return fmt.Errorf("error creating alpaca client: %v", err)
		}

		engine := portfolio.NewEngine(client, client)
		orders, err := engine.RebalancingOrders(cmd.Context(), ordersAccountID, targetWeights)
		if err != nil {
			return fmt.Errorf("error computing rebalancing orders: %v", err)
		}

		if len(orders) == 0 {
			fmt.Println("Portfolio already matches the target allocation; no orders needed")
			return nil
		}

		fmt.Printf("Proposed %d rebalancing orders:\n", len(orders))
		for _, order := range orders {
			fmt.Printf("\t%-4s %-8s amount=%s est. value=%s\n",
				order.Side, order.ContractCode, order.Amount.StringFixed(3), order.EstimatedOrderValue.StringFixed(2))
		}

		if !ordersExecute {
			fmt.Println("\nDry run; pass --execute to place these orders")
			return nil
		}

		for _, order := range orders {
			if err := client.PlaceOrder(cmd.Context(), order); err != nil {
				return fmt.Errorf("error placing %s order for %s: %v", order.Side, order.ContractCode, err)
			}
			fmt.Printf("Placed %s order for %s\n", order.Side, order.ContractCode)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(ordersCmd)

	ordersCmd.Flags().StringVar(&ordersAccountID, "account", "", "Brokerage account ID")
	ordersCmd.Flags().StringVar(&ordersWeights, "weights", "", "Target weights as JSON, e.g. '{\"AAPL\": 0.5}'")
	ordersCmd.Flags().BoolVar(&ordersExecute, "execute", false, "Place the proposed orders instead of printing them")

	ordersCmd.MarkFlagRequired("account")
	ordersCmd.MarkFlagRequired("weights")
}
