package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quantfold/rebalance/pkg/alpaca"
	"github.com/quantfold/rebalance/pkg/execution"
	"github.com/quantfold/rebalance/pkg/history"
	"github.com/quantfold/rebalance/pkg/notification"
	"github.com/quantfold/rebalance/pkg/portfolio"
)

// RebalanceBot orchestrates a full rebalancing cycle: compute the proposed
// orders, record them, notify, and optionally execute them.
type RebalanceBot struct {
	config              *Config
	engine              *portfolio.Engine
	executionService    execution.Service
	historyService      *history.Service
	notificationService *notification.DiscordNotificationService
	log                 zerolog.Logger
}

// NewRebalanceBot creates a new rebalance bot instance
func NewRebalanceBot(config *Config, log zerolog.Logger) (*RebalanceBot, error) {
	alpacaClient, err := alpaca.NewClient(alpaca.Config{
		APIKey:         config.AlpacaAPIKey,
		SecretKey:      config.AlpacaSecretKey,
		IsPaperTrading: config.IsPaperTrading,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Alpaca client: %w", err)
	}

	historyService, err := history.NewService(config.DynamoDBRegion, config.TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create history service: %w", err)
	}

	return &RebalanceBot{
		config:              config,
		engine:              portfolio.NewEngine(alpacaClient, alpacaClient),
		executionService:    alpacaClient,
		historyService:      historyService,
		notificationService: notification.NewDiscordNotificationService(config.DiscordWebhookURL),
		log:                 log.With().Str("component", "rebalance-bot").Logger(),
	}, nil
}

// Run executes one rebalancing cycle
func (rb *RebalanceBot) Run(ctx context.Context) error {
	rb.log.Info().
		Str("account_id", rb.config.AccountID).
		Int("target_instruments", len(rb.config.TargetWeights)).
		Bool("execute", rb.config.ExecuteOrders).
		Msg("starting rebalancing cycle")

	proposal, err := rb.engine.ProposeRebalancing(ctx, rb.config.AccountID, rb.config.TargetWeights)
	if err != nil {
		rb.notificationService.NotifyError("Rebalancing", "Failed to compute rebalancing orders", err.Error())
		return fmt.Errorf("failed to compute rebalancing orders: %w", err)
	}
	// Orders and value come from the same snapshot
	orders, value := proposal.Orders, proposal.PortfolioValue

	rb.log.Info().
		Int("orders", len(orders)).
		Str("portfolio_value", value.StringFixed(2)).
		Msg("computed rebalancing proposal")

	executed := 0
	if rb.config.ExecuteOrders {
		executed = rb.executeOrders(ctx, orders)
	}

	run := history.RebalanceRun{
		UUID:           uuid.New(),
		AccountID:      rb.config.AccountID,
		PortfolioValue: value,
		Orders:         orders,
		Executed:       rb.config.ExecuteOrders,
		CreatedAt:      time.Now().UTC(),
	}
	if err := rb.historyService.SaveRun(ctx, run); err != nil {
		rb.log.Warn().Err(err).Msg("failed to record rebalancing run")
		rb.notificationService.NotifyError("History", "Failed to record rebalancing run", err.Error())
	}

	if len(orders) > 0 {
		rb.notificationService.NotifyProposedOrders(rb.config.AccountID, value, orders)
	}
	rb.notificationService.NotifyRunComplete(rb.config.AccountID, len(orders), executed, value)

	rb.log.Info().Msg("rebalancing cycle completed")
	return nil
}

// executeOrders submits each proposed order, continuing past individual
// failures so one rejected order does not strand the rest of the proposal.
func (rb *RebalanceBot) executeOrders(ctx context.Context, orders []portfolio.Order) int {
	executed := 0
	for _, order := range orders {
		if err := rb.executionService.PlaceOrder(ctx, order); err != nil {
			rb.log.Error().
				Err(err).
				Str("contract_code", order.ContractCode).
				Str("side", string(order.Side)).
				Msg("failed to place order")
			rb.notificationService.NotifyError("Order Execution",
				fmt.Sprintf("Failed to place %s order for %s", order.Side, order.ContractCode), err.Error())
			continue
		}
		rb.log.Info().
			Str("contract_code", order.ContractCode).
			Str("side", string(order.Side)).
			Str("amount", order.Amount.StringFixed(3)).
			Msg("order placed")
		executed++
	}
	return executed
}
