package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/pkg/portfolio"
)

// DiscordNotificationService handles sending notifications to Discord
type DiscordNotificationService struct {
	webhookURL string
	enabled    bool
}

// DiscordWebhookPayload represents the payload sent to Discord webhook
type DiscordWebhookPayload struct {
	Content string `json:"content"`
}

// NewDiscordNotificationService creates a new Discord notification service.
// An empty webhook URL disables notifications.
func NewDiscordNotificationService(webhookURL string) *DiscordNotificationService {
	return &DiscordNotificationService{
		webhookURL: webhookURL,
		enabled:    webhookURL != "",
	}
}

// sendNotification sends a notification to Discord
func (d *DiscordNotificationService) sendNotification(message string) error {
	if !d.enabled {
		return nil
	}

	payload := DiscordWebhookPayload{
		Content: message,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Discord payload: %w", err)
	}

	resp, err := http.Post(d.webhookURL, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send Discord notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}

	return nil
}

// NotifyProposedOrders sends the proposed rebalancing order list
func (d *DiscordNotificationService) NotifyProposedOrders(accountID string, portfolioValue decimal.Decimal, orders []portfolio.Order) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚖️ **Rebalancing Proposal**\n"+
		"Account: %s\n"+
		"Portfolio Value: $%s\n"+
		"Orders: %d\n",
		accountID, portfolioValue.StringFixed(2), len(orders)))
	for _, order := range orders {
		sb.WriteString(fmt.Sprintf("%s **%s** %s shares (~$%s)\n",
			order.Side, order.ContractCode, order.Amount.StringFixed(3), order.EstimatedOrderValue.StringFixed(2)))
	}

	return d.sendNotification(sb.String())
}

// NotifyRunComplete sends a summary when a rebalancing run finishes
func (d *DiscordNotificationService) NotifyRunComplete(accountID string, proposed, executed int, portfolioValue decimal.Decimal) error {
	message := fmt.Sprintf("✅ **Rebalancing Run Complete**\n"+
		"Account: %s\n"+
		"Orders Proposed: %d\n"+
		"Orders Executed: %d\n"+
		"Portfolio Value: $%s",
		accountID, proposed, executed, portfolioValue.StringFixed(2))

	return d.sendNotification(message)
}

// NotifyError sends a notification for errors
func (d *DiscordNotificationService) NotifyError(errorType string, message string, details string) error {
	errorMessage := fmt.Sprintf("⚠️ **Error Alert**\n"+
		"**%s**\n"+
		"%s\n"+
		"Details: %s",
		errorType, message, details)

	return d.sendNotification(errorMessage)
}
