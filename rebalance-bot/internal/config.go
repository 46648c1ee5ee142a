package internal

import "github.com/shopspring/decimal"

// Config holds the application configuration
type Config struct {
	AlpacaAPIKey    string
	AlpacaSecretKey string
	IsPaperTrading  bool

	// Account and target allocation
	AccountID     string
	TargetWeights map[string]decimal.Decimal

	// When false the bot only proposes and records orders
	ExecuteOrders bool

	// DynamoDB configuration
	DynamoDBRegion string
	TableName      string

	// Discord notifications
	DiscordWebhookURL string
}
