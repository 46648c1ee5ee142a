package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/quantfold/rebalance/rebalance-bot/internal"
)

// Lambda handler for AWS Lambda triggered by EventBridge Scheduler
func handler(ctx context.Context, request events.CloudWatchEvent) error {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Info().Str("event_id", request.ID).Msg("rebalance bot triggered by EventBridge Scheduler")

	config, err := loadConfigFromEnv()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}

	bot, err := internal.NewRebalanceBot(config, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to create rebalance bot")
		return err
	}

	// Lambda cap; the upstream services get whatever remains of it
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	if err := bot.Run(ctx); err != nil {
		log.Error().Err(err).Msg("rebalance bot failed")
		return err
	}

	log.Info().Msg("rebalance bot completed successfully")
	return nil
}

// loadConfigFromEnv loads configuration from environment variables
func loadConfigFromEnv() (*internal.Config, error) {
	config := &internal.Config{}

	config.AlpacaAPIKey = getEnvOrFail("ALPACA_API_KEY")
	config.AlpacaSecretKey = getEnvOrFail("ALPACA_SECRET_KEY")
	config.AccountID = getEnvOrFail("ACCOUNT_ID")

	weights, err := parseTargetWeights(getEnvOrFail("TARGET_WEIGHTS"))
	if err != nil {
		return nil, err
	}
	config.TargetWeights = weights

	config.DynamoDBRegion = getEnvOrDefault("DYNAMODB_REGION", "us-east-1")
	config.TableName = getEnvOrDefault("TABLE_NAME", "rebalance-history")

	config.IsPaperTrading = getEnvAsBoolOrDefault("IS_PAPER_TRADING", true)
	config.ExecuteOrders = getEnvAsBoolOrDefault("EXECUTE_ORDERS", false)

	config.DiscordWebhookURL = getEnvOrDefault("DISCORD_WEBHOOK_URL", "")

	return config, nil
}

// parseTargetWeights parses a JSON object of contract code to decimal weight,
// e.g. {"AAPL": 0.4, "MSFT": 0.4}
func parseTargetWeights(raw string) (map[string]decimal.Decimal, error) {
	weights := map[string]decimal.Decimal{}
	if err := json.Unmarshal([]byte(raw), &weights); err != nil {
		return nil, fmt.Errorf("invalid TARGET_WEIGHTS %q: %w", raw, err)
	}
	return weights, nil
}

// getEnvOrFail gets an environment variable or panics if not found
func getEnvOrFail(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

// getEnvOrDefault gets an environment variable or returns a default value
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsBoolOrDefault gets an environment variable as bool or returns a default value
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	lowerValue := strings.ToLower(value)
	return lowerValue == "true" || lowerValue == "1" || lowerValue == "yes"
}

func main() {
	lambda.Start(handler)
}
