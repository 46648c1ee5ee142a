// Package alpaca implements the account, market data and execution service
// interfaces on top of the Alpaca trading API.
package alpaca

import (
	"fmt"
	"os"
	"strings"

	alpaca "github.com/alpacahq/alpaca-trade-api-go/v2/alpaca"
	alpacadata "github.com/alpacahq/alpaca-trade-api-go/v2/marketdata"
)

// Client wraps the Alpaca trading and market data clients. A single Client
// satisfies account.Service, marketdata.Service and execution.Service.
type Client struct {
	trading alpaca.Client
	market  alpacadata.Client
}

// Config holds the Alpaca credentials and environment selection
type Config struct {
	APIKey         string
	SecretKey      string
	IsPaperTrading bool
}

// NewClient creates a new Alpaca client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("alpaca API key and secret key must be set")
	}

	tradingBaseURL := "https://api.alpaca.markets"
	if cfg.IsPaperTrading {
		tradingBaseURL = "https://paper-api.alpaca.markets"
	}

	trading := alpaca.NewClient(alpaca.ClientOpts{
		ApiKey:    cfg.APIKey,
		ApiSecret: cfg.SecretKey,
		BaseURL:   tradingBaseURL,
	})
	market := alpacadata.NewClient(alpacadata.ClientOpts{
		ApiKey:    cfg.APIKey,
		ApiSecret: cfg.SecretKey,
		BaseURL:   "https://data.alpaca.markets",
	})

	return &Client{
		trading: trading,
		market:  market,
	}, nil
}

// NewClientFromEnv creates a new Alpaca client from the ALPACA_API_KEY,
// ALPACA_SECRET_KEY and IS_PAPER_TRADING environment variables.
func NewClientFromEnv() (*Client, error) {
	paper := strings.ToLower(os.Getenv("IS_PAPER_TRADING"))
	return NewClient(Config{
		APIKey:         os.Getenv("ALPACA_API_KEY"),
		SecretKey:      os.Getenv("ALPACA_SECRET_KEY"),
		IsPaperTrading: paper == "" || paper == "true" || paper == "1" || paper == "yes",
	})
}
