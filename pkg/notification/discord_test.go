package notification

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/rebalance/pkg/portfolio"
)

func TestNotifyProposedOrders(t *testing.T) {
	var payload DiscordWebhookPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	service := NewDiscordNotificationService(server.URL)
	err := service.NotifyProposedOrders("acc-1", decimal.NewFromInt(2000), []portfolio.Order{
		{ContractCode: "AAPL", Side: portfolio.SideSell, Amount: decimal.NewFromFloat(3.333), EstimatedOrderValue: decimal.NewFromInt(500)},
	})

	require.NoError(t, err)
	assert.Contains(t, payload.Content, "AAPL")
	assert.Contains(t, payload.Content, "SELL")
	assert.Contains(t, payload.Content, "500.00")
}

func TestNotificationsDisabledWithoutWebhookURL(t *testing.T) {
	service := NewDiscordNotificationService("")

	assert.NoError(t, service.NotifyError("Test", "message", "details"))
}

func TestNotifyErrorsOnUnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	service := NewDiscordNotificationService(server.URL)

	assert.Error(t, service.NotifyError("Test", "message", "details"))
}
