package tests

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"shop/entities"

	"github.com/lithammer/shortuuid/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderCreatedResponse struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func placeOrder(t *testing.T, basket map[int64]int) (int, orderCreatedResponse) {
	t.Helper()

	payload, err := json.Marshal(basket)
	require.NoError(t, err)

	httpReq, err := http.NewRequest(
		http.MethodPost,
		"http://localhost:8080/api/orders",
		bytes.NewBuffer(payload),
	)
	require.NoError(t, err)

	httpReq.Header.Set("Correlation-ID", shortuuid.New())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	defer resp.Body.Close()

	var created orderCreatedResponse
	if resp.StatusCode == http.StatusCreated {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	}

	return resp.StatusCode, created
}

// startLocationStream connects as a live subscriber and forwards every
// streamed update to the returned channel.
func startLocationStream(t *testing.T, ctx context.Context) <-chan entities.DeliveryLocationUpdate {
	t.Helper()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://localhost:8080/location-updates", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(httpReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updates := make(chan entities.DeliveryLocationUpdate, 16)

	go func() {
		defer resp.Body.Close()
		defer close(updates)

		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			var update entities.DeliveryLocationUpdate
			if err := json.Unmarshal(scanner.Bytes(), &update); err != nil {
				continue
			}
			updates <- update
		}
	}()

	return updates
}

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get("http://localhost:8080/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			assert.Less(t, resp.StatusCode, 300, "API not ready, http status: %d", resp.StatusCode)
		},
		time.Second*10,
		time.Millisecond*50,
	)
}
