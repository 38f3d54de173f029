package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/engine"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/handlers"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/routes"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engines := engine.NewManager()
	require.NoError(t, engines.RegisterSymbol("BTC-USDT"))

	svc := service.NewOrderService(nil, nil, engines, nil, nil, nil)

	router := gin.New()
	routes.RegisterRoutes(router, svc, handlers.NewHub(nil))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func orderBody(side, typ, price, qty string) string {
	body := map[string]any{
		"user_id":  uuid.NewString(),
		"symbol":   "BTC-USDT",
		"side":     side,
		"type":     typ,
		"quantity": qty,
	}
	if price != "" {
		body["price"] = price
	}
	data, _ := json.Marshal(body)
	return string(data)
}

func TestPlaceOrderEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody("buy", "limit", "50000", "1"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusNew, resp.Status)
	assert.NotEmpty(t, resp.OrderID)
}

func TestPlaceOrderEndpointRejectsBadInput(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", "{not json", http.StatusBadRequest},
		{"missing user id", `{"symbol":"BTC-USDT","side":"buy","type":"limit","price":"1","quantity":"1"}`, http.StatusBadRequest},
		{"bad side", strings.Replace(orderBody("buy", "limit", "1", "1"), `"buy"`, `"long"`, 1), http.StatusBadRequest},
		{"unknown symbol", strings.Replace(orderBody("buy", "limit", "1", "1"), "BTC-USDT", "DOGE-USDT", 1), http.StatusNotFound},
		{"zero quantity", orderBody("buy", "limit", "50000", "0"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCancelOrderEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody("sell", "limit", "50000", "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	var placed models.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &placed))

	rec = doJSON(t, router, http.MethodDelete, "/api/orders/"+placed.OrderID+"?symbol=BTC-USDT", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var canceled models.CancelOrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &canceled))
	assert.True(t, canceled.Canceled)

	// same request again is a no-op, not an error
	rec = doJSON(t, router, http.MethodDelete, "/api/orders/"+placed.OrderID+"?symbol=BTC-USDT", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &canceled))
	assert.False(t, canceled.Canceled)

	rec = doJSON(t, router, http.MethodDelete, "/api/orders/"+placed.OrderID, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderBookEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody("buy", "limit", "49900", "2"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/orders", orderBody("sell", "limit", "50100", "3"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/orderbook?symbol=BTC-USDT", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var book models.OrderBookResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &book))
	require.Len(t, book.Bids, 1)
	require.Len(t, book.Asks, 1)
	assert.True(t, book.Bids[0].Price.LessThan(book.Asks[0].Price))

	rec = doJSON(t, router, http.MethodGet, "/api/orderbook", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/orderbook?symbol=DOGE-USDT", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTradesEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody("sell", "limit", "50000", "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/orders", orderBody("buy", "market", "", "1"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/trades?symbol=BTC-USDT", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TradesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Trades, 1)
	assert.Equal(t, models.SideBuy, resp.Trades[0].Side)
}

func TestSymbolEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/symbols", `{"symbol":"ETH-USDT"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/symbols", `{"symbol":"ETH-USDT"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/symbols", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SymbolsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.ElementsMatch(t, []string{"BTC-USDT", "ETH-USDT"}, resp.Symbols)
}
