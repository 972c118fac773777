package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

const (
	BaseURLMainnet = "https://fapi.binance.com"
	BaseURLTestnet = "https://testnet.binancefuture.com"

	pathPing         = "/fapi/v1/ping"
	pathExchangeInfo = "/fapi/v1/exchangeInfo"
	pathOrder        = "/fapi/v1/order"
	pathLeverage     = "/fapi/v1/leverage"

	defaultRecvWindow = "5000"
)

// BaseURL selects the REST base URL for the requested network.
func BaseURL(mainnet bool) string {
	if mainnet {
		return BaseURLMainnet
	}
	return BaseURLTestnet
}

// BinanceClient talks to the Binance USDT-M futures REST API. Signed
// endpoints carry an HMAC-SHA256 signature over the canonical query string;
// in dry-run mode signed requests are synthesized locally and never sent.
type BinanceClient struct {
	apiKey    string
	secretKey []byte

	BaseURL string
	Client  *http.Client
	DryRun  bool
	Retry   RetryPolicy
	Filters *FilterCache
}

func NewBinanceClient(apiKey, secretKey string, mainnet, dryRun bool) *BinanceClient {
	return &BinanceClient{
		apiKey:    apiKey,
		secretKey: []byte(secretKey),
		BaseURL:   BaseURL(mainnet),
		Client:    &http.Client{Timeout: 30 * time.Second},
		DryRun:    dryRun,
		Retry:     DefaultRetryPolicy(),
		Filters:   NewFilterCache(),
	}
}

func (c *BinanceClient) sign(queryString string) string {
	mac := hmac.New(sha256.New, c.secretKey)
	mac.Write([]byte(queryString))
	return hex.EncodeToString(mac.Sum(nil))
}

// signParams injects timestamp and recvWindow when absent, then returns the
// raw query with the signature appended last. The signature is computed over
// every other parameter and is never part of its own input.
func (c *BinanceClient) signParams(params url.Values) string {
	if params.Get("timestamp") == "" {
		params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
	}
	if params.Get("recvWindow") == "" {
		params.Set("recvWindow", defaultRecvWindow)
	}
	query := params.Encode()
	return query + "&signature=" + c.sign(query)
}

// do performs one logical request with retries. params.Encode() is the
// canonical query (sorted keys), so signing is deterministic for identical
// parameters and timestamp.
func (c *BinanceClient) do(ctx context.Context, method, path string, signed bool, params url.Values) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}

	rawQuery := params.Encode()
	if signed {
		rawQuery = c.signParams(params)
		if c.DryRun {
			return c.dryRunStub(ctx, method, path, params)
		}
	}
	// Everything except the signature; what gets logged.
	logQuery := params.Encode()

	var body []byte
	err := c.Retry.Do(ctx, func() error {
		var attemptErr error
		body, attemptErr = c.attempt(ctx, method, path, rawQuery, logQuery, signed)
		return attemptErr
	})
	return body, err
}

func (c *BinanceClient) attempt(ctx context.Context, method, path, rawQuery, logQuery string, signed bool) ([]byte, error) {
	op := method + " " + path

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = rawQuery
	if signed || c.apiKey != "" {
		req.Header.Set("X-MBX-APIKEY", c.apiKey)
	}

	start := time.Now()
	resp, err := c.Client.Do(req)
	latency := time.Since(start)
	if err != nil {
		tErr := &TransportError{Op: op, Err: err}
		logger.Error("http",
			"method", method,
			"path", path,
			"params", logQuery,
			"error", err.Error(),
			"req_id", logger.ReqID(ctx),
		)
		return nil, tErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		tErr := &TransportError{Op: op, Err: err}
		logger.Error("http",
			"method", method,
			"path", path,
			"params", logQuery,
			"error", err.Error(),
			"req_id", logger.ReqID(ctx),
		)
		return nil, tErr
	}

	if resp.StatusCode >= 400 {
		exErr := newExchangeError(resp.StatusCode, body)
		logger.Error("http",
			"method", method,
			"path", path,
			"params", logQuery,
			"status", resp.StatusCode,
			"body", string(body),
			"req_id", logger.ReqID(ctx),
		)
		return nil, exErr
	}

	logger.Info("http",
		"method", method,
		"path", path,
		"params", logQuery,
		"status", resp.StatusCode,
		"latency_ms", latency.Milliseconds(),
		"req_id", logger.ReqID(ctx),
	)
	return body, nil
}

// dryRunStub fabricates a response for a signed request without touching the
// network, logged with the same shape as a live call so strategies behave
// identically either way. Order creation gets a pseudo orderId derived from
// the current time and status NEW.
func (c *BinanceClient) dryRunStub(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	stub := map[string]any{
		"dryRun": true,
		"method": method,
		"path":   path,
	}
	if path == pathOrder && method == http.MethodPost {
		stub["orderId"] = time.Now().UnixMilli() % 10_000_000
		stub["status"] = "NEW"
		stub["symbol"] = params.Get("symbol")
		stub["side"] = params.Get("side")
		stub["type"] = params.Get("type")
		stub["price"] = params.Get("price")
		stub["origQty"] = params.Get("quantity")
		stub["timeInForce"] = params.Get("timeInForce")
	}

	logger.Info("http-dryrun",
		"method", method,
		"path", path,
		"params", params.Encode(),
		"req_id", logger.ReqID(ctx),
	)
	return json.Marshal(stub)
}

// Ping checks REST connectivity (unsigned).
func (c *BinanceClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, pathPing, false, nil)
	return err
}

// ExchangeInfo fetches trading rules for one symbol (unsigned).
func (c *BinanceClient) ExchangeInfo(ctx context.Context, symbol string) (*model.ExchangeInfoResponse, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))

	body, err := c.do(ctx, http.MethodGet, pathExchangeInfo, false, params)
	if err != nil {
		return nil, err
	}

	var info model.ExchangeInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse exchange info: %w", err)
	}
	return &info, nil
}

// SymbolFilters returns the symbol's trading constraints, fetching exchange
// info at most once per symbol per session unless the cache was invalidated.
func (c *BinanceClient) SymbolFilters(ctx context.Context, symbol string) (model.SymbolFilters, error) {
	key := strings.ToUpper(symbol)
	if f, ok := c.Filters.Get(key); ok {
		return f, nil
	}

	info, err := c.ExchangeInfo(ctx, key)
	if err != nil {
		return model.SymbolFilters{}, err
	}
	f, err := model.ParseSymbolFilters(info)
	if err != nil {
		return model.SymbolFilters{}, err
	}

	c.Filters.Put(key, f)
	return f, nil
}

// RefreshSymbolFilters drops the cached constraints and refetches them.
func (c *BinanceClient) RefreshSymbolFilters(ctx context.Context, symbol string) (model.SymbolFilters, error) {
	c.Filters.Invalidate(strings.ToUpper(symbol))
	return c.SymbolFilters(ctx, symbol)
}

// PlaceOrder submits a new order (signed).
func (c *BinanceClient) PlaceOrder(ctx context.Context, params url.Values) (*model.OrderResponse, error) {
	body, err := c.do(ctx, http.MethodPost, pathOrder, true, params)
	if err != nil {
		return nil, err
	}

	var order model.OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order response: %w", err)
	}
	return &order, nil
}

// SetLeverage changes the initial leverage for a symbol (signed).
func (c *BinanceClient) SetLeverage(ctx context.Context, symbol string, leverage int) (*model.LeverageResponse, error) {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	params.Set("leverage", strconv.Itoa(leverage))

	body, err := c.do(ctx, http.MethodPost, pathLeverage, true, params)
	if err != nil {
		return nil, err
	}

	var lev model.LeverageResponse
	if err := json.Unmarshal(body, &lev); err != nil {
		return nil, fmt.Errorf("failed to parse leverage response: %w", err)
	}
	return &lev, nil
}

// GetOrder queries an order by exchange id or client order id (signed).
func (c *BinanceClient) GetOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (*model.OrderResponse, error) {
	params := orderLookupParams(symbol, orderID, clientOrderID)

	body, err := c.do(ctx, http.MethodGet, pathOrder, true, params)
	if err != nil {
		return nil, err
	}

	var order model.OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order response: %w", err)
	}
	return &order, nil
}

// CancelOrder cancels an order by exchange id or client order id (signed).
func (c *BinanceClient) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (*model.OrderResponse, error) {
	params := orderLookupParams(symbol, orderID, clientOrderID)

	body, err := c.do(ctx, http.MethodDelete, pathOrder, true, params)
	if err != nil {
		return nil, err
	}

	var order model.OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse cancel response: %w", err)
	}
	return &order, nil
}

func orderLookupParams(symbol string, orderID int64, clientOrderID string) url.Values {
	params := url.Values{}
	params.Set("symbol", strings.ToUpper(symbol))
	if orderID != 0 {
		params.Set("orderId", strconv.FormatInt(orderID, 10))
	}
	if clientOrderID != "" {
		params.Set("origClientOrderId", clientOrderID)
	}
	return params
}
