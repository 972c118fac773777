package core

import (
	"context"

	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

// StopLimitConfig describes a STOP order: once StopPrice triggers, a limit
// order at LimitPrice goes on the book.
type StopLimitConfig struct {
	Symbol     string
	Side       string
	Quantity   float64
	StopPrice  float64
	LimitPrice float64
	Opts       Options
}

// PlaceStopLimit validates against the limit price and submits one STOP
// order carrying both trigger and limit price, with price protection on.
func PlaceStopLimit(ctx context.Context, ex Exchange, cfg StopLimitConfig) (*model.OrderResponse, error) {
	symbol, side, err := normalizeOrder(cfg.Symbol, cfg.Side)
	if err != nil {
		return nil, err
	}

	filters, err := ex.SymbolFilters(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if err := Validate(filters, cfg.Quantity, &cfg.LimitPrice); err != nil {
		return nil, err
	}

	params := baseParams(symbol, side, cfg.Opts)
	params.Set("type", model.TypeStop)
	params.Set("timeInForce", cfg.Opts.tifOrDefault())
	params.Set("quantity", formatQty(cfg.Quantity))
	params.Set("price", formatPrice(cfg.LimitPrice))
	params.Set("stopPrice", formatPrice(cfg.StopPrice))
	params.Set("workingType", "CONTRACT_PRICE")
	params.Set("priceProtect", "TRUE")

	logger.Info("place_order",
		"kind", "stop_limit",
		"params", params.Encode(),
		"req_id", logger.ReqID(ctx),
	)
	return ex.PlaceOrder(ctx, params)
}
