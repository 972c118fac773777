package core

import (
	"context"

	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

// BracketConfig describes an OCO emulation: a take-profit LIMIT at
// TakeProfit plus a stop-loss STOP triggering at Stop with limit StopLimit.
type BracketConfig struct {
	Symbol     string
	Side       string
	Quantity   float64
	TakeProfit float64
	Stop       float64
	StopLimit  float64
	Opts       Options
}

// BracketResult carries both legs of the pair.
type BracketResult struct {
	TakeProfit *model.OrderResponse
	StopLoss   *model.OrderResponse
}

// PlaceBracket validates both prospective prices, then submits the
// take-profit and stop-loss legs back-to-back. USDT-M futures has no native
// OCO, so the legs are independent orders and the pairing is best-effort:
// whichever leg fills, cancelling the other is the caller's (or an external
// watcher's) job. A failure on the second leg leaves the first on the book.
func PlaceBracket(ctx context.Context, ex Exchange, cfg BracketConfig) (*BracketResult, error) {
	symbol, side, err := normalizeOrder(cfg.Symbol, cfg.Side)
	if err != nil {
		return nil, err
	}

	filters, err := ex.SymbolFilters(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if err := Validate(filters, cfg.Quantity, &cfg.TakeProfit); err != nil {
		return nil, err
	}
	if err := Validate(filters, cfg.Quantity, &cfg.StopLimit); err != nil {
		return nil, err
	}

	result := &BracketResult{}

	tpParams := baseParams(symbol, side, cfg.Opts)
	tpParams.Set("type", model.TypeLimit)
	tpParams.Set("timeInForce", cfg.Opts.tifOrDefault())
	tpParams.Set("quantity", formatQty(cfg.Quantity))
	tpParams.Set("price", formatPrice(cfg.TakeProfit))

	logger.Info("place_order",
		"kind", "oco_tp",
		"params", tpParams.Encode(),
		"req_id", logger.ReqID(ctx),
	)
	result.TakeProfit, err = ex.PlaceOrder(ctx, tpParams)
	if err != nil {
		return result, err
	}

	slParams := baseParams(symbol, side, cfg.Opts)
	slParams.Set("type", model.TypeStop)
	slParams.Set("timeInForce", cfg.Opts.tifOrDefault())
	slParams.Set("quantity", formatQty(cfg.Quantity))
	slParams.Set("price", formatPrice(cfg.StopLimit))
	slParams.Set("stopPrice", formatPrice(cfg.Stop))
	slParams.Set("workingType", "CONTRACT_PRICE")

	logger.Info("place_order",
		"kind", "oco_sl",
		"params", slParams.Encode(),
		"req_id", logger.ReqID(ctx),
	)
	result.StopLoss, err = ex.PlaceOrder(ctx, slParams)
	if err != nil {
		return result, err
	}

	return result, nil
}
