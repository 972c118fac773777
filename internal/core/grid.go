package core

import (
	"context"
	"fmt"

	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

// GridConfig describes a price-laddered set of limit orders: Levels orders
// of Quantity each at uniform price steps across [Lower, Upper].
type GridConfig struct {
	Symbol   string
	Side     string
	Levels   int
	Lower    float64
	Upper    float64
	Quantity float64
	Opts     Options
}

// RunGrid submits the levels eagerly in ascending price order. Each level is
// an independent order: a failure halts the ladder but already-placed levels
// stay on the book.
func RunGrid(ctx context.Context, ex Exchange, cfg GridConfig) ([]*model.OrderResponse, error) {
	if cfg.Levels < 2 {
		return nil, fmt.Errorf("%w: levels must be >= 2", ErrInvalidParameter)
	}

	step := (cfg.Upper - cfg.Lower) / float64(cfg.Levels-1)
	results := make([]*model.OrderResponse, 0, cfg.Levels)

	for i := 0; i < cfg.Levels; i++ {
		price := cfg.Lower + float64(i)*step

		logger.Info("grid_order",
			"idx", i+1,
			"levels", cfg.Levels,
			"price", price,
			"req_id", logger.ReqID(ctx),
		)

		res, err := LimitOrder(ctx, ex, cfg.Symbol, cfg.Side, cfg.Quantity, price, cfg.Opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}
