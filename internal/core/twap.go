package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

// TWAPConfig describes a time-sliced execution: Quantity split into Slices
// equal child orders submitted Interval apart.
type TWAPConfig struct {
	Symbol    string
	Side      string
	Quantity  float64
	Slices    int
	Interval  time.Duration
	OrderType string   // MARKET or LIMIT
	Price     *float64 // required for LIMIT
	Opts      Options
}

// Overridable in tests to observe inter-slice waits.
var twapWait = waitInterval

// RunTWAP submits the slices strictly sequentially with no wait after the
// last one. Not resumable: a failure or cancellation mid-sequence leaves the
// already-submitted slices executed with no rollback. Cancellation via ctx
// aborts before the next slice, never mid-request.
func RunTWAP(ctx context.Context, ex Exchange, cfg TWAPConfig) ([]*model.OrderResponse, error) {
	if cfg.Slices < 1 {
		return nil, fmt.Errorf("%w: slices must be >= 1", ErrInvalidParameter)
	}

	orderType := strings.ToUpper(cfg.OrderType)
	if orderType == "" {
		orderType = model.TypeMarket
	}
	switch orderType {
	case model.TypeMarket:
	case model.TypeLimit:
		if cfg.Price == nil {
			return nil, fmt.Errorf("%w: price required for LIMIT twap", ErrInvalidParameter)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported twap order type %q", ErrInvalidParameter, cfg.OrderType)
	}

	per := cfg.Quantity / float64(cfg.Slices)
	results := make([]*model.OrderResponse, 0, cfg.Slices)

	for i := 0; i < cfg.Slices; i++ {
		logger.Info("twap_tick",
			"idx", i+1,
			"slices", cfg.Slices,
			"per_qty", per,
			"req_id", logger.ReqID(ctx),
		)

		var res *model.OrderResponse
		var err error
		if orderType == model.TypeMarket {
			res, err = MarketOrder(ctx, ex, cfg.Symbol, cfg.Side, per, cfg.Opts)
		} else {
			res, err = LimitOrder(ctx, ex, cfg.Symbol, cfg.Side, per, *cfg.Price, cfg.Opts)
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)

		if i != cfg.Slices-1 {
			if err := twapWait(ctx, cfg.Interval); err != nil {
				return results, err
			}
		}
	}

	return results, nil
}

func waitInterval(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
