package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"binance-futures-cli/internal/logger"
	"binance-futures-cli/internal/model"
)

// ErrInvalidParameter marks strategy-level misuse caught before any order
// submission begins.
var ErrInvalidParameter = errors.New("invalid parameter")

// Exchange is the order-submission surface the primitives and strategies
// depend on. *api.BinanceClient satisfies it.
type Exchange interface {
	SymbolFilters(ctx context.Context, symbol string) (model.SymbolFilters, error)
	PlaceOrder(ctx context.Context, params url.Values) (*model.OrderResponse, error)
}

// Options are the recognized optional order fields, validated up front so a
// typo fails before any submission instead of as an exchange rejection.
type Options struct {
	TIF          string
	ReduceOnly   bool
	PositionSide string
}

// NewOptions validates and normalizes optional order fields. An empty tif
// defaults to GTC; an empty position side means one-way mode.
func NewOptions(tif string, reduceOnly bool, positionSide string) (Options, error) {
	tif = strings.ToUpper(tif)
	if tif == "" {
		tif = model.TIFGoodTillCancel
	}
	if !model.ValidTIF(tif) {
		return Options{}, fmt.Errorf("%w: unsupported timeInForce %q", ErrInvalidParameter, tif)
	}

	positionSide = strings.ToUpper(positionSide)
	if positionSide != "" && !model.ValidPositionSide(positionSide) {
		return Options{}, fmt.Errorf("%w: unsupported positionSide %q", ErrInvalidParameter, positionSide)
	}

	return Options{TIF: tif, ReduceOnly: reduceOnly, PositionSide: positionSide}, nil
}

// MarketOrder validates and submits a MARKET order.
func MarketOrder(ctx context.Context, ex Exchange, symbol, side string, quantity float64, opts Options) (*model.OrderResponse, error) {
	symbol, side, err := normalizeOrder(symbol, side)
	if err != nil {
		return nil, err
	}

	filters, err := ex.SymbolFilters(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if err := Validate(filters, quantity, nil); err != nil {
		return nil, err
	}

	params := baseParams(symbol, side, opts)
	params.Set("type", model.TypeMarket)
	params.Set("quantity", formatQty(quantity))

	logger.Info("place_order",
		"kind", "market",
		"params", params.Encode(),
		"req_id", logger.ReqID(ctx),
	)
	return ex.PlaceOrder(ctx, params)
}

// LimitOrder validates and submits a LIMIT order.
func LimitOrder(ctx context.Context, ex Exchange, symbol, side string, quantity, price float64, opts Options) (*model.OrderResponse, error) {
	symbol, side, err := normalizeOrder(symbol, side)
	if err != nil {
		return nil, err
	}

	filters, err := ex.SymbolFilters(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if err := Validate(filters, quantity, &price); err != nil {
		return nil, err
	}

	params := baseParams(symbol, side, opts)
	params.Set("type", model.TypeLimit)
	params.Set("timeInForce", opts.tifOrDefault())
	params.Set("quantity", formatQty(quantity))
	params.Set("price", formatPrice(price))

	logger.Info("place_order",
		"kind", "limit",
		"params", params.Encode(),
		"req_id", logger.ReqID(ctx),
	)
	return ex.PlaceOrder(ctx, params)
}

func normalizeOrder(symbol, side string) (string, string, error) {
	symbol = strings.ToUpper(symbol)
	side = strings.ToUpper(side)
	if symbol == "" {
		return "", "", fmt.Errorf("%w: symbol is required", ErrInvalidParameter)
	}
	if !model.ValidSide(side) {
		return "", "", fmt.Errorf("%w: unsupported side %q", ErrInvalidParameter, side)
	}
	return symbol, side, nil
}

func baseParams(symbol, side string, opts Options) url.Values {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", side)
	params.Set("reduceOnly", strconv.FormatBool(opts.ReduceOnly))
	if opts.PositionSide != "" {
		params.Set("positionSide", opts.PositionSide)
	}
	return params
}

func (o Options) tifOrDefault() string {
	if o.TIF == "" {
		return model.TIFGoodTillCancel
	}
	return o.TIF
}
