package model

import (
	"fmt"
	"strconv"
)

// ExchangeInfoResponse represents the response from /fapi/v1/exchangeInfo
type ExchangeInfoResponse struct {
	Symbols []SymbolInfo `json:"symbols"`
}

// SymbolInfo represents a single symbol's configuration
type SymbolInfo struct {
	Symbol            string   `json:"symbol"`
	PricePrecision    int      `json:"pricePrecision"`
	QuantityPrecision int      `json:"quantityPrecision"`
	Filters           []Filter `json:"filters"`
}

// Filter represents a trading rule filter
type Filter struct {
	FilterType  string `json:"filterType"`
	TickSize    string `json:"tickSize,omitempty"` // For PRICE_FILTER
	StepSize    string `json:"stepSize,omitempty"` // For LOT_SIZE
	MinQty      string `json:"minQty,omitempty"`   // For LOT_SIZE
	MinNotional string `json:"notional,omitempty"` // For MIN_NOTIONAL (futures key is "notional")
}

// SymbolFilters is the flattened trading-constraint view of a symbol.
// Immutable once built; cached per symbol for the client session.
type SymbolFilters struct {
	Symbol            string
	PricePrecision    int
	QuantityPrecision int
	TickSize          float64
	StepSize          float64
	MinQty            float64
	MinNotional       float64
}

// ParseSymbolFilters flattens an exchange-info response for a single symbol.
func ParseSymbolFilters(info *ExchangeInfoResponse) (SymbolFilters, error) {
	if info == nil || len(info.Symbols) == 0 {
		return SymbolFilters{}, fmt.Errorf("exchange info contains no symbols")
	}

	sym := info.Symbols[0]
	out := SymbolFilters{
		Symbol:            sym.Symbol,
		PricePrecision:    sym.PricePrecision,
		QuantityPrecision: sym.QuantityPrecision,
	}

	var err error
	for _, f := range sym.Filters {
		switch f.FilterType {
		case "PRICE_FILTER":
			out.TickSize, err = parseFilterFloat(f.TickSize, "tickSize")
			if err != nil {
				return SymbolFilters{}, err
			}
		case "LOT_SIZE":
			out.StepSize, err = parseFilterFloat(f.StepSize, "stepSize")
			if err != nil {
				return SymbolFilters{}, err
			}
			out.MinQty, err = parseFilterFloat(f.MinQty, "minQty")
			if err != nil {
				return SymbolFilters{}, err
			}
		case "MIN_NOTIONAL":
			// Not present on every symbol
			if f.MinNotional != "" {
				out.MinNotional, err = parseFilterFloat(f.MinNotional, "notional")
				if err != nil {
					return SymbolFilters{}, err
				}
			}
		}
	}

	if out.TickSize <= 0 {
		return SymbolFilters{}, fmt.Errorf("symbol %s: missing or invalid PRICE_FILTER tickSize", sym.Symbol)
	}
	if out.StepSize <= 0 {
		return SymbolFilters{}, fmt.Errorf("symbol %s: missing or invalid LOT_SIZE stepSize", sym.Symbol)
	}

	return out, nil
}

func parseFilterFloat(value, name string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return f, nil
}
