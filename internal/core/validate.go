package core

import (
	"fmt"

	"github.com/shopspring/decimal"

	"binance-futures-cli/internal/model"
)

// Violation kinds carried by ValidationError.
const (
	ViolationMinQuantity       = "MIN_QUANTITY"
	ViolationPriceAlignment    = "PRICE_ALIGNMENT"
	ViolationQuantityAlignment = "QUANTITY_ALIGNMENT"
)

// ValidationError reports a price or quantity that breaks the symbol's
// exchange constraints. Raised before any network call, never retried.
type ValidationError struct {
	Kind string
	Msg  string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// alignmentTolerance absorbs float formatting noise; anything further off a
// tick/step multiple than this is rejected, not corrected.
var alignmentTolerance = decimal.New(1, -12)

// Validate checks quantity (and price when given) against the symbol's
// constraints. Pure function; callers must pre-round, the engine rejects
// misaligned values rather than silently fixing them.
func Validate(filters model.SymbolFilters, quantity float64, price *float64) error {
	if quantity < filters.MinQty {
		return &ValidationError{
			Kind: ViolationMinQuantity,
			Msg:  fmt.Sprintf("qty %v < minQty %v", quantity, filters.MinQty),
		}
	}

	if price != nil && !alignedToStep(*price, filters.TickSize) {
		return &ValidationError{
			Kind: ViolationPriceAlignment,
			Msg:  fmt.Sprintf("price %v not aligned to tickSize %v", *price, filters.TickSize),
		}
	}

	if !alignedToStep(quantity, filters.StepSize) {
		return &ValidationError{
			Kind: ViolationQuantityAlignment,
			Msg:  fmt.Sprintf("qty %v not aligned to stepSize %v", quantity, filters.StepSize),
		}
	}

	return nil
}

// alignedToStep truncates value toward zero to the nearest step multiple and
// reports whether the truncation moved it by more than the tolerance.
func alignedToStep(value, step float64) bool {
	if step <= 0 {
		return true
	}
	v := decimal.NewFromFloat(value)
	s := decimal.NewFromFloat(step)
	aligned := v.Div(s).Floor().Mul(s)
	return v.Sub(aligned).Abs().LessThanOrEqual(alignmentTolerance)
}

// formatQty renders a quantity as the exchange expects it, without float
// artifacts like 2.5000000000000004.
func formatQty(quantity float64) string {
	return decimal.NewFromFloat(quantity).String()
}

// formatPrice renders a price as the exchange expects it.
func formatPrice(price float64) string {
	return decimal.NewFromFloat(price).String()
}
