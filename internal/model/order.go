package model

// Order sides
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Order types
const (
	TypeMarket = "MARKET"
	TypeLimit  = "LIMIT"
	TypeStop   = "STOP"
)

// Time-in-force values
const (
	TIFGoodTillCancel    = "GTC"
	TIFImmediateOrCancel = "IOC"
	TIFFillOrKill        = "FOK"
)

// Position sides (hedge mode)
const (
	PositionLong  = "LONG"
	PositionShort = "SHORT"
)

// ValidSide reports whether s is a recognized order side.
func ValidSide(s string) bool {
	return s == SideBuy || s == SideSell
}

// ValidTIF reports whether s is a recognized time-in-force.
func ValidTIF(s string) bool {
	return s == TIFGoodTillCancel || s == TIFImmediateOrCancel || s == TIFFillOrKill
}

// ValidPositionSide reports whether s is a recognized position side.
func ValidPositionSide(s string) bool {
	return s == PositionLong || s == PositionShort
}

// OrderResponse represents the response from /fapi/v1/order
type OrderResponse struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Status        string `json:"status"`
	Price         string `json:"price"`
	AvgPrice      string `json:"avgPrice"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	CumQuote      string `json:"cumQuote"`
	TimeInForce   string `json:"timeInForce"`
	Type          string `json:"type"`
	Side          string `json:"side"`
	PositionSide  string `json:"positionSide"`
	StopPrice     string `json:"stopPrice"`
	WorkingType   string `json:"workingType"`
	PriceProtect  bool   `json:"priceProtect"`
	ReduceOnly    bool   `json:"reduceOnly"`
	UpdateTime    int64  `json:"updateTime"`
}

// LeverageResponse represents the response from /fapi/v1/leverage
type LeverageResponse struct {
	Symbol           string `json:"symbol"`
	Leverage         int    `json:"leverage"`
	MaxNotionalValue string `json:"maxNotionalValue"`
}
