package api

// EventsResponse from GET /events
type EventsResponse struct {
	Events []Event `json:"events"`
	Cursor string  `json:"cursor"`
}

// Event represents an event from the Kalshi API.
type Event struct {
	EventTicker  string `json:"event_ticker"`
	Ticker       string `json:"ticker"`
	SeriesTicker string `json:"series_ticker"`
	Title        string `json:"title"`
	Status       string `json:"status"`
}

// Key returns the event ticker, falling back to the plain ticker field.
// Older API responses populate one or the other.
func (e *Event) Key() string {
	if e.EventTicker != "" {
		return e.EventTicker
	}
	return e.Ticker
}

// MarketsResponse from GET /markets
type MarketsResponse struct {
	Markets []Market `json:"markets"`
	Cursor  string   `json:"cursor"`
}

// Market represents a market from the Kalshi API.
type Market struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	Status      string `json:"status"`
}

// OrderbookResponse from GET /markets/{ticker}/orderbook
type OrderbookResponse struct {
	Orderbook Orderbook `json:"orderbook"`
}

// Orderbook holds the two-sided book as [price_cents, quantity] pairs,
// ordered ascending by price (worst-to-best for bids).
type Orderbook struct {
	Yes [][]int `json:"yes"`
	No  [][]int `json:"no"`
}
