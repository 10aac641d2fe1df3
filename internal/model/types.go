package model

import (
	"time"

	"github.com/google/uuid"
)

// Market represents a single ladder market within an event.
type Market struct {
	Ticker      string // Primary key (e.g., "KXHIGHNY-25AUG28-B85")
	EventTicker string // Foreign key to the event
	Suffix      string // Last '-'-delimited ticker segment (e.g., "B85", "T90")
}

// BucketType classifies a ladder rung.
type BucketType string

const (
	BucketBelow BucketType = "below" // Open-ended lower tail (first T market)
	BucketRange BucketType = "range" // Unit-width range (B market)
	BucketAbove BucketType = "above" // Open-ended upper tail (last T market)
)

// Bucket holds the semantic position of one market within its ladder.
type Bucket struct {
	Type       BucketType
	LowerBound *int // nil for "below"
	UpperBound *int // nil for "above"
	Order      int  // 1-based position within the event's ladder
}

// DepthLevel is one (price, quantity) pair from an orderbook.
// Prices are whole cents in [0, 100].
type DepthLevel struct {
	Price    int
	Quantity int
}

// MaxDepthLevels is the number of levels captured per side.
const MaxDepthLevels = 5

// SnapshotRow is one flat row per market per cycle. Rows are write-once:
// each cycle appends a fully independent batch. Bid/ask slots beyond the
// available depth stay nil so the row shape is fixed-width.
type SnapshotRow struct {
	RunID        uuid.UUID // Identifies the cycle that produced this row
	TimestampUTC time.Time // Captured once at cycle start, shared by the batch
	EventTicker  string
	MarketTicker string
	Suffix       string

	BucketType  BucketType
	LowerBound  *int
	UpperBound  *int
	LadderOrder int

	BidPrices [MaxDepthLevels]*int
	BidQtys   [MaxDepthLevels]*int
	AskPrices [MaxDepthLevels]*int
	AskQtys   [MaxDepthLevels]*int

	// NO-side depth, populated only when the four-sided variant is enabled.
	NoBidPrices [MaxDepthLevels]*int
	NoBidQtys   [MaxDepthLevels]*int
	NoAskPrices [MaxDepthLevels]*int
	NoAskQtys   [MaxDepthLevels]*int
}

// IntPtr returns a pointer to v. Convenience for nullable row columns.
func IntPtr(v int) *int {
	return &v
}
