// Package depth converts a raw two-sided orderbook into fixed-size best
// bid and derived ask levels.
package depth

import (
	"sort"

	"github.com/rickgao/kalshi-ladders/internal/api"
	"github.com/rickgao/kalshi-ladders/internal/model"
)

// Depth holds up to MaxDepthLevels best levels per side, most favorable
// first. Asks are derived from opposite-side bids by price complement.
type Depth struct {
	YesBids []model.DepthLevel
	YesAsks []model.DepthLevel
	NoBids  []model.DepthLevel
	NoAsks  []model.DepthLevel
}

// Extract processes one orderbook. The venue returns each side ascending
// by price (worst-to-best), so bids are reversed before truncation. An
// empty or absent side yields an empty slice, never an error.
func Extract(ob api.Orderbook) Depth {
	yesBids := bestBids(ob.Yes)
	noBids := bestBids(ob.No)

	return Depth{
		YesBids: yesBids,
		YesAsks: deriveAsks(noBids),
		NoBids:  noBids,
		NoAsks:  deriveAsks(yesBids),
	}
}

// bestBids reverses raw levels so the highest price comes first and
// truncates to MaxDepthLevels. Malformed pairs (fewer than two elements)
// are skipped.
func bestBids(raw [][]int) []model.DepthLevel {
	levels := make([]model.DepthLevel, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		if len(raw[i]) < 2 {
			continue
		}
		levels = append(levels, model.DepthLevel{
			Price:    raw[i][0],
			Quantity: raw[i][1],
		})
		if len(levels) == model.MaxDepthLevels {
			break
		}
	}
	return levels
}

// deriveAsks converts opposite-side bids into asks: a bid at price p
// implies an ask at 100-p with the same quantity. Sorted ascending so the
// best (lowest) ask comes first.
func deriveAsks(bids []model.DepthLevel) []model.DepthLevel {
	asks := make([]model.DepthLevel, 0, len(bids))
	for _, bid := range bids {
		asks = append(asks, model.DepthLevel{
			Price:    100 - bid.Price,
			Quantity: bid.Quantity,
		})
	}
	sort.Slice(asks, func(i, j int) bool {
		return asks[i].Price < asks[j].Price
	})
	if len(asks) > model.MaxDepthLevels {
		asks = asks[:model.MaxDepthLevels]
	}
	return asks
}
