// Package ladder orders the sibling markets of one event into labeled
// temperature buckets: an open-ended "below" tail, ascending unit-width
// "range" buckets, and an open-ended "above" tail.
package ladder

import (
	"sort"
	"strconv"
	"strings"

	"github.com/rickgao/kalshi-ladders/internal/model"
)

// Rung is one market with its assigned bucket.
type Rung struct {
	Market model.Market
	Bucket model.Bucket
}

// Suffix returns the last '-'-delimited segment of a ticker.
func Suffix(ticker string) string {
	idx := strings.LastIndex(ticker, "-")
	if idx < 0 {
		return ticker
	}
	return ticker[idx+1:]
}

// Eligible reports whether a suffix belongs on a ladder: it must start
// with 'B' (bounded range) or 'T' (tail). Anything else is filtered out
// of the snapshot, not treated as an error.
func Eligible(suffix string) bool {
	return strings.HasPrefix(suffix, "B") || strings.HasPrefix(suffix, "T")
}

// FilterEligible keeps only B- and T-suffixed markets with a ticker.
func FilterEligible(markets []model.Market) []model.Market {
	kept := make([]model.Market, 0, len(markets))
	for _, m := range markets {
		if m.Ticker == "" {
			continue
		}
		if Eligible(m.Suffix) {
			kept = append(kept, m)
		}
	}
	return kept
}

// suffixValue parses the numeric part of a suffix (suffix minus its first
// byte). Fractional values like "T99.5" truncate to integer.
func suffixValue(suffix string) int {
	if len(suffix) < 2 {
		return 0
	}
	f, err := strconv.ParseFloat(suffix[1:], 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// Classify orders one event's eligible markets into a ladder and assigns
// each a bucket. Pure function: the same input always yields the same
// rungs and order values.
//
// The constructed sequence is: lowest T market (if any), all B markets
// ascending by value, highest T market (only when at least two T markets
// exist — a single T market is "below" only, never duplicated as
// "above"). Coinciding T and B bound values are kept as-is; no
// continuity validation is applied.
func Classify(markets []model.Market) []Rung {
	var tMarkets, bMarkets []model.Market
	for _, m := range markets {
		switch {
		case strings.HasPrefix(m.Suffix, "T"):
			tMarkets = append(tMarkets, m)
		case strings.HasPrefix(m.Suffix, "B"):
			bMarkets = append(bMarkets, m)
		}
	}

	sortByValue(tMarkets)
	sortByValue(bMarkets)

	ordered := make([]model.Market, 0, len(tMarkets)+len(bMarkets))
	if len(tMarkets) > 0 {
		ordered = append(ordered, tMarkets[0])
	}
	ordered = append(ordered, bMarkets...)
	if len(tMarkets) > 1 {
		ordered = append(ordered, tMarkets[len(tMarkets)-1])
	}

	rungs := make([]Rung, 0, len(ordered))
	for idx, m := range ordered {
		value := suffixValue(m.Suffix)

		bucket := model.Bucket{Order: idx + 1}
		switch {
		case strings.HasPrefix(m.Suffix, "B"):
			bucket.Type = model.BucketRange
			bucket.LowerBound = model.IntPtr(value)
			bucket.UpperBound = model.IntPtr(value + 1)
		case idx == 0:
			// A T market in first position is the lower tail.
			bucket.Type = model.BucketBelow
			bucket.UpperBound = model.IntPtr(value - 1)
		default:
			bucket.Type = model.BucketAbove
			bucket.LowerBound = model.IntPtr(value + 1)
		}

		rungs = append(rungs, Rung{Market: m, Bucket: bucket})
	}

	return rungs
}

// sortByValue sorts markets ascending by the numeric value of their
// suffix. Stable so equal values keep their incoming order.
func sortByValue(markets []model.Market) {
	sort.SliceStable(markets, func(i, j int) bool {
		return suffixValue(markets[i].Suffix) < suffixValue(markets[j].Suffix)
	})
}
