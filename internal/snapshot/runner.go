// Package snapshot orchestrates one full capture cycle: enumerate
// configured series, classify each event's ladder, extract depth, and
// bulk-insert one flat row per market.
package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/kalshi-ladders/internal/api"
	"github.com/rickgao/kalshi-ladders/internal/depth"
	"github.com/rickgao/kalshi-ladders/internal/ladder"
	"github.com/rickgao/kalshi-ladders/internal/model"
)

// RowWriter persists one cycle's rows in a single bulk call.
type RowWriter interface {
	InsertRows(ctx context.Context, rows []model.SnapshotRow) error
}

// Config holds runner configuration.
type Config struct {
	// SeriesTickers lists the ladder families to capture each cycle.
	SeriesTickers []string

	// BothSides also records NO-side bid/ask depth on every row.
	BothSides bool
}

// Runner executes snapshot cycles against the venue API.
type Runner struct {
	cfg    Config
	client *api.Client
	writer RowWriter
	logger *slog.Logger
}

// New creates a Runner.
func New(cfg Config, client *api.Client, writer RowWriter, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:    cfg,
		client: client,
		writer: writer,
		logger: logger,
	}
}

// Run performs one full cycle. The timestamp is captured once at cycle
// start and shared by every row so the batch is comparably timestamped.
// Any fetch or insert error aborts the cycle: partial rows are discarded,
// never re-queued.
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now().UTC()
	runID := uuid.New()

	logger := r.logger.With("run_id", runID)

	var rows []model.SnapshotRow

	for _, series := range r.cfg.SeriesTickers {
		events, err := r.client.GetOpenEvents(ctx, series)
		if err != nil {
			return fmt.Errorf("series %s: %w", series, err)
		}

		for _, event := range events {
			eventRows, err := r.snapshotEvent(ctx, start, runID, event.Key())
			if err != nil {
				return fmt.Errorf("event %s: %w", event.Key(), err)
			}
			rows = append(rows, eventRows...)
		}
	}

	if len(rows) == 0 {
		logger.Info("no rows to insert", "timestamp", start.Format(time.RFC3339))
		return nil
	}

	if err := r.writer.InsertRows(ctx, rows); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}

	logger.Info("inserted snapshot rows",
		"rows", len(rows),
		"timestamp", start.Format(time.RFC3339),
		"duration", time.Since(start).Round(time.Millisecond),
	)

	return nil
}

// snapshotEvent classifies one event's ladder and fetches depth for each
// rung in ladder order.
func (r *Runner) snapshotEvent(ctx context.Context, ts time.Time, runID uuid.UUID, eventTicker string) ([]model.SnapshotRow, error) {
	apiMarkets, err := r.client.GetOpenMarkets(ctx, eventTicker)
	if err != nil {
		return nil, err
	}

	markets := make([]model.Market, 0, len(apiMarkets))
	for _, m := range apiMarkets {
		markets = append(markets, model.Market{
			Ticker:      m.Ticker,
			EventTicker: eventTicker,
			Suffix:      ladder.Suffix(m.Ticker),
		})
	}

	rungs := ladder.Classify(ladder.FilterEligible(markets))

	rows := make([]model.SnapshotRow, 0, len(rungs))
	for _, rung := range rungs {
		ob, err := r.client.GetOrderbook(ctx, rung.Market.Ticker)
		if err != nil {
			return nil, err
		}

		rows = append(rows, r.buildRow(ts, runID, rung, depth.Extract(ob)))
	}

	return rows, nil
}

// buildRow assembles the fixed-width row for one rung. Depth slots beyond
// the available levels stay nil.
func (r *Runner) buildRow(ts time.Time, runID uuid.UUID, rung ladder.Rung, d depth.Depth) model.SnapshotRow {
	row := model.SnapshotRow{
		RunID:        runID,
		TimestampUTC: ts,
		EventTicker:  rung.Market.EventTicker,
		MarketTicker: rung.Market.Ticker,
		Suffix:       rung.Market.Suffix,
		BucketType:   rung.Bucket.Type,
		LowerBound:   rung.Bucket.LowerBound,
		UpperBound:   rung.Bucket.UpperBound,
		LadderOrder:  rung.Bucket.Order,
	}

	fillSide(d.YesBids, &row.BidPrices, &row.BidQtys)
	fillSide(d.YesAsks, &row.AskPrices, &row.AskQtys)

	if r.cfg.BothSides {
		fillSide(d.NoBids, &row.NoBidPrices, &row.NoBidQtys)
		fillSide(d.NoAsks, &row.NoAskPrices, &row.NoAskQtys)
	}

	return row
}

func fillSide(levels []model.DepthLevel, prices, qtys *[model.MaxDepthLevels]*int) {
	for i := 0; i < len(levels) && i < model.MaxDepthLevels; i++ {
		prices[i] = model.IntPtr(levels[i].Price)
		qtys[i] = model.IntPtr(levels[i].Quantity)
	}
}
