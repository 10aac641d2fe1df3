package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rickgao/kalshi-ladders/internal/model"
)

// rowColumns is the fixed column order used for bulk inserts.
var rowColumns = []string{
	"run_id", "timestamp_utc", "event_ticker", "market_ticker", "suffix",
	"bucket_type", "lower_bound", "upper_bound", "ladder_order",
	"bid1_price", "bid1_qty", "bid2_price", "bid2_qty", "bid3_price", "bid3_qty",
	"bid4_price", "bid4_qty", "bid5_price", "bid5_qty",
	"ask1_price", "ask1_qty", "ask2_price", "ask2_qty", "ask3_price", "ask3_qty",
	"ask4_price", "ask4_qty", "ask5_price", "ask5_qty",
	"no_bid1_price", "no_bid1_qty", "no_bid2_price", "no_bid2_qty", "no_bid3_price", "no_bid3_qty",
	"no_bid4_price", "no_bid4_qty", "no_bid5_price", "no_bid5_qty",
	"no_ask1_price", "no_ask1_qty", "no_ask2_price", "no_ask2_qty", "no_ask3_price", "no_ask3_qty",
	"no_ask4_price", "no_ask4_qty", "no_ask5_price", "no_ask5_qty",
}

// Writer persists snapshot rows to a PostgreSQL table. One cycle's batch
// goes in as a single COPY inside a transaction, so a cycle either lands
// completely or not at all.
type Writer struct {
	db     *pgxpool.Pool
	table  string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting the given table.
func NewWriter(db *pgxpool.Pool, table string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		db:     db,
		table:  table,
		logger: logger,
	}
}

// InsertRows bulk-inserts one cycle's rows.
func (w *Writer) InsertRows(ctx context.Context, rows []model.SnapshotRow) error {
	if len(rows) == 0 {
		return nil
	}

	start := time.Now()

	tx, err := w.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	copied, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{w.table},
		rowColumns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return rowValues(rows[i]), nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy rows: %w", err)
	}
	if copied != int64(len(rows)) {
		return fmt.Errorf("copied %d of %d rows", copied, len(rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	w.logger.Debug("bulk insert complete",
		"table", w.table,
		"rows", copied,
		"duration", time.Since(start),
	)

	return nil
}

// rowValues flattens a row into the rowColumns order.
func rowValues(r model.SnapshotRow) []any {
	values := make([]any, 0, len(rowColumns))
	values = append(values,
		r.RunID,
		r.TimestampUTC,
		r.EventTicker,
		r.MarketTicker,
		r.Suffix,
		string(r.BucketType),
		r.LowerBound,
		r.UpperBound,
		r.LadderOrder,
	)
	values = appendSide(values, r.BidPrices, r.BidQtys)
	values = appendSide(values, r.AskPrices, r.AskQtys)
	values = appendSide(values, r.NoBidPrices, r.NoBidQtys)
	values = appendSide(values, r.NoAskPrices, r.NoAskQtys)
	return values
}

func appendSide(values []any, prices, qtys [model.MaxDepthLevels]*int) []any {
	for i := 0; i < model.MaxDepthLevels; i++ {
		values = append(values, prices[i], qtys[i])
	}
	return values
}
