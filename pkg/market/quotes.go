package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"marketpulse/internal/model"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInsufficientData = errors.New("fewer than two valid closes")

	hundred = decimal.NewFromInt(100)
)

type Bar struct {
	Date  time.Time
	Close decimal.Decimal
}

// BarSource returns daily bars for one symbol between start and end.
type BarSource interface {
	DailyBars(ctx context.Context, symbol string, start, end time.Time) ([]Bar, error)
}

type Fetcher struct {
	source   BarSource
	lookback time.Duration
	workers  int
	now      func() time.Time
}

// NewFetcher asks for lookbackDays calendar days per symbol so that weekends
// and holidays still leave two trading days in the window.
func NewFetcher(source BarSource, lookbackDays, workers int) *Fetcher {
	if workers <= 0 {
		workers = 1
	}
	return &Fetcher{
		source:   source,
		lookback: time.Duration(lookbackDays) * 24 * time.Hour,
		workers:  workers,
		now:      time.Now,
	}
}

// Snapshot fetches every ticker and returns the rows ranked by change.
// Symbols without two valid closes, or whose request failed, end up in
// Skipped. Only cancellation of ctx is returned as an error.
func (f *Fetcher) Snapshot(ctx context.Context, tickers []model.TickerRecord) (model.Snapshot, error) {
	end := f.now()
	start := end.Add(-f.lookback)

	type outcome struct {
		row model.QuoteRow
		err error
	}
	outcomes := make([]outcome, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)

	for i, t := range tickers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			bars, err := f.source.DailyBars(gctx, t.Symbol, start, end)
			if err != nil {
				outcomes[i] = outcome{err: err}
				return nil
			}

			row, err := QuoteFromBars(t, bars)
			outcomes[i] = outcome{row: row, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return model.Snapshot{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Snapshot{}, err
	}

	var snapshot model.Snapshot
	for i, o := range outcomes {
		if o.err != nil {
			slog.Warn("skipping symbol", "symbol", tickers[i].Symbol, "error", o.err)
			snapshot.Skipped = append(snapshot.Skipped, model.SkippedSymbol{
				Symbol: tickers[i].Symbol,
				Reason: o.err.Error(),
			})
			continue
		}
		snapshot.Rows = append(snapshot.Rows, o.row)
	}

	Rank(snapshot.Rows)

	slog.Info("market snapshot fetched", "count", len(snapshot.Rows), "skipped", len(snapshot.Skipped))
	return snapshot, nil
}

// QuoteFromBars computes the latest close and its change against the
// previous valid close. Bars with a non-positive close are treated as missing.
func QuoteFromBars(t model.TickerRecord, bars []Bar) (model.QuoteRow, error) {
	valid := validBars(bars)
	if len(valid) < 2 {
		return model.QuoteRow{}, fmt.Errorf("%w: got %d", ErrInsufficientData, len(valid))
	}

	latest := valid[len(valid)-1].Close
	prev := valid[len(valid)-2].Close

	return model.QuoteRow{
		Symbol:    t.Symbol,
		Name:      t.Name,
		Industry:  t.Industry,
		Close:     latest.Round(2),
		PctChange: PercentChange(latest, prev),
	}, nil
}

// PercentChange is (latest - prev) / prev * 100 rounded to two places.
func PercentChange(latest, prev decimal.Decimal) decimal.Decimal {
	return latest.Sub(prev).Div(prev).Mul(hundred).Round(2)
}

// Rank orders rows by PctChange, highest first.
func Rank(rows []model.QuoteRow) {
	slices.SortStableFunc(rows, func(a, b model.QuoteRow) int {
		return b.PctChange.Cmp(a.PctChange)
	})
}

// validBars drops missing closes, sorts by date and keeps one bar per day
// (the later one wins, since providers may repeat the live session).
func validBars(bars []Bar) []Bar {
	valid := make([]Bar, 0, len(bars))
	for _, b := range bars {
		if b.Close.IsPositive() {
			valid = append(valid, b)
		}
	}

	slices.SortStableFunc(valid, func(a, b Bar) int {
		return a.Date.Compare(b.Date)
	})

	out := valid[:0]
	for _, b := range valid {
		if n := len(out); n > 0 && sameDay(out[n-1].Date, b.Date) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
