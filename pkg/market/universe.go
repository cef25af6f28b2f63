package market

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"marketpulse/internal/model"
	"slices"
	"strings"
)

var ErrNoUsableCandidates = errors.New("no candidates with a market cap")

// Candidate is one row of a market-cap ranked source. Industry may be empty
// and MarketCap is zero when the source could not price the company.
type Candidate struct {
	Symbol    string
	Name      string
	Industry  string
	MarketCap float64
}

type CandidateSource interface {
	Candidates(ctx context.Context) ([]Candidate, error)
	Name() string
}

type TickerStore interface {
	Load(ctx context.Context) ([]model.TickerRecord, error)
	Save(ctx context.Context, records []model.TickerRecord) error
}

type Refresher struct {
	source CandidateSource
	store  TickerStore
	size   int
}

func NewRefresher(source CandidateSource, store TickerStore, size int) *Refresher {
	return &Refresher{source: source, store: store, size: size}
}

// Refresh rebuilds the store from the source. The store is only written when
// the source answered and at least one candidate had a market cap.
func (r *Refresher) Refresh(ctx context.Context) ([]model.TickerRecord, error) {
	candidates, err := r.source.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s candidates: %w", r.source.Name(), err)
	}

	previous, err := r.store.Load(ctx)
	if err != nil {
		slog.Info("no previous universe to carry industries from", "error", err)
	}

	records := SelectTop(candidates, r.size, industriesBySymbol(previous))
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", r.source.Name(), ErrNoUsableCandidates)
	}

	if err := r.store.Save(ctx, records); err != nil {
		return nil, fmt.Errorf("save universe: %w", err)
	}

	slog.Info("universe refreshed", "source", r.source.Name(), "candidates", len(candidates), "count", len(records))
	return records, nil
}

// SelectTop keeps candidates with a positive market cap, drops repeated
// symbols, and returns the n largest. Missing industries are filled from
// known, then set to model.UnknownIndustry.
func SelectTop(candidates []Candidate, n int, known map[string]string) []model.TickerRecord {
	seen := make(map[string]bool, len(candidates))
	usable := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		c.Symbol = strings.ToUpper(strings.TrimSpace(c.Symbol))
		if c.Symbol == "" || seen[c.Symbol] {
			continue
		}
		seen[c.Symbol] = true

		if c.MarketCap <= 0 {
			slog.Warn("skipping candidate without market cap", "symbol", c.Symbol)
			continue
		}
		usable = append(usable, c)
	}

	slices.SortStableFunc(usable, func(a, b Candidate) int {
		return cmp.Compare(b.MarketCap, a.MarketCap)
	})

	if len(usable) > n {
		usable = usable[:n]
	}

	records := make([]model.TickerRecord, len(usable))
	for i, c := range usable {
		industry := strings.TrimSpace(c.Industry)
		if industry == "" {
			industry = known[c.Symbol]
		}
		if industry == "" {
			industry = model.UnknownIndustry
		}

		name := strings.TrimSpace(c.Name)
		if name == "" {
			name = c.Symbol
		}

		records[i] = model.TickerRecord{Symbol: c.Symbol, Name: name, Industry: industry}
	}
	return records
}

func industriesBySymbol(records []model.TickerRecord) map[string]string {
	known := make(map[string]string, len(records))
	for _, r := range records {
		if r.Industry != "" && r.Industry != model.UnknownIndustry {
			known[r.Symbol] = r.Industry
		}
	}
	return known
}
