package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
)

const yahooTimeout = 30 * time.Second

// YahooSymbol converts share-class dots (BRK.B) to the dash form Yahoo uses.
func YahooSymbol(symbol string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(symbol)), ".", "-")
}

// NewYahooBackend returns a finance-go backend whose requests time out after
// 30 seconds instead of the library's default.
func NewYahooBackend() finance.Backend {
	return finance.NewBackends(&http.Client{Timeout: yahooTimeout}).YFin
}

type YahooBarSource struct {
	client chart.Client
}

func NewYahooBarSource(backend finance.Backend) *YahooBarSource {
	if backend == nil {
		backend = NewYahooBackend()
	}
	return &YahooBarSource{client: chart.Client{B: backend}}
}

// DailyBars returns the daily closes between start and end. finance-go
// indexes the response without bounds checks, so a malformed chart is
// turned into an error for this symbol instead of a crash.
func (s *YahooBarSource) DailyBars(ctx context.Context, symbol string, start, end time.Time) (bars []Bar, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			bars = nil
			err = fmt.Errorf("yahoo chart %s: malformed response: %v", symbol, r)
		}
	}()

	params := &chart.Params{
		Params:   finance.Params{Context: &ctx},
		Symbol:   YahooSymbol(symbol),
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := s.client.Get(params)

	for iter.Next() {
		b := iter.Bar()
		bars = append(bars, Bar{
			Date:  time.Unix(int64(b.Timestamp), 0).UTC(),
			Close: b.Close,
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, err)
	}

	return bars, nil
}

// YahooCandidateSource looks up market caps for a fixed superset of symbols
// through the v6 quote endpoint.
type YahooCandidateSource struct {
	client  equity.Client
	symbols []string
}

func NewYahooCandidateSource(backend finance.Backend, symbols []string) *YahooCandidateSource {
	if backend == nil {
		backend = NewYahooBackend()
	}
	if len(symbols) == 0 {
		symbols = LargeCapSymbols()
	}
	return &YahooCandidateSource{client: equity.Client{B: backend}, symbols: symbols}
}

func (s *YahooCandidateSource) Name() string {
	return "Yahoo"
}

func (s *YahooCandidateSource) Candidates(ctx context.Context) (candidates []Candidate, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			candidates = nil
			err = fmt.Errorf("yahoo equity list: malformed response: %v", r)
		}
	}()

	requested := make([]string, len(s.symbols))
	for i, sym := range s.symbols {
		requested[i] = YahooSymbol(sym)
	}

	iter := s.client.ListP(&equity.Params{
		Params:  finance.Params{Context: &ctx},
		Symbols: requested,
	})

	seen := make(map[string]bool, len(s.symbols))
	candidates = make([]Candidate, 0, len(s.symbols))
	for iter.Next() {
		e := iter.Equity()

		name := e.LongName
		if name == "" {
			name = e.ShortName
		}

		// Yahoo answers in dash form; keep the dotted form used everywhere else.
		symbol := strings.ReplaceAll(e.Symbol, "-", ".")
		seen[symbol] = true

		candidates = append(candidates, Candidate{
			Symbol:    symbol,
			Name:      name,
			MarketCap: float64(e.MarketCap),
		})
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("yahoo equity list: %w", err)
	}

	// Symbols Yahoo did not return stay in the list without a market cap so
	// the refresher reports them as skipped.
	for _, sym := range s.symbols {
		sym = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(sym)), "-", ".")
		if !seen[sym] {
			candidates = append(candidates, Candidate{Symbol: sym})
		}
	}

	return candidates, nil
}
