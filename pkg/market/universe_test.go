package market

import (
	"context"
	"errors"
	"marketpulse/internal/model"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeCandidateSource struct {
	candidates []Candidate
	err        error
}

func (f *fakeCandidateSource) Candidates(ctx context.Context) ([]Candidate, error) {
	return f.candidates, f.err
}

func (f *fakeCandidateSource) Name() string {
	return "Fake"
}

type memoryStore struct {
	records []model.TickerRecord
	loadErr error
	saves   int
}

func (m *memoryStore) Load(ctx context.Context) ([]model.TickerRecord, error) {
	return m.records, m.loadErr
}

func (m *memoryStore) Save(ctx context.Context, records []model.TickerRecord) error {
	m.saves++
	m.records = records
	return nil
}

func TestSelectTop(t *testing.T) {
	candidates := []Candidate{
		{Symbol: "AMZN", Name: "Amazon.com, Inc.", Industry: "Internet Retail", MarketCap: 2.3e12},
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Industry: "Semiconductors", MarketCap: 4.5e12},
		{Symbol: "XYZ", Name: "No Cap Corp", Industry: "Shell Companies"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", MarketCap: 3.8e12},
		{Symbol: "nvda", Name: "Duplicate", MarketCap: 9e12},
		{Symbol: "AAPL", Name: "", Industry: "Consumer Electronics", MarketCap: 3.7e12},
	}

	got := SelectTop(candidates, 3, map[string]string{"MSFT": "Software - Infrastructure"})

	want := []model.TickerRecord{
		{Symbol: "NVDA", Name: "NVIDIA Corporation", Industry: "Semiconductors"},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Industry: "Software - Infrastructure"},
		{Symbol: "AAPL", Name: "AAPL", Industry: "Consumer Electronics"},
	}
	assert.Equal(t, want, got)
}

func TestSelectTopUnknownIndustry(t *testing.T) {
	got := SelectTop([]Candidate{{Symbol: "TSM", Name: "Taiwan Semiconductor", MarketCap: 1e12}}, 50, nil)

	assert.Equal(t, 1, len(got))
	assert.Equal(t, model.UnknownIndustry, got[0].Industry)
}

func TestRefresh(t *testing.T) {
	source := &fakeCandidateSource{candidates: []Candidate{
		{Symbol: "AAPL", Name: "Apple Inc.", MarketCap: 3.7e12},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Industry: "Software - Infrastructure", MarketCap: 3.8e12},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Industry: "Internet Content & Information", MarketCap: 3.0e12},
	}}
	store := &memoryStore{records: []model.TickerRecord{
		{Symbol: "AAPL", Name: "Apple Inc.", Industry: "Consumer Electronics"},
		{Symbol: "TSLA", Name: "Tesla, Inc.", Industry: "Auto Manufacturers"},
	}}

	records, err := NewRefresher(source, store, 2).Refresh(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, records, store.records)
	assert.Equal(t, []model.TickerRecord{
		{Symbol: "MSFT", Name: "Microsoft Corporation", Industry: "Software - Infrastructure"},
		{Symbol: "AAPL", Name: "Apple Inc.", Industry: "Consumer Electronics"},
	}, records)
}

func TestRefreshSourceFailureKeepsStore(t *testing.T) {
	previous := []model.TickerRecord{{Symbol: "AAPL", Name: "Apple Inc.", Industry: "Consumer Electronics"}}
	store := &memoryStore{records: previous}
	source := &fakeCandidateSource{err: errors.New("status 503")}

	_, err := NewRefresher(source, store, 50).Refresh(context.Background())

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, store.saves)
	assert.Equal(t, previous, store.records)
}

func TestRefreshNoUsableCandidates(t *testing.T) {
	store := &memoryStore{loadErr: errors.New("missing file")}
	source := &fakeCandidateSource{candidates: []Candidate{{Symbol: "AAPL"}, {Symbol: "MSFT"}}}

	_, err := NewRefresher(source, store, 50).Refresh(context.Background())

	assert.Equal(t, true, errors.Is(err, ErrNoUsableCandidates))
	assert.Equal(t, 0, store.saves)
}
