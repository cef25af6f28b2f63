package model

import "github.com/shopspring/decimal"

type QuoteRow struct {
	Symbol    string
	Name      string
	Industry  string
	Close     decimal.Decimal
	PctChange decimal.Decimal
}

type SkippedSymbol struct {
	Symbol string
	Reason string
}

// Snapshot is one run's ranked quote table. Rows are ordered by PctChange
// descending; Skipped lists symbols left out and why.
type Snapshot struct {
	Rows    []QuoteRow
	Skipped []SkippedSymbol
}

func (s Snapshot) Empty() bool {
	return len(s.Rows) == 0
}
