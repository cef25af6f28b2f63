package market

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const userAgent = "Mozilla/5.0 (compatible; marketpulse/1.0)"

// StockAnalysisSource scrapes the stock screener table on stockanalysis.com,
// which lists companies with their market cap and industry.
type StockAnalysisSource struct {
	url        string
	httpClient *http.Client
}

func NewStockAnalysisSource(url string) *StockAnalysisSource {
	return &StockAnalysisSource{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *StockAnalysisSource) Name() string {
	return "StockAnalysis"
}

func (s *StockAnalysisSource) Candidates(ctx context.Context) ([]Candidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stockanalysis fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stockanalysis fetch: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("stockanalysis parse: %w", err)
	}

	return parseStockTable(doc)
}

type tableColumns struct {
	symbol, name, marketCap, industry int
}

func parseStockTable(doc *goquery.Document) ([]Candidate, error) {
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("stockanalysis parse: no table found")
	}

	cols, err := locateColumns(table)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		cell := func(i int) string {
			if i < 0 || i >= cells.Length() {
				return ""
			}
			return strings.TrimSpace(cells.Eq(i).Text())
		}

		symbol := cell(cols.symbol)
		if symbol == "" {
			return
		}

		candidates = append(candidates, Candidate{
			Symbol:    symbol,
			Name:      cell(cols.name),
			Industry:  cell(cols.industry),
			MarketCap: ParseMarketCap(cell(cols.marketCap)),
		})
	})

	if len(candidates) == 0 {
		return nil, fmt.Errorf("stockanalysis parse: table has no rows")
	}
	return candidates, nil
}

// locateColumns maps header labels to cell positions. Without a header row
// the layout symbol, name, market cap, industry is assumed.
func locateColumns(table *goquery.Selection) (tableColumns, error) {
	headers := table.Find("thead th")
	if headers.Length() == 0 {
		return tableColumns{symbol: 0, name: 1, marketCap: 2, industry: 3}, nil
	}

	cols := tableColumns{symbol: -1, name: -1, marketCap: -1, industry: -1}
	headers.Each(func(i int, th *goquery.Selection) {
		label := strings.ToLower(strings.TrimSpace(th.Text()))
		switch {
		case strings.Contains(label, "symbol"):
			cols.symbol = i
		case strings.Contains(label, "name"):
			cols.name = i
		case strings.Contains(label, "market cap"):
			cols.marketCap = i
		case strings.Contains(label, "industry"):
			cols.industry = i
		}
	})

	if cols.symbol < 0 {
		return cols, fmt.Errorf("stockanalysis parse: symbol column not found")
	}
	if cols.marketCap < 0 {
		return cols, fmt.Errorf("stockanalysis parse: market cap column not found")
	}
	return cols, nil
}

var capSuffixes = map[byte]float64{
	'K': 1e3,
	'M': 1e6,
	'B': 1e9,
	'T': 1e12,
}

// ParseMarketCap reads values such as "3,512.40B" or "$812M". Unparseable
// input yields 0.
func ParseMarketCap(s string) float64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}

	multiplier := 1.0
	if m, ok := capSuffixes[s[len(s)-1]]; ok {
		multiplier = m
		s = s[:len(s)-1]
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v * multiplier
}
