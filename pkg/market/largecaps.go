package market

// LargeCapSymbols is the candidate superset for the Yahoo universe source:
// US-listed companies that have traded near the top of the market-cap table.
func LargeCapSymbols() []string {
	return []string{
		"AAPL", "MSFT", "NVDA", "AMZN", "GOOGL", "GOOG", "META", "TSLA", "BRK-B", "AVGO",
		"LLY", "JPM", "WMT", "V", "UNH", "XOM", "MA", "ORCL", "COST", "PG",
		"JNJ", "HD", "NFLX", "ABBV", "BAC", "KO", "CRM", "CVX", "MRK", "AMD",
		"TMUS", "PEP", "ADBE", "LIN", "ACN", "MCD", "CSCO", "TMO", "ABT", "WFC",
		"IBM", "GE", "PM", "QCOM", "DHR", "INTU", "TXN", "CAT", "AMGN", "ISRG",
		"VZ", "DIS", "NOW", "PFE", "GS", "MS", "AXP", "SPGI", "RTX", "NEE",
		"UBER", "CMCSA", "T", "LOW", "UNP", "PGR", "BKNG", "HON", "BLK", "SYK",
		"AMAT", "ELV", "BSX", "SCHW", "TJX", "PLD", "C", "VRTX", "MU", "LMT",
		"ADP", "PANW", "ANET", "MDT", "CB", "BX", "ADI", "SBUX", "PLTR", "KKR",
		"DE", "MMC", "GILD", "LRCX", "KLAC", "BA", "INTC", "SHOP", "APP", "CRWD",
	}
}
