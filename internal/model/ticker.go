package model

// UnknownIndustry is used when a source has no industry for a symbol.
const UnknownIndustry = "Unknown"

type TickerRecord struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

