package model

import "time"

// Symbol is one tracked ticker. QuerySymbol is the exact string sent to the
// data provider; DisplayName has known exchange suffixes stripped for messages.
type Symbol struct {
	DisplayName string
	QuerySymbol string
}

// PriceSample is a single daily close as returned by the provider.
type PriceSample struct {
	Time  time.Time
	Close float64
}

// QuoteSnapshot is the per-symbol view derived from one fetch. Rebuilt every
// cycle, never persisted.
type QuoteSnapshot struct {
	Symbol           string
	Price            float64 // close of the most recent sample
	PrevClose        float64 // close of the second-to-last sample
	AvgWeek          float64
	HasAvgWeek       bool
	AvgThreeMonth    float64
	HasAvgThreeMonth bool
	ObservedAt       time.Time
}
