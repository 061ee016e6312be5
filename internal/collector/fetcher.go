package collector

import "StockSentry/internal/model"

// Fetcher defines the interface for fetching daily close series.
type Fetcher interface {
	// FetchDailyCloses returns time-ordered daily samples for the symbol
	// over the given provider range (e.g. "3mo").
	FetchDailyCloses(symbol, rng string) ([]model.PriceSample, error)
	Name() string
}
