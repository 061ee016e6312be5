package collector

import (
	"fmt"
	"log"
	"time"

	"StockSentry/internal/calculator"
	"StockSentry/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Samples map[string][]model.PriceSample
	Errs    map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(symbol, _ string) ([]model.PriceSample, error) {
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	return m.Samples[symbol], nil
}

// Collector derives quote snapshots from fetched close series.
type Collector struct {
	Fetcher    Fetcher
	Range      string // provider range for one fetch, e.g. "3mo"
	WeekWindow int    // sample count for the short average
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rng string, weekWindow int) *Collector {
	return &Collector{Fetcher: fetcher, Range: rng, WeekWindow: weekWindow}
}

// Collect fetches the close series for one symbol and derives a snapshot.
// A nil snapshot with nil error means no usable data this cycle; transport
// failures are returned as errors. Neither aborts the pass.
func (c *Collector) Collect(symbol string) (*model.QuoteSnapshot, error) {
	samples, err := c.Fetcher.FetchDailyCloses(symbol, c.Range)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(samples) < 2 {
		log.Printf("[WARN] %s: %d valid samples after filtering, need 2", symbol, len(samples))
		return nil, nil
	}

	closes := calculator.Closes(samples)
	snap := &model.QuoteSnapshot{
		Symbol:     symbol,
		Price:      closes[len(closes)-1],
		PrevClose:  closes[len(closes)-2],
		ObservedAt: time.Now(),
	}

	if avg, err := calculator.CalculateSMA(closes, c.WeekWindow); err != nil {
		log.Printf("[WARN] %s: week average unavailable: %v", symbol, err)
	} else {
		snap.AvgWeek = avg
		snap.HasAvgWeek = true
	}
	if avg, err := calculator.Mean(closes); err != nil {
		log.Printf("[WARN] %s: range average unavailable: %v", symbol, err)
	} else {
		snap.AvgThreeMonth = avg
		snap.HasAvgThreeMonth = true
	}

	return snap, nil
}
