package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockSentry/internal/model"
)

// ChartAPIFetcher implements Fetcher against a self-hosted chart REST API.
// It is selected when data_source.base_url is configured and authenticates
// with an optional bearer key.
type ChartAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewChartAPIFetcher creates a fetcher with optional proxy support.
func NewChartAPIFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration) *ChartAPIFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ChartAPIFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (f *ChartAPIFetcher) Name() string { return "chartapi" }

// chartBar is the expected JSON shape from the chart API.
type chartBar struct {
	Timestamp int64   `json:"timestamp"`
	Close     float64 `json:"close"`
}

func (f *ChartAPIFetcher) FetchDailyCloses(symbol, rng string) ([]model.PriceSample, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&range=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(rng))

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var bars []chartBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}

	samples := make([]model.PriceSample, 0, len(bars))
	for _, b := range bars {
		if b.Close <= 0 || math.IsNaN(b.Close) {
			continue
		}
		samples = append(samples, model.PriceSample{
			Time:  time.Unix(b.Timestamp, 0),
			Close: b.Close,
		})
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
	return samples, nil
}
