package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestYahooFetcher_ParsesChartAndDropsNulls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1d" {
			t.Errorf("expected interval=1d, got %q", r.URL.Query().Get("interval"))
		}
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1700000000,1700086400,1700172800,1700259200],
			"indicators":{"quote":[{"close":[2400.0,null,2450.5,2500.0]}]}
		}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL

	samples, err := f.FetchDailyCloses("RELIANCE.NS", "3mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples after dropping null, got %d", len(samples))
	}
	if samples[0].Close != 2400 || samples[2].Close != 2500 {
		t.Errorf("unexpected closes: %+v", samples)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time.Before(samples[i-1].Time) {
			t.Fatal("samples not time-ordered")
		}
	}
}

func TestYahooFetcher_MissingResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL

	samples, err := f.FetchDailyCloses("NOSUCH", "3mo")
	if err != nil {
		t.Fatalf("missing result should not be an error: %v", err)
	}
	if len(samples) != 0 {
		t.Fatalf("expected no samples, got %d", len(samples))
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL

	if _, err := f.FetchDailyCloses("BAD", "3mo"); err == nil {
		t.Fatal("expected api error")
	}
}

func TestYahooFetcher_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFetcher("", 5*time.Second)
	f.BaseURL = srv.URL

	if _, err := f.FetchDailyCloses("RELIANCE.NS", "3mo"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestChartAPIFetcher_BearerAndDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer header, got %q", got)
		}
		w.Write([]byte(`[
			{"timestamp":1700000000,"close":2400.0},
			{"timestamp":1700086400,"close":0},
			{"timestamp":1700172800,"close":2500.0}
		]`))
	}))
	defer srv.Close()

	f := NewChartAPIFetcher(srv.URL, "test-key", "", 5*time.Second)

	samples, err := f.FetchDailyCloses("RELIANCE.NS", "3mo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples after dropping zero close, got %d", len(samples))
	}
	if samples[1].Close != 2500 {
		t.Errorf("unexpected last close: %.2f", samples[1].Close)
	}
}
