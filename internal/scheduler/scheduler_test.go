package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"StockSentry/internal/collector"
	"StockSentry/internal/model"
	"StockSentry/internal/recorder"
)

type captureSender struct {
	messages []string
	err      error
}

func (c *captureSender) Send(text string) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, text)
	return nil
}

type stubGate struct{ open bool }

func (g stubGate) IsOpen(_ time.Time) bool { return g.open }

func series(closes ...float64) []model.PriceSample {
	samples := make([]model.PriceSample, len(closes))
	for i, c := range closes {
		samples[i] = model.PriceSample{
			Time:  time.Now().AddDate(0, 0, -(len(closes) - 1 - i)),
			Close: c,
		}
	}
	return samples
}

func newTestScheduler(fetcher collector.Fetcher, sender *captureSender, gate Gate, symbols ...model.Symbol) *Scheduler {
	col := collector.NewCollector(fetcher, "3mo", 5)
	return NewScheduler(context.Background(), symbols, col, sender, gate,
		recorder.NewNoopRecorder(), 2.5, 0, 0)
}

func TestRunPass_AlertFires(t *testing.T) {
	fetcher := &collector.MockFetcher{Samples: map[string][]model.PriceSample{
		"RELIANCE.NS": series(2380, 2390, 2410, 2420, 2400, 2500),
	}}
	sender := &captureSender{}
	s := newTestScheduler(fetcher, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"})

	s.RunPass()

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 alert, got %d: %v", len(sender.messages), sender.messages)
	}
	msg := sender.messages[0]
	for _, want := range []string{"2500.00", "2400.00", "+4.17%", "INCREASED"} {
		if !strings.Contains(msg, want) {
			t.Errorf("alert missing %q:\n%s", want, msg)
		}
	}
}

func TestRunPass_SummaryWhenNothingAlerts(t *testing.T) {
	fetcher := &collector.MockFetcher{Samples: map[string][]model.PriceSample{
		"RELIANCE.NS": series(2400, 2400, 2410),
		"TCS.NS":      series(3500, 3500, 3510),
	}}
	sender := &captureSender{}
	s := newTestScheduler(fetcher, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"},
		model.Symbol{DisplayName: "TCS", QuerySymbol: "TCS.NS"})

	s.RunPass()

	if len(sender.messages) != 1 {
		t.Fatalf("expected exactly 1 summary, got %d: %v", len(sender.messages), sender.messages)
	}
	if !strings.Contains(sender.messages[0], "All 2 stocks checked") {
		t.Errorf("summary missing symbol count:\n%s", sender.messages[0])
	}
}

func TestRunPass_FaultIsolation(t *testing.T) {
	fetcher := &collector.MockFetcher{
		Samples: map[string][]model.PriceSample{
			"TCS.NS": series(3380, 3390, 3400, 3500),
		},
		Errs: map[string]error{
			"RELIANCE.NS": errors.New("timeout"),
		},
	}
	sender := &captureSender{}
	s := newTestScheduler(fetcher, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"},
		model.Symbol{DisplayName: "TCS", QuerySymbol: "TCS.NS"})

	s.RunPass()

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 alert from surviving symbol, got %d: %v", len(sender.messages), sender.messages)
	}
	if !strings.Contains(sender.messages[0], "TCS") {
		t.Errorf("expected alert for TCS:\n%s", sender.messages[0])
	}
}

func TestRunPass_MarketClosedSkipsEverything(t *testing.T) {
	fetcher := &collector.MockFetcher{Samples: map[string][]model.PriceSample{
		"RELIANCE.NS": series(2400, 2500),
	}}
	sender := &captureSender{}
	s := newTestScheduler(fetcher, sender, stubGate{open: false},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"})

	s.RunPass()

	if len(sender.messages) != 0 {
		t.Fatalf("expected no messages with market closed, got %v", sender.messages)
	}
}

func TestRunPass_DeliveryFailureCountsAsNotSent(t *testing.T) {
	fetcher := &collector.MockFetcher{Samples: map[string][]model.PriceSample{
		"RELIANCE.NS": series(2400, 2500),
	}}
	sender := &captureSender{err: errors.New("unauthorized")}
	s := newTestScheduler(fetcher, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"})

	// Must not panic or abort; the failed alert counts as not sent, so the
	// pass falls through to the (also failing) summary.
	s.RunPass()

	if len(sender.messages) != 0 {
		t.Fatalf("expected no delivered messages, got %v", sender.messages)
	}
}

// panicFetcher blows up on the first symbol it is asked for.
type panicFetcher struct{}

func (panicFetcher) Name() string { return "panic" }
func (panicFetcher) FetchDailyCloses(_, _ string) ([]model.PriceSample, error) {
	panic("boom")
}

func TestRunPass_PanicIsCaughtAndReported(t *testing.T) {
	sender := &captureSender{}
	s := newTestScheduler(panicFetcher{}, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"})

	// Must not propagate; the fault is reported on the alert channel instead.
	s.RunPass()

	if len(sender.messages) != 1 {
		t.Fatalf("expected exactly 1 error report, got %d: %v", len(sender.messages), sender.messages)
	}
	if !strings.Contains(sender.messages[0], "Error") || !strings.Contains(sender.messages[0], "boom") {
		t.Errorf("unexpected error report:\n%s", sender.messages[0])
	}
}

// blockingFetcher parks until released, so a pass can be held in flight.
type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
}

func (f *blockingFetcher) Name() string { return "blocking" }
func (f *blockingFetcher) FetchDailyCloses(_, _ string) ([]model.PriceSample, error) {
	close(f.started)
	<-f.release
	return series(2400, 2500), nil
}

func TestRunPass_NoOverlap(t *testing.T) {
	fetcher := &blockingFetcher{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	sender := &captureSender{}
	s := newTestScheduler(fetcher, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"})

	done := make(chan struct{})
	go func() {
		s.RunPass()
		close(done)
	}()
	<-fetcher.started

	// A second trigger while the first pass is in flight must return
	// immediately without fetching or sending anything.
	s.RunPass()

	close(fetcher.release)
	<-done

	if len(sender.messages) != 1 {
		t.Fatalf("expected 1 alert from the single real pass, got %d: %v", len(sender.messages), sender.messages)
	}
}

func TestHandleCommand(t *testing.T) {
	sender := &captureSender{}
	s := newTestScheduler(&collector.MockFetcher{}, sender, stubGate{open: true},
		model.Symbol{DisplayName: "RELIANCE", QuerySymbol: "RELIANCE.NS"})

	if reply := s.HandleCommand("/status"); !strings.Contains(reply, "open") || !strings.Contains(reply, "1 symbols") {
		t.Errorf("unexpected /status reply: %s", reply)
	}
	if reply := s.HandleCommand("/symbols"); !strings.Contains(reply, "RELIANCE (RELIANCE.NS)") {
		t.Errorf("unexpected /symbols reply: %s", reply)
	}
	if reply := s.HandleCommand("gibberish"); !strings.Contains(reply, "Available commands") {
		t.Errorf("unexpected fallback reply: %s", reply)
	}
}
