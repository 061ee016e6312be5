package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"StockSentry/internal/collector"
	"StockSentry/internal/model"
	"StockSentry/internal/notifier"
	"StockSentry/internal/recorder"
	"StockSentry/internal/strategy"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Sender delivers one pre-formatted message.
type Sender interface {
	Send(text string) error
}

// Gate decides whether the market is open at an instant.
type Gate interface {
	IsOpen(t time.Time) bool
}

// Scheduler drives the recurring check pass over the watchlist. The gate is
// enforced here and only here: a closed market skips the whole pass.
type Scheduler struct {
	Cron         *cron.Cron
	Symbols      []model.Symbol
	Collector    *collector.Collector
	Notifier     Sender
	Gate         Gate
	Recorder     recorder.Recorder
	Threshold    float64       // alert when |percent change| >= Threshold
	SymbolDelay  time.Duration // pause between symbols, provider rate limit
	InitialDelay time.Duration // wait before the first pass after startup
	Ctx          context.Context

	running atomic.Bool // one pass at a time, whatever triggered it
}

// NewScheduler creates a Scheduler. Overlapping passes are skipped rather
// than queued; the interval is expected to exceed worst-case pass duration.
func NewScheduler(ctx context.Context, symbols []model.Symbol, col *collector.Collector,
	sender Sender, gate Gate, rec recorder.Recorder,
	threshold float64, symbolDelay, initialDelay time.Duration) *Scheduler {

	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.Default()))),
		),
		Symbols:      symbols,
		Collector:    col,
		Notifier:     sender,
		Gate:         gate,
		Recorder:     rec,
		Threshold:    threshold,
		SymbolDelay:  symbolDelay,
		InitialDelay: initialDelay,
		Ctx:          ctx,
	}
}

// Register adds the recurring check pass under the given cron spec.
func (s *Scheduler) Register(checkCron string) error {
	if _, err := s.Cron.AddFunc(checkCron, s.RunPass); err != nil {
		return fmt.Errorf("register check pass: %w", err)
	}
	return nil
}

// Start starts the cron scheduler and arms the initial pass.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")

	go func() {
		select {
		case <-s.Ctx.Done():
		case <-time.After(s.InitialDelay):
			log.Println("[INFO] running initial check pass")
			s.RunPass()
		}
	}()
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunPass executes one guarded pass. A panic anywhere in the pass is caught,
// logged, and best-effort reported; the process keeps running. Passes never
// overlap: cron ticks, the initial pass, and /check all take the same slot,
// and a trigger arriving mid-pass is skipped.
func (s *Scheduler) RunPass() {
	if !s.running.CompareAndSwap(false, true) {
		log.Println("[WARN] check pass already running, skipping trigger")
		return
	}
	defer s.running.Store(false)
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] check pass panicked: %v", r)
			s.trySend(notifier.FormatError("check pass", r))
		}
	}()
	s.pass()
}

func (s *Scheduler) pass() {
	if !s.Gate.IsOpen(time.Now()) {
		log.Println("[INFO] market closed, skipping check pass")
		return
	}

	passID := uuid.NewString()[:8]
	started := time.Now()
	log.Printf("[INFO] pass %s: checking %d symbols", passID, len(s.Symbols))

	alertsSent := 0
	for i, sym := range s.Symbols {
		if s.Ctx.Err() != nil {
			log.Printf("[INFO] pass %s: cancelled", passID)
			return
		}
		if sent := s.checkSymbol(passID, sym); sent {
			alertsSent++
		}
		if i < len(s.Symbols)-1 {
			select {
			case <-s.Ctx.Done():
				return
			case <-time.After(s.SymbolDelay):
			}
		}
	}

	summarySent := false
	if alertsSent == 0 {
		if err := s.Notifier.Send(notifier.FormatCycleSummary(len(s.Symbols))); err != nil {
			log.Printf("[ERROR] pass %s: send summary: %v", passID, err)
		} else {
			summarySent = true
		}
	}

	if err := s.Recorder.RecordCycle(&recorder.CycleRecord{
		PassID:         passID,
		StartedAt:      started,
		FinishedAt:     time.Now(),
		SymbolsChecked: len(s.Symbols),
		AlertsSent:     alertsSent,
		SummarySent:    summarySent,
	}); err != nil {
		log.Printf("[ERROR] pass %s: record cycle: %v", passID, err)
	}

	log.Printf("[INFO] pass %s: done, %d alerts sent", passID, alertsSent)
}

// checkSymbol fetches, evaluates, and (over threshold) alerts one symbol.
// Any failure is logged and isolated to this symbol.
func (s *Scheduler) checkSymbol(passID string, sym model.Symbol) bool {
	snap, err := s.Collector.Collect(sym.QuerySymbol)
	if err != nil {
		log.Printf("[ERROR] pass %s: %s: %v", passID, sym.DisplayName, err)
		return false
	}
	if snap == nil {
		return false // insufficient data, cause already logged
	}

	res := strategy.Evaluate(snap)
	log.Printf("[INFO] pass %s: %s price=%.2f prev=%.2f change=%+.2f%%",
		passID, sym.DisplayName, snap.Price, snap.PrevClose, res.Percent)

	if !strategy.ShouldAlert(snap, res, s.Threshold) {
		return false
	}

	sent := true
	if err := s.Notifier.Send(notifier.FormatAlert(sym.DisplayName, snap, res)); err != nil {
		log.Printf("[ERROR] pass %s: send alert for %s: %v", passID, sym.DisplayName, err)
		sent = false
	}

	if err := s.Recorder.RecordAlert(&recorder.AlertRecord{
		PassID:    passID,
		Symbol:    sym.QuerySymbol,
		Price:     snap.Price,
		PrevClose: snap.PrevClose,
		ChangeAbs: res.Absolute,
		ChangePct: res.Percent,
		Sent:      sent,
	}); err != nil {
		log.Printf("[ERROR] pass %s: record alert: %v", passID, err)
	}

	return sent
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/check":
		go s.RunPass()
		return "🏃 Running a check pass now."
	case "/status":
		state := "closed"
		if s.Gate.IsOpen(time.Now()) {
			state = "open"
		}
		return fmt.Sprintf("📊 Market is %s.\nTracking %d symbols.", state, len(s.Symbols))
	case "/symbols":
		names := make([]string, len(s.Symbols))
		for i, sym := range s.Symbols {
			names[i] = fmt.Sprintf("%s (%s)", sym.DisplayName, sym.QuerySymbol)
		}
		return "📋 Tracked symbols:\n" + strings.Join(names, "\n")
	default:
		return "Available commands:\n• /check\n• /status\n• /symbols"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.Send(text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
