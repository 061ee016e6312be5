package recorder

import "time"

// CycleRecord summarizes one complete pass over the watchlist.
type CycleRecord struct {
	PassID         string
	StartedAt      time.Time
	FinishedAt     time.Time
	SymbolsChecked int
	AlertsSent     int
	SummarySent    bool
}

// AlertRecord is one over-threshold evaluation, whether or not delivery succeeded.
type AlertRecord struct {
	PassID    string
	Symbol    string
	Price     float64
	PrevClose float64
	ChangeAbs float64
	ChangePct float64
	Sent      bool
}

// Recorder persists pass history for later analysis.
type Recorder interface {
	RecordCycle(rec *CycleRecord) error
	RecordAlert(rec *AlertRecord) error
	Close() error
}
