package market

import (
	"fmt"
	"time"
)

// Hours decides whether the market is open at a wall-clock instant. The
// window is half-open: the open minute is inside the window, the close
// minute is the first closed one. Weekends are always closed.
type Hours struct {
	loc       *time.Location
	openMins  int // minutes from midnight
	closeMins int
}

// NewHours builds a gate for the given IANA timezone and "15:04"-formatted
// open/close times.
func NewHours(timezone, open, close string) (*Hours, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", timezone, err)
	}
	openMins, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closeMins, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}
	if closeMins <= openMins {
		return nil, fmt.Errorf("close %s must be after open %s", close, open)
	}
	return &Hours{loc: loc, openMins: openMins, closeMins: closeMins}, nil
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// IsOpen reports whether t falls inside the trading window.
func (h *Hours) IsOpen(t time.Time) bool {
	t = t.In(h.loc)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	mins := t.Hour()*60 + t.Minute()
	return mins >= h.openMins && mins < h.closeMins
}

// Describe returns a short human-readable window description for status output.
func (h *Hours) Describe() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d %s",
		h.openMins/60, h.openMins%60, h.closeMins/60, h.closeMins%60, h.loc)
}
