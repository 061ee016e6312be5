package strategy

import (
	"math"

	"StockSentry/internal/model"
)

// Evaluate computes the price change of a snapshot against its previous close.
// Pure arithmetic; a zero previous close yields a zero percent change.
func Evaluate(snap *model.QuoteSnapshot) model.ChangeResult {
	res := model.ChangeResult{Absolute: snap.Price - snap.PrevClose}
	if snap.PrevClose != 0 {
		res.Percent = res.Absolute / snap.PrevClose * 100
	}
	return res
}

// ShouldAlert reports whether the change crosses the alert threshold.
// A zero previous close is a data-quality signal, never an alert.
func ShouldAlert(snap *model.QuoteSnapshot, res model.ChangeResult, thresholdPercent float64) bool {
	if snap.PrevClose == 0 {
		return false
	}
	return math.Abs(res.Percent) >= thresholdPercent
}
