package model

// ChangeResult is the price movement of one symbol against its previous close.
type ChangeResult struct {
	Absolute float64
	Percent  float64
}
