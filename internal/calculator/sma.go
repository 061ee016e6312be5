package calculator

import (
	"errors"

	"StockSentry/internal/model"
)

// CalculateSMA computes the simple moving average of the last `period` prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// Mean computes the average over all given prices.
func Mean(prices []float64) (float64, error) {
	if len(prices) == 0 {
		return 0, errors.New("no prices provided")
	}
	sum := 0.0
	for _, p := range prices {
		sum += p
	}
	return sum / float64(len(prices)), nil
}

// Closes extracts the close values from a sample sequence, in order.
func Closes(samples []model.PriceSample) []float64 {
	closes := make([]float64, len(samples))
	for i, s := range samples {
		closes[i] = s.Close
	}
	return closes
}
