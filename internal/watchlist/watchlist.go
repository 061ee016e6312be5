package watchlist

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"StockSentry/internal/model"
)

// suffixes stripped from display names; the query symbol keeps them.
var marketSuffixes = []string{".NS", ".BO"}

// Load reads a newline-delimited symbol file and returns the tracked symbols
// in file order. Blank and whitespace-only lines are skipped.
func Load(path string) ([]model.Symbol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist %s: %w", path, err)
	}

	var symbols []model.Symbol
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		symbols = append(symbols, model.Symbol{
			DisplayName: displayName(line),
			QuerySymbol: line,
		})
	}
	if len(symbols) == 0 {
		return nil, errors.New("watchlist contains no symbols")
	}
	return symbols, nil
}

func displayName(symbol string) string {
	for _, suf := range marketSuffixes {
		symbol = strings.TrimSuffix(symbol, suf)
	}
	return symbol
}
