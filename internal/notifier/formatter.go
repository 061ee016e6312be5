package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockSentry/internal/model"
)

// FormatAlert formats a per-symbol threshold alert.
func FormatAlert(displayName string, snap *model.QuoteSnapshot, res model.ChangeResult) string {
	direction := "📈 INCREASED"
	arrow := "⬆️"
	if res.Absolute < 0 {
		direction = "📉 DECREASED"
		arrow = "⬇️"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>%s %s</b>\n\n", arrow, displayName, direction))
	b.WriteString(fmt.Sprintf("💰 Current Price: ₹%.2f\n", snap.Price))
	b.WriteString(fmt.Sprintf("📊 Previous Close: ₹%.2f\n", snap.PrevClose))
	b.WriteString(fmt.Sprintf("📅 Week Avg: %s\n", formatAvg(snap.AvgWeek, snap.HasAvgWeek)))
	b.WriteString(fmt.Sprintf("📅 3-Month Avg: %s\n", formatAvg(snap.AvgThreeMonth, snap.HasAvgThreeMonth)))
	b.WriteString(fmt.Sprintf("💹 Change: %s₹%.2f\n", signPrefix(res.Absolute), res.Absolute))
	b.WriteString(fmt.Sprintf("📊 Percentage: %s%.2f%%\n", signPrefix(res.Percent), res.Percent))
	b.WriteString(fmt.Sprintf("⏰ Time: %s", snap.ObservedAt.Format("15:04:05")))
	return b.String()
}

func formatAvg(v float64, ok bool) string {
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("₹%.2f", v)
}

func signPrefix(v float64) string {
	if v > 0 {
		return "+"
	}
	return "" // negative numbers carry their own sign
}

// FormatCycleSummary is sent when a pass produced zero alerts.
func FormatCycleSummary(symbolsChecked int) string {
	return fmt.Sprintf("📊 <b>Stock Check Complete</b> ✅\n\nAll %d stocks checked - no significant changes detected.\nTime: %s",
		symbolsChecked, time.Now().Format("15:04:05"))
}

// FormatStartup doubles as the connectivity test message.
func FormatStartup(symbols []model.Symbol, interval string) string {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.DisplayName
	}
	var b strings.Builder
	b.WriteString("🚀 <b>StockSentry Started</b>\n\n")
	b.WriteString(fmt.Sprintf("📊 Tracking: %s\n", strings.Join(names, ", ")))
	b.WriteString(fmt.Sprintf("🔄 Check interval: %s\n", interval))
	b.WriteString(fmt.Sprintf("⏰ Started: %s", time.Now().Format("2006-01-02 15:04:05")))
	return b.String()
}

// FormatShutdown is sent best-effort on SIGINT/SIGTERM.
func FormatShutdown() string {
	return "🛑 StockSentry shutting down. Monitoring stopped."
}

// FormatError reports a caught runtime fault on the alert channel.
func FormatError(context string, err interface{}) string {
	return fmt.Sprintf("❌ <b>StockSentry Error</b>\n\n%s: %v", context, err)
}
