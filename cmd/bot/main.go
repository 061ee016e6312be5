package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockSentry/internal/collector"
	"StockSentry/internal/config"
	"StockSentry/internal/health"
	"StockSentry/internal/market"
	"StockSentry/internal/notifier"
	"StockSentry/internal/recorder"
	"StockSentry/internal/scheduler"
	"StockSentry/internal/watchlist"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockSentry starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Load watchlist
	symbols, err := watchlist.Load(cfg.Watchlist.File)
	if err != nil {
		log.Fatalf("[FATAL] load watchlist: %v", err)
	}
	log.Printf("[INFO] tracking %d symbols from %s", len(symbols), cfg.Watchlist.File)

	// Init fetcher
	timeout := time.Duration(cfg.DataSource.TimeoutSeconds) * time.Second
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewChartAPIFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, timeout)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy, timeout)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Range, cfg.Market.WeekWindow)

	// Init market-hours gate
	gate, err := market.NewHours(cfg.Market.Timezone, cfg.Market.Open, cfg.Market.Close)
	if err != nil {
		log.Fatalf("[FATAL] init market hours: %v", err)
	}
	log.Printf("[INFO] market window: %s", gate.Describe())

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Env.BotToken, cfg.Env.ChatID, cfg.Proxy, 15*time.Second)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, symbols, col, tn, gate, rec,
		cfg.Alert.ThresholdPercent,
		time.Duration(cfg.Schedule.SymbolDelayMillis)*time.Millisecond,
		time.Duration(cfg.Schedule.InitialDelaySeconds)*time.Second,
	)
	if err := sched.Register(cfg.Schedule.CheckCron); err != nil {
		log.Fatalf("[FATAL] register check pass: %v", err)
	}

	// Startup connectivity test: one message that also announces the bot.
	if err := tn.Send(notifier.FormatStartup(symbols, cfg.Schedule.CheckCron)); err != nil {
		log.Fatalf("[FATAL] startup connectivity test: %v", err)
	}
	log.Println("[INFO] startup notification sent")

	sched.Start()
	defer sched.Stop()

	// Liveness endpoint
	hs := health.NewServer(":"+cfg.Env.Port, gate, len(symbols))
	go func() {
		if err := hs.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] health server: %v", err)
		}
	}()

	// Telegram command polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	log.Println("[INFO] StockSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("[INFO] %s received, stopping...", sig)
	if err := tn.Send(notifier.FormatShutdown()); err != nil {
		log.Printf("[WARN] shutdown notification: %v", err)
	}
	cancel()
	log.Println("[INFO] StockSentry stopped")
}
