package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists pass history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			pass_id         TEXT NOT NULL,
			started_at      INTEGER NOT NULL,
			finished_at     INTEGER NOT NULL,
			symbols_checked INTEGER,
			alerts_sent     INTEGER,
			summary_sent    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_started ON cycles(started_at)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			pass_id    TEXT NOT NULL,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			price      REAL,
			prev_close REAL,
			change_abs REAL,
			change_pct REAL,
			sent       INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_symbol ON alerts(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(rec *CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO cycles
		(pass_id, started_at, finished_at, symbols_checked, alerts_sent, summary_sent)
		VALUES (?,?,?,?,?,?)`,
		rec.PassID, rec.StartedAt.Unix(), rec.FinishedAt.Unix(),
		rec.SymbolsChecked, rec.AlertsSent, rec.SummarySent,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(rec *AlertRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alerts
		(pass_id, timestamp, symbol, price, prev_close, change_abs, change_pct, sent)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.PassID, time.Now().Unix(), rec.Symbol,
		rec.Price, rec.PrevClose, rec.ChangeAbs, rec.ChangePct, rec.Sent,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
