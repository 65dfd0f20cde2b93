package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// SQLiteRecorder persists signal history to a SQLite database.
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

	// WAL mode so dashboards can read history while the engine writes.
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
		`CREATE TABLE IF NOT EXISTS signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			captured_at    INTEGER,
			symbol         TEXT,
			source         TEXT,
			classification TEXT,
			confidence     REAL,
			score          REAL,
			adx            REAL,
			bid            REAL,
			ask            REAL,
			ma_cross       REAL,
			macd           REAL,
			rsi            REAL,
			bollinger      REAL,
			stochastic     REAL,
			sr_level       REAL,
			volume         REAL,
			patterns       TEXT,
			position_units REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSignal inserts one published signal with per-indicator directional
// contributions (strength signed by direction).
func (r *SQLiteRecorder) RecordSignal(rec *SignalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	contrib := make(map[model.Indicator]float64, len(rec.Votes))
	for _, v := range rec.Votes {
		contrib[v.Indicator] = v.Strength * v.Direction.Sign()
	}

	names := make([]string, 0, len(rec.Patterns))
	for _, p := range rec.Patterns {
		names = append(names, string(p.Pattern))
	}

	_, err := r.db.Exec(`INSERT INTO signals
		(timestamp, captured_at, symbol, source, classification, confidence, score, adx, bid, ask,
		 ma_cross, macd, rsi, bollinger, stochastic, sr_level, volume,
		 patterns, position_units)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.CapturedAt, rec.Symbol, string(rec.Source),
		string(rec.Classification), rec.Confidence, rec.Score, rec.ADX, rec.Bid, rec.Ask,
		contrib[model.IndicatorMACross], contrib[model.IndicatorMACD], contrib[model.IndicatorRSI],
		contrib[model.IndicatorBollinger], contrib[model.IndicatorStochastic],
		contrib[model.IndicatorSRLevel], contrib[model.IndicatorVolume],
		strings.Join(names, ","), rec.PositionUnits,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
