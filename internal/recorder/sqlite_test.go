package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
	"github.com/berelzbeheer/BerelzDashboard/internal/pipeline"
)

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "signals.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	res := &pipeline.Result{
		Symbol:     "XAUEUR",
		Bid:        2450,
		Ask:        2450.5,
		CapturedAt: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		Source:     model.SourceLive,
		Signal: &model.CompositeSignal{
			Classification: model.ClassifyBuy,
			Confidence:     45,
			Score:          45,
			ADX:            31,
			Votes: []model.IndicatorVote{
				{Indicator: model.IndicatorMACross, Direction: model.DirectionBullish, Strength: 1.0},
				{Indicator: model.IndicatorRSI, Direction: model.DirectionBearish, Strength: 0.4},
				{Indicator: model.IndicatorBollinger, Direction: model.DirectionNeutral, Strength: 0},
			},
			Patterns: []model.PatternMatch{
				{Pattern: model.PatternEngulfingBullish, Index: 4, Confidence: 0.8},
				{Pattern: model.PatternDoji, Index: 3, Confidence: 0.5},
			},
		},
		Position: &model.PositionSize{Units: 10, RiskAmount: 100, StopDistance: 10},
	}
	if err := rec.RecordSignal(NewSignalRecord(res)); err != nil {
		t.Fatalf("record signal: %v", err)
	}

	var (
		symbol, source, classification, patterns string
		confidence, score, maCross, rsi, boll    float64
		units                                    float64
		capturedAt                               int64
	)
	err = rec.db.QueryRow(`SELECT symbol, source, classification, confidence, score,
		ma_cross, rsi, bollinger, patterns, position_units, captured_at
		FROM signals`).Scan(&symbol, &source, &classification, &confidence, &score,
		&maCross, &rsi, &boll, &patterns, &units, &capturedAt)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if symbol != "XAUEUR" || source != "live" || classification != "BUY" {
		t.Errorf("row = %s/%s/%s", symbol, source, classification)
	}
	if confidence != 45 || score != 45 {
		t.Errorf("confidence/score = %.1f/%.1f", confidence, score)
	}
	// Contributions carry the vote direction as sign.
	if maCross != 1.0 {
		t.Errorf("ma_cross contribution = %.2f, want +1.0", maCross)
	}
	if rsi != -0.4 {
		t.Errorf("rsi contribution = %.2f, want -0.4", rsi)
	}
	if boll != 0 {
		t.Errorf("bollinger contribution = %.2f, want 0", boll)
	}
	if patterns != "engulfing-bullish,doji" {
		t.Errorf("patterns = %q", patterns)
	}
	if units != 10 {
		t.Errorf("position units = %.2f", units)
	}
	if capturedAt != res.CapturedAt.Unix() {
		t.Errorf("captured_at = %d, want %d", capturedAt, res.CapturedAt.Unix())
	}
}

func TestSQLiteRecorder_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.db")

	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	res := &pipeline.Result{
		Symbol: "XAUEUR", Source: model.SourceSynthetic,
		CapturedAt: time.Now(),
		Signal:     &model.CompositeSignal{Classification: model.ClassifyHold},
	}
	if err := rec.RecordSignal(NewSignalRecord(res)); err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}

	// Migration must be idempotent and the row survive a reopen.
	rec2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer rec2.Close()

	var count int
	if err := rec2.db.QueryRow(`SELECT COUNT(*) FROM signals`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("rows after reopen = %d, want 1", count)
	}
}
