// Package pipeline runs one full computation pass: snapshot ingestion with
// synthetic fallback, normalization, concurrent indicator voting, pattern
// detection, aggregation, and position sizing. Passes are short, bounded,
// and hold no state between calls; the result cache owns the output.
package pipeline

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/calculator"
	"github.com/berelzbeheer/BerelzDashboard/internal/config"
	"github.com/berelzbeheer/BerelzDashboard/internal/model"
	"github.com/berelzbeheer/BerelzDashboard/internal/pattern"
	"github.com/berelzbeheer/BerelzDashboard/internal/series"
	"github.com/berelzbeheer/BerelzDashboard/internal/snapshot"
	"github.com/berelzbeheer/BerelzDashboard/internal/strategy"
)

// Momentum summarizes the last four H1 candles, a quick read on where the
// market has been heading going into the current signal.
type Momentum struct {
	Trend  string // "UP", "DOWN" or "FLAT"
	Greens int
	Reds   int
	Change float64 // last complete H1 open-to-close move
}

// Result is the complete output of one pass: the composite signal, the
// sizing recommendation, and the identity of the snapshot it derives from.
type Result struct {
	Symbol      string
	Bid         float64
	Ask         float64
	CapturedAt  time.Time
	Source      model.Source
	Signal      *model.CompositeSignal
	Position    *model.PositionSize
	PositionErr error
	Momentum    Momentum
}

// Pipeline wires the ingestion components to the signal engine.
type Pipeline struct {
	Reader    *snapshot.Reader
	Generator *snapshot.Generator

	LookbackM5     int
	LookbackH1     int
	LookbackD1     int
	Params         strategy.Params
	MinPatternConf float64
	RiskPercent    float64
	MinUnit        float64
	StopATRMult    float64

	now func() time.Time
}

// New builds a Pipeline from configuration.
func New(reader *snapshot.Reader, gen *snapshot.Generator, cfg *config.Config) *Pipeline {
	return &Pipeline{
		Reader:     reader,
		Generator:  gen,
		LookbackM5: cfg.Lookback.M5,
		LookbackH1: cfg.Lookback.H1,
		LookbackD1: cfg.Lookback.D1,
		Params: strategy.Params{
			Weights:           strategy.DefaultWeights,
			ClassifyThreshold: cfg.Signal.ClassifyThreshold,
			ADXGateThreshold:  cfg.Signal.ADXGateThreshold,
			ADXRangingFactor:  cfg.Signal.ADXRangingFactor,
		},
		MinPatternConf: cfg.Signal.MinPatternConf,
		RiskPercent:    cfg.Risk.Percent,
		MinUnit:        cfg.Risk.MinUnit,
		StopATRMult:    cfg.Risk.StopATRMult,
		now:            time.Now,
	}
}

// Pass ingests the current snapshot and computes a fresh result. Ingestion
// failures are absorbed here: stale, missing, or malformed exporter data
// falls back to the synthetic generator, so Pass never returns a nil result.
func (p *Pipeline) Pass() *Result {
	snap := p.ingest()
	return p.compute(snap)
}

// ingest reads the exporter snapshot, logging and falling back to the
// synthetic generator on any failure. A stale snapshot still contributes
// its last price so the synthetic fallback stays plausible.
func (p *Pipeline) ingest() *model.Snapshot {
	snap, err := p.Reader.Read()
	if err == nil {
		return snap
	}

	gen := p.Generator
	switch {
	case errors.Is(err, snapshot.ErrStale):
		log.Printf("[WARN] ingest: %v, falling back to synthetic", err)
		if snap != nil && snap.Bid > 0 {
			gen = snapshot.NewGenerator(snap.Symbol, snap.Bid, gen.BarCount)
		}
	case errors.Is(err, snapshot.ErrNotFound):
		log.Printf("[WARN] ingest: %v, using synthetic snapshot", err)
	default:
		log.Printf("[ERROR] ingest: %v, using synthetic snapshot", err)
	}
	return gen.Generate(p.now())
}

func (p *Pipeline) compute(snap *model.Snapshot) *Result {
	m5 := series.Normalize(model.TimeframeM5, snap.Bars[model.TimeframeM5], p.LookbackM5)

	// The exporter may ship only the M5 stream; build the higher
	// timeframes from it when absent.
	h1 := series.Normalize(model.TimeframeH1, snap.Bars[model.TimeframeH1], p.LookbackH1)
	if h1.Len() == 0 {
		h1 = series.ResampleH1(m5)
	}
	d1 := series.Normalize(model.TimeframeD1, snap.Bars[model.TimeframeD1], p.LookbackD1)
	if d1.Len() == 0 {
		d1 = series.ResampleD1(m5)
	}

	votes, skipped := strategy.CollectVotes(m5, snap.Bid)
	for _, err := range skipped {
		log.Printf("[WARN] indicator skipped: %v", err)
	}

	adx, err := calculator.CalculateADX(m5.Bars, strategy.ADXPeriod)
	if err != nil {
		log.Printf("[WARN] ADX calculation failed: %v, using neutral default", err)
		adx = 25
	}
	atr, err := calculator.CalculateATR(m5.Bars, strategy.ATRPeriod)
	if err != nil {
		log.Printf("[WARN] ATR calculation failed: %v", err)
		atr = 0
	}

	patterns := pattern.Detect(m5.Bars, p.MinPatternConf)

	sig := strategy.Aggregate(votes, patterns, adx, p.Params)
	sig.Source = snap.Source
	sig.ComputedAt = p.now()

	res := &Result{
		Symbol:     snap.Symbol,
		Bid:        snap.Bid,
		Ask:        snap.Ask,
		CapturedAt: snap.CapturedAt,
		Source:     snap.Source,
		Signal:     sig,
		Momentum:   momentumFrom(h1),
	}
	res.Position, res.PositionErr = p.position(snap, sig, atr)
	return res
}

// position derives a size recommendation with an ATR-based stop around the
// current bid. Sizing failures are typed and reported, never fatal.
func (p *Pipeline) position(snap *model.Snapshot, sig *model.CompositeSignal, atr float64) (*model.PositionSize, error) {
	equity := snap.Account.Equity
	if equity <= 0 {
		return nil, fmt.Errorf("no account equity in snapshot")
	}

	entry := snap.Bid
	if sig.Classification == model.ClassifyBuy {
		entry = snap.Ask
	}
	stop := entry - atr*p.StopATRMult
	if sig.Classification == model.ClassifySell {
		stop = entry + atr*p.StopATRMult
	}

	ps, err := strategy.CalculatePositionSize(equity, p.RiskPercent, entry, stop, p.MinUnit)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func momentumFrom(h1 series.Series) Momentum {
	m := Momentum{Trend: "FLAT"}
	tail := h1.Tail(4)
	if len(tail) == 0 {
		return m
	}
	for _, b := range tail {
		switch {
		case b.Bullish():
			m.Greens++
		case b.Bearish():
			m.Reds++
		}
	}
	last := tail[len(tail)-1]
	m.Change = last.Close - last.Open
	switch {
	case m.Greens > m.Reds:
		m.Trend = "UP"
	case m.Reds > m.Greens:
		m.Trend = "DOWN"
	}
	return m
}
