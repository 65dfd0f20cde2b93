package recorder

import (
	"github.com/berelzbeheer/BerelzDashboard/internal/model"
	"github.com/berelzbeheer/BerelzDashboard/internal/pipeline"
)

// SignalRecord is one published composite signal flattened for persistence.
type SignalRecord struct {
	Symbol         string
	Source         model.Source
	Classification model.Classification
	Confidence     float64
	Score          float64
	ADX            float64
	Bid            float64
	Ask            float64
	CapturedAt     int64
	Votes          []model.IndicatorVote
	Patterns       []model.PatternMatch
	PositionUnits  float64
}

// NewSignalRecord flattens a pipeline result for the recorder.
func NewSignalRecord(res *pipeline.Result) *SignalRecord {
	rec := &SignalRecord{
		Symbol:         res.Symbol,
		Source:         res.Source,
		Classification: res.Signal.Classification,
		Confidence:     res.Signal.Confidence,
		Score:          res.Signal.Score,
		ADX:            res.Signal.ADX,
		Bid:            res.Bid,
		Ask:            res.Ask,
		CapturedAt:     res.CapturedAt.Unix(),
		Votes:          res.Signal.Votes,
		Patterns:       res.Signal.Patterns,
	}
	if res.Position != nil {
		rec.PositionUnits = res.Position.Units
	}
	return rec
}

// Recorder persists signal history for later analysis.
type Recorder interface {
	RecordSignal(rec *SignalRecord) error
	Close() error
}
