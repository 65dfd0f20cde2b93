package model

import "time"

// Direction is one indicator's directional opinion.
type Direction string

const (
	DirectionBullish Direction = "bullish"
	DirectionBearish Direction = "bearish"
	DirectionNeutral Direction = "neutral"
)

// Sign maps the direction onto {-1, 0, +1} for weighted scoring.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionBullish:
		return 1
	case DirectionBearish:
		return -1
	default:
		return 0
	}
}

// Indicator names the vote producers known to the aggregator.
type Indicator string

const (
	IndicatorMACross    Indicator = "ma_cross"
	IndicatorRSI        Indicator = "rsi"
	IndicatorMACD       Indicator = "macd"
	IndicatorBollinger  Indicator = "bollinger"
	IndicatorStochastic Indicator = "stochastic"
	IndicatorSRLevel    Indicator = "support_resistance"
	IndicatorVolume     Indicator = "volume"
)

// IndicatorVote is produced fresh on every aggregation pass; never mutated.
// Strength is in [0,1].
type IndicatorVote struct {
	Indicator Indicator
	Direction Direction
	Strength  float64
	Comment   string
}

// Pattern names a detected candlestick shape.
type Pattern string

const (
	PatternEngulfingBullish Pattern = "engulfing-bullish"
	PatternEngulfingBearish Pattern = "engulfing-bearish"
	PatternDoji             Pattern = "doji"
	PatternHammer           Pattern = "hammer"
	PatternShootingStar     Pattern = "shooting-star"
)

// PatternMatch locates one detected pattern. Index addresses the bar within
// the scanned series; Confidence is in [0,1].
type PatternMatch struct {
	Pattern    Pattern
	Index      int
	Confidence float64
}

// Classification is the composite trading call.
type Classification string

const (
	ClassifyBuy  Classification = "BUY"
	ClassifySell Classification = "SELL"
	ClassifyHold Classification = "HOLD"
)

// CompositeSignal is the aggregated output of one computation pass, the
// unit cached and served. Confidence is in [0,100].
type CompositeSignal struct {
	Classification Classification
	Confidence     float64
	Score          float64
	ADX            float64
	Votes          []IndicatorVote
	Patterns       []PatternMatch
	Source         Source
	ComputedAt     time.Time
}

// PositionSize is a derived trade-size recommendation; not persisted.
type PositionSize struct {
	Units        float64
	RiskAmount   float64
	StopDistance float64
}
