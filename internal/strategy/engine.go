package strategy

import (
	"math"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// Indicator weights, fixed documented constants summing to 100. Trend-type
// indicators carry the most weight; volume only ever confirms. Weights of
// missing indicators are NOT redistributed, so confidence is naturally
// lower with sparse data.
var DefaultWeights = map[model.Indicator]float64{
	model.IndicatorMACross:    25,
	model.IndicatorMACD:       20,
	model.IndicatorRSI:        15,
	model.IndicatorBollinger:  10,
	model.IndicatorStochastic: 10,
	model.IndicatorSRLevel:    10,
	model.IndicatorVolume:     10,
}

// Params configures the aggregation pass.
type Params struct {
	Weights map[model.Indicator]float64
	// ClassifyThreshold is symmetric around zero: score above it is BUY,
	// below its negation SELL, anything between HOLD.
	ClassifyThreshold float64
	// ADXGateThreshold/ADXRangingFactor implement the ranging-market gate:
	// when trend strength is below the threshold the whole score is scaled
	// down by the factor.
	ADXGateThreshold float64
	ADXRangingFactor float64
}

// DefaultParams returns the documented default aggregation parameters.
func DefaultParams() Params {
	return Params{
		Weights:           DefaultWeights,
		ClassifyThreshold: 35,
		ADXGateThreshold:  20,
		ADXRangingFactor:  0.5,
	}
}

// Aggregate combines the available indicator votes into one composite
// signal via deterministic weighted scoring. It is a pure function of its
// inputs: identical votes always yield identical classification and
// confidence. No votes at all classifies HOLD with zero confidence.
func Aggregate(votes []model.IndicatorVote, patterns []model.PatternMatch, adx float64, p Params) *model.CompositeSignal {
	var score, bullSum, bearSum float64
	for _, v := range votes {
		w := p.Weights[v.Indicator]
		contrib := w * v.Strength * v.Direction.Sign()
		score += contrib
		if contrib > 0 {
			bullSum += contrib
		} else {
			bearSum -= contrib
		}
	}

	// Ranging-market gate: weak trend discounts every directional vote.
	if adx < p.ADXGateThreshold {
		score *= p.ADXRangingFactor
	}

	classification := model.ClassifyHold
	switch {
	case score == 0 || bullSum == bearSum:
		// Exact tie stays HOLD regardless of thresholds.
	case score > p.ClassifyThreshold:
		classification = model.ClassifyBuy
	case score < -p.ClassifyThreshold:
		classification = model.ClassifySell
	}

	confidence := math.Abs(score)
	if confidence > 100 {
		confidence = 100
	}

	return &model.CompositeSignal{
		Classification: classification,
		Confidence:     confidence,
		Score:          score,
		ADX:            adx,
		Votes:          votes,
		Patterns:       patterns,
	}
}
