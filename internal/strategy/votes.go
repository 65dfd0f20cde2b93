package strategy

import (
	"fmt"
	"math"
	"sync"

	"github.com/berelzbeheer/BerelzDashboard/internal/calculator"
	"github.com/berelzbeheer/BerelzDashboard/internal/model"
	"github.com/berelzbeheer/BerelzDashboard/internal/series"
)

// Indicator periods. MinBars is what each vote builder declares; a shorter
// series skips that indicator instead of failing the pass.
const (
	fastMAPeriod = 10
	slowMAPeriod = 50
	rsiPeriod    = 14
	bollPeriod   = 20
	bollStdDev   = 2.0
	stochKPeriod = 14
	stochDPeriod = 3
	volumePeriod = 20

	// ATRPeriod and ADXPeriod feed strength normalization and the ranging
	// gate; neither produces a directional vote of its own.
	ATRPeriod = 14
	ADXPeriod = 14
)

// srProximity is how close (relative to price) the bid must sit to a swing
// level before the support/resistance vote fires.
const srProximity = 0.0025

// voteBuilder computes one indicator's vote from a read-only series view.
// Builders are pure and independent, so CollectVotes evaluates them
// concurrently.
type voteBuilder func(s series.Series, bid float64) (model.IndicatorVote, error)

var voteBuilders = []struct {
	name    model.Indicator
	minBars int
	build   voteBuilder
}{
	{model.IndicatorMACross, slowMAPeriod + 1, voteMACross},
	{model.IndicatorRSI, rsiPeriod + 1, voteRSI},
	{model.IndicatorMACD, calculator.MACDMinBars, voteMACD},
	{model.IndicatorBollinger, bollPeriod, voteBollinger},
	{model.IndicatorStochastic, stochKPeriod + stochDPeriod, voteStochastic},
	{model.IndicatorSRLevel, 5, voteSRLevel},
	{model.IndicatorVolume, volumePeriod + 1, voteVolume},
}

// CollectVotes evaluates every enabled indicator concurrently against the
// primary series and returns the available votes in a fixed builder order.
// Indicators with insufficient history are omitted; their absence lowers
// aggregate confidence naturally. The skipped list reports why.
func CollectVotes(s series.Series, bid float64) (votes []model.IndicatorVote, skipped []error) {
	type slot struct {
		vote model.IndicatorVote
		err  error
		ok   bool
	}
	slots := make([]slot, len(voteBuilders))

	var wg sync.WaitGroup
	for i, vb := range voteBuilders {
		if err := s.Require(vb.minBars); err != nil {
			slots[i] = slot{err: fmt.Errorf("%s: %w", vb.name, err)}
			continue
		}
		wg.Add(1)
		go func(i int, vb voteBuilder) {
			defer wg.Done()
			v, err := vb(s, bid)
			slots[i] = slot{vote: v, err: err, ok: err == nil}
		}(i, vb.build)
	}
	wg.Wait()

	for _, sl := range slots {
		if sl.ok {
			votes = append(votes, sl.vote)
		} else {
			skipped = append(skipped, sl.err)
		}
	}
	return votes, skipped
}

// voteMACross: fast vs slow SMA. Bullish when the fast average is above the
// slow one and rising, bearish when below and falling.
func voteMACross(s series.Series, bid float64) (model.IndicatorVote, error) {
	closes := s.Closes()
	fast, err := calculator.CalculateSMA(closes, fastMAPeriod)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	slow, err := calculator.CalculateSMA(closes, slowMAPeriod)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	prevFast, err := calculator.CalculateSMA(closes[:len(closes)-1], fastMAPeriod)
	if err != nil {
		return model.IndicatorVote{}, err
	}

	v := model.IndicatorVote{Indicator: model.IndicatorMACross, Direction: model.DirectionNeutral}
	if slow == 0 {
		return v, nil
	}
	gap := math.Abs(fast-slow) / slow
	switch {
	case fast > slow && fast > prevFast:
		v.Direction = model.DirectionBullish
	case fast < slow && fast < prevFast:
		v.Direction = model.DirectionBearish
	default:
		return v, nil
	}
	// 1% separation between the averages reads as full strength.
	v.Strength = clamp01(gap / 0.01)
	v.Comment = fmt.Sprintf("fast=%.2f slow=%.2f", fast, slow)
	return v, nil
}

// voteRSI: oversold below 30 biases a reversal up, overbought above 70 a
// reversal down. Strength scales with distance from the 50 midline.
func voteRSI(s series.Series, _ float64) (model.IndicatorVote, error) {
	rsi, err := calculator.CalculateRSI(s.Closes(), rsiPeriod)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	v := model.IndicatorVote{
		Indicator: model.IndicatorRSI,
		Direction: model.DirectionNeutral,
		Comment:   fmt.Sprintf("RSI=%.0f", rsi),
	}
	switch {
	case rsi < 30:
		v.Direction = model.DirectionBullish
	case rsi > 70:
		v.Direction = model.DirectionBearish
	default:
		return v, nil
	}
	v.Strength = clamp01(math.Abs(rsi-50) / 50)
	return v, nil
}

// voteMACD: votes only on a signal-line crossover; strength follows the
// histogram magnitude relative to price.
func voteMACD(s series.Series, bid float64) (model.IndicatorVote, error) {
	m, err := calculator.CalculateMACD(s.Closes())
	if err != nil {
		return model.IndicatorVote{}, err
	}
	v := model.IndicatorVote{
		Indicator: model.IndicatorMACD,
		Direction: model.DirectionNeutral,
		Comment:   fmt.Sprintf("hist=%.4f", m.Histogram),
	}
	switch {
	case m.CrossedAbove():
		v.Direction = model.DirectionBullish
	case m.CrossedBelow():
		v.Direction = model.DirectionBearish
	default:
		return v, nil
	}
	// A histogram worth 0.1% of price is a decisive cross; fresh crosses
	// with a thin histogram still carry some weight.
	scale := bid * 0.001
	if scale <= 0 {
		scale = 1
	}
	v.Strength = clamp01(0.3 + math.Abs(m.Histogram)/scale)
	return v, nil
}

// voteBollinger: mean reversion off the band extremes.
func voteBollinger(s series.Series, bid float64) (model.IndicatorVote, error) {
	bands, err := calculator.CalculateBollinger(s.Closes(), bollPeriod, bollStdDev)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	v := model.IndicatorVote{Indicator: model.IndicatorBollinger, Direction: model.DirectionNeutral}
	if bands.Width() == 0 {
		return v, nil // flat market
	}
	pos := bands.PricePosition(bid)
	v.Comment = fmt.Sprintf("band position %.0f%%", pos)
	switch {
	case pos < 10:
		v.Direction, v.Strength = model.DirectionBullish, 1.0
	case pos < 25:
		v.Direction, v.Strength = model.DirectionBullish, 0.6
	case pos > 90:
		v.Direction, v.Strength = model.DirectionBearish, 1.0
	case pos > 75:
		v.Direction, v.Strength = model.DirectionBearish, 0.6
	}
	return v, nil
}

// voteStochastic: %K crossing %D out of the oversold/overbought zones.
func voteStochastic(s series.Series, _ float64) (model.IndicatorVote, error) {
	st, err := calculator.CalculateStochastic(s.Bars, stochKPeriod, stochDPeriod)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	v := model.IndicatorVote{
		Indicator: model.IndicatorStochastic,
		Direction: model.DirectionNeutral,
		Comment:   fmt.Sprintf("%%K=%.0f %%D=%.0f", st.K, st.D),
	}
	crossedUp := st.PrevK <= st.PrevD && st.K > st.D
	crossedDown := st.PrevK >= st.PrevD && st.K < st.D
	switch {
	case st.K < 20 && crossedUp:
		v.Direction = model.DirectionBullish
	case st.K > 80 && crossedDown:
		v.Direction = model.DirectionBearish
	default:
		return v, nil
	}
	v.Strength = clamp01(math.Abs(st.K-50) / 50)
	return v, nil
}

// voteSRLevel: bullish near a swing-low support, bearish near a swing-high
// resistance.
func voteSRLevel(s series.Series, bid float64) (model.IndicatorVote, error) {
	lv, err := calculator.FindSwingLevels(s.Bars, bid)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	v := model.IndicatorVote{Indicator: model.IndicatorSRLevel, Direction: model.DirectionNeutral}
	if bid <= 0 {
		return v, nil
	}
	limit := bid * srProximity
	if lv.HasSupport {
		if dist := bid - lv.Support; dist <= limit {
			v.Direction = model.DirectionBullish
			v.Strength = clamp01(1 - dist/limit)
			v.Comment = fmt.Sprintf("near support %.2f", lv.Support)
			return v, nil
		}
	}
	if lv.HasResistance {
		if dist := lv.Resistance - bid; dist <= limit {
			v.Direction = model.DirectionBearish
			v.Strength = clamp01(1 - dist/limit)
			v.Comment = fmt.Sprintf("near resistance %.2f", lv.Resistance)
		}
	}
	return v, nil
}

// voteVolume: above-average volume confirms the prevailing bar direction.
// Volume never originates a direction on its own.
func voteVolume(s series.Series, _ float64) (model.IndicatorVote, error) {
	ratio, err := calculator.CalculateVolumeRatio(s.Volumes(), volumePeriod)
	if err != nil {
		return model.IndicatorVote{}, err
	}
	v := model.IndicatorVote{
		Indicator: model.IndicatorVolume,
		Direction: model.DirectionNeutral,
		Comment:   fmt.Sprintf("volume %.1fx average", ratio),
	}
	last := s.Last()
	if ratio < 1.5 || !last.Bullish() && !last.Bearish() {
		return v, nil
	}
	if last.Bullish() {
		v.Direction = model.DirectionBullish
	} else {
		v.Direction = model.DirectionBearish
	}
	v.Strength = clamp01((ratio - 1) / 2)
	return v, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
