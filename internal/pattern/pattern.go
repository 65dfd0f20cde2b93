// Package pattern detects named candlestick shapes in the most recent bars
// of the primary timeframe using ratio thresholds on body-to-range and wick
// lengths. Detection is independent per bar position; multiple patterns may
// co-match the same bars.
package pattern

import (
	"sort"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

const (
	// ScanDepth is how many trailing bars are inspected.
	ScanDepth = 5

	dojiMaxBodyRatio  = 0.10 // body <= 10% of range
	hammerWickRatio   = 2.0  // wick >= 2x body
	engulfMaxPrevDoji = 1e-9
)

// Detect scans the tail of bars for candlestick shapes and returns every
// match with confidence >= minConfidence, ranked by confidence descending.
// Indices address positions in the bars slice.
func Detect(bars []model.Bar, minConfidence float64) []model.PatternMatch {
	var matches []model.PatternMatch

	start := len(bars) - ScanDepth
	if start < 0 {
		start = 0
	}

	for i := start; i < len(bars); i++ {
		b := bars[i]
		if b.Range() <= 0 {
			continue
		}

		if m, ok := matchDoji(b); ok {
			matches = append(matches, at(m, i))
		}
		if m, ok := matchHammer(b); ok {
			matches = append(matches, at(m, i))
		}
		if m, ok := matchShootingStar(b); ok {
			matches = append(matches, at(m, i))
		}
		if i > 0 {
			if m, ok := matchEngulfing(bars[i-1], b); ok {
				matches = append(matches, at(m, i))
			}
		}
	}

	out := matches[:0]
	for _, m := range matches {
		if m.Confidence >= minConfidence {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Confidence > out[j].Confidence })
	return out
}

func at(m model.PatternMatch, i int) model.PatternMatch {
	m.Index = i
	return m
}

func matchDoji(b model.Bar) (model.PatternMatch, bool) {
	ratio := b.Body() / b.Range()
	if ratio > dojiMaxBodyRatio {
		return model.PatternMatch{}, false
	}
	return model.PatternMatch{
		Pattern:    model.PatternDoji,
		Confidence: clamp01(1 - ratio/dojiMaxBodyRatio),
	}, true
}

// hammer: long lower wick with the body in the upper third of the range.
func matchHammer(b model.Bar) (model.PatternMatch, bool) {
	body := b.Body()
	if body <= 0 {
		return model.PatternMatch{}, false
	}
	bodyBottom := b.Open
	if b.Close < bodyBottom {
		bodyBottom = b.Close
	}
	inUpperThird := bodyBottom >= b.High-b.Range()/3
	wickRatio := b.LowerWick() / body
	if !inUpperThird || wickRatio < hammerWickRatio {
		return model.PatternMatch{}, false
	}
	return model.PatternMatch{
		Pattern:    model.PatternHammer,
		Confidence: clamp01(wickRatio / (hammerWickRatio * 2)),
	}, true
}

// shooting star: mirrored hammer, long upper wick with the body in the
// lower third.
func matchShootingStar(b model.Bar) (model.PatternMatch, bool) {
	body := b.Body()
	if body <= 0 {
		return model.PatternMatch{}, false
	}
	bodyTop := b.Open
	if b.Close > bodyTop {
		bodyTop = b.Close
	}
	inLowerThird := bodyTop <= b.Low+b.Range()/3
	wickRatio := b.UpperWick() / body
	if !inLowerThird || wickRatio < hammerWickRatio {
		return model.PatternMatch{}, false
	}
	return model.PatternMatch{
		Pattern:    model.PatternShootingStar,
		Confidence: clamp01(wickRatio / (hammerWickRatio * 2)),
	}, true
}

// engulfing: current body fully contains and exceeds the previous body with
// opposite color.
func matchEngulfing(prev, cur model.Bar) (model.PatternMatch, bool) {
	prevBody := prev.Body()
	curBody := cur.Body()
	if prevBody <= engulfMaxPrevDoji || curBody <= prevBody {
		return model.PatternMatch{}, false
	}

	curTop, curBottom := bodyEdges(cur)
	prevTop, prevBottom := bodyEdges(prev)
	if curBottom > prevBottom || curTop < prevTop {
		return model.PatternMatch{}, false
	}

	conf := clamp01(0.5 * curBody / prevBody)
	switch {
	case cur.Bullish() && prev.Bearish():
		return model.PatternMatch{Pattern: model.PatternEngulfingBullish, Confidence: conf}, true
	case cur.Bearish() && prev.Bullish():
		return model.PatternMatch{Pattern: model.PatternEngulfingBearish, Confidence: conf}, true
	}
	return model.PatternMatch{}, false
}

func bodyEdges(b model.Bar) (top, bottom float64) {
	if b.Close >= b.Open {
		return b.Close, b.Open
	}
	return b.Open, b.Close
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
