package series

import (
	"fmt"
	"sort"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// InsufficientHistoryError reports that a timeframe carries fewer bars than
// an indicator requires. Non-fatal: the indicator is skipped, not the pass.
type InsufficientHistoryError struct {
	Timeframe model.Timeframe
	Need      int
	Have      int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history on %s: need %d bars, have %d", e.Timeframe, e.Need, e.Have)
}

// Series is an ordered, de-duplicated bar sequence for one timeframe.
// Owned by the normalizer; consumed read-only by indicators.
type Series struct {
	Timeframe model.Timeframe
	Bars      []model.Bar
}

// Normalize converts a raw per-timeframe bar array, possibly unsorted and
// containing duplicates from overlapping exporter writes, into an
// ascending-time, de-duplicated series truncated to the configured lookback.
// Last write wins for a duplicated timestamp.
func Normalize(tf model.Timeframe, raw []model.Bar, lookback int) Series {
	bars := make([]model.Bar, len(raw))
	copy(bars, raw)

	// Stable sort keeps later writes behind earlier ones for equal
	// timestamps, so the dedup pass below picks the last write.
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	out := bars[:0]
	for _, b := range bars {
		if n := len(out); n > 0 && out[n-1].Time.Equal(b.Time) {
			out[n-1] = b
			continue
		}
		out = append(out, b)
	}

	if lookback > 0 && len(out) > lookback {
		out = out[len(out)-lookback:]
	}
	return Series{Timeframe: tf, Bars: out}
}

// Len returns the number of bars in the series.
func (s Series) Len() int { return len(s.Bars) }

// Require returns an InsufficientHistoryError when the series is shorter
// than n bars.
func (s Series) Require(n int) error {
	if len(s.Bars) < n {
		return &InsufficientHistoryError{Timeframe: s.Timeframe, Need: n, Have: len(s.Bars)}
	}
	return nil
}

// Closes extracts the close prices in order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes extracts the volumes in order.
func (s Series) Volumes() []float64 {
	vols := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		vols[i] = b.Volume
	}
	return vols
}

// Last returns the most recent bar. The series must be non-empty.
func (s Series) Last() model.Bar { return s.Bars[len(s.Bars)-1] }

// Tail returns the last n bars (or all of them when fewer exist).
func (s Series) Tail(n int) []model.Bar {
	if len(s.Bars) <= n {
		return s.Bars
	}
	return s.Bars[len(s.Bars)-n:]
}
