package model

import (
	"fmt"
	"time"
)

// Timeframe identifies the bar interval of a series.
type Timeframe string

const (
	TimeframeM5 Timeframe = "M5"
	TimeframeH1 Timeframe = "H1"
	TimeframeD1 Timeframe = "D1"
)

// Duration returns the bar interval for the timeframe.
func (tf Timeframe) Duration() time.Duration {
	switch tf {
	case TimeframeM5:
		return 5 * time.Minute
	case TimeframeH1:
		return time.Hour
	case TimeframeD1:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Bar represents a single OHLCV candlestick. Immutable once created.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Validate checks the OHLC range invariant: low <= min(open,close) and
// max(open,close) <= high, with non-negative volume.
func (b Bar) Validate() error {
	if b.Time.IsZero() {
		return fmt.Errorf("bar has zero timestamp")
	}
	lo, hi := b.Open, b.Open
	if b.Close < lo {
		lo = b.Close
	}
	if b.Close > hi {
		hi = b.Close
	}
	if b.Low > lo || b.High < hi {
		return fmt.Errorf("bar at %s violates OHLC range: o=%.5f h=%.5f l=%.5f c=%.5f",
			b.Time.Format("2006.01.02 15:04:05"), b.Open, b.High, b.Low, b.Close)
	}
	if b.Volume < 0 {
		return fmt.Errorf("bar at %s has negative volume %.2f", b.Time.Format("2006.01.02 15:04:05"), b.Volume)
	}
	return nil
}

// Body returns the absolute open-close distance.
func (b Bar) Body() float64 {
	if b.Close >= b.Open {
		return b.Close - b.Open
	}
	return b.Open - b.Close
}

// Range returns the high-low distance.
func (b Bar) Range() float64 { return b.High - b.Low }

// Bullish reports whether the bar closed above its open.
func (b Bar) Bullish() bool { return b.Close > b.Open }

// Bearish reports whether the bar closed below its open.
func (b Bar) Bearish() bool { return b.Close < b.Open }

// UpperWick returns the distance from the body top to the high.
func (b Bar) UpperWick() float64 {
	top := b.Open
	if b.Close > top {
		top = b.Close
	}
	return b.High - top
}

// LowerWick returns the distance from the low to the body bottom.
func (b Bar) LowerWick() float64 {
	bottom := b.Open
	if b.Close < bottom {
		bottom = b.Close
	}
	return bottom - b.Low
}
