package calculator

import (
	"errors"
	"math"
)

// Bands holds the Bollinger band levels.
type Bands struct {
	Upper  float64
	Middle float64
	Lower  float64
}

// Width returns the upper-lower distance; zero on a flat series.
func (b Bands) Width() float64 { return b.Upper - b.Lower }

// PricePosition maps a price onto the band range as a 0-100 percentage,
// with 50 for a zero-width band (flat market).
func (b Bands) PricePosition(price float64) float64 {
	w := b.Width()
	if w == 0 {
		return 50
	}
	return (price - b.Lower) / w * 100
}

// CalculateBollinger computes the period-SMA band with stdDev standard
// deviations on either side.
func CalculateBollinger(closes []float64, period int, stdDev float64) (Bands, error) {
	if len(closes) < period {
		return Bands{}, errors.New("not enough data for Bollinger calculation")
	}
	sma, err := CalculateSMA(closes, period)
	if err != nil {
		return Bands{}, err
	}
	variance := 0.0
	for _, c := range closes[len(closes)-period:] {
		d := c - sma
		variance += d * d
	}
	variance /= float64(period)
	sd := math.Sqrt(variance)
	return Bands{
		Upper:  sma + stdDev*sd,
		Middle: sma,
		Lower:  sma - stdDev*sd,
	}, nil
}
