package calculator

import (
	"errors"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// Stochastic holds the %K/%D oscillator values plus the previous pair for
// crossover detection.
type Stochastic struct {
	K     float64
	D     float64
	PrevK float64
	PrevD float64
}

// CalculateStochastic computes the %K oscillator with a dPeriod-SMA %D line.
// A flat window (highest == lowest) yields 50 rather than an error.
func CalculateStochastic(bars []model.Bar, kPeriod, dPeriod int) (Stochastic, error) {
	if kPeriod <= 0 || dPeriod <= 0 {
		return Stochastic{}, errors.New("periods must be positive")
	}
	// One extra %K value is needed for the previous %D.
	need := kPeriod + dPeriod
	if len(bars) < need {
		return Stochastic{}, errors.New("not enough data for stochastic calculation")
	}

	kAt := func(end int) float64 {
		window := bars[end-kPeriod : end]
		highest, lowest := window[0].High, window[0].Low
		for _, b := range window[1:] {
			if b.High > highest {
				highest = b.High
			}
			if b.Low < lowest {
				lowest = b.Low
			}
		}
		if highest == lowest {
			return 50
		}
		k := (window[kPeriod-1].Close - lowest) / (highest - lowest) * 100
		if k < 0 {
			k = 0
		}
		if k > 100 {
			k = 100
		}
		return k
	}

	// %K values for the last dPeriod+1 bars.
	ks := make([]float64, dPeriod+1)
	for i := range ks {
		ks[i] = kAt(len(bars) - dPeriod + i)
	}

	sum, prevSum := 0.0, 0.0
	for i := 1; i <= dPeriod; i++ {
		sum += ks[i]
		prevSum += ks[i-1]
	}

	return Stochastic{
		K:     ks[dPeriod],
		D:     sum / float64(dPeriod),
		PrevK: ks[dPeriod-1],
		PrevD: prevSum / float64(dPeriod),
	}, nil
}
