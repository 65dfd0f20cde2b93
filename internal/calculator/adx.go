package calculator

import (
	"errors"
	"math"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// adxDefault is reported when there is too little data or no range at all:
// a middling trend reading that neither gates nor boosts confidence.
const adxDefault = 25.0

// CalculateADX computes a windowed directional-movement trend strength
// reading in [0,100]. Requires period+1 bars; returns the neutral default
// when data is insufficient or the window is flat.
func CalculateADX(bars []model.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return adxDefault, nil
	}

	var plusDM, minusDM, trSum float64
	for i := len(bars) - period; i < len(bars); i++ {
		highDiff := bars[i].High - bars[i-1].High
		lowDiff := bars[i-1].Low - bars[i].Low

		if highDiff > lowDiff && highDiff > 0 {
			plusDM += highDiff
		}
		if lowDiff > highDiff && lowDiff > 0 {
			minusDM += lowDiff
		}
		trSum += trueRange(bars[i], bars[i-1])
	}

	if trSum == 0 {
		return adxDefault, nil
	}
	plusDI := plusDM / trSum * 100
	minusDI := minusDM / trSum * 100
	if plusDI+minusDI == 0 {
		return adxDefault, nil
	}

	dx := math.Abs(plusDI-minusDI) / (plusDI + minusDI) * 100
	if dx < 0 {
		dx = 0
	}
	if dx > 100 {
		dx = 100
	}
	return dx, nil
}
