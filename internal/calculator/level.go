package calculator

import (
	"errors"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// swingWing is how many bars on each side must be exceeded for a bar to
// count as a swing point.
const swingWing = 2

// Levels holds the nearest structural price levels around the current price.
type Levels struct {
	Support       float64
	Resistance    float64
	HasSupport    bool
	HasResistance bool
}

// FindSwingLevels scans the look-back window for local swing highs/lows and
// returns the nearest swing low below price (support) and the nearest swing
// high above it (resistance).
func FindSwingLevels(bars []model.Bar, price float64) (Levels, error) {
	if len(bars) < swingWing*2+1 {
		return Levels{}, errors.New("not enough data for swing level detection")
	}

	var lv Levels
	for i := swingWing; i < len(bars)-swingWing; i++ {
		isHigh, isLow := true, true
		for j := i - swingWing; j <= i+swingWing; j++ {
			if j == i {
				continue
			}
			if bars[j].High >= bars[i].High {
				isHigh = false
			}
			if bars[j].Low <= bars[i].Low {
				isLow = false
			}
		}
		if isLow && bars[i].Low < price {
			if !lv.HasSupport || bars[i].Low > lv.Support {
				lv.Support = bars[i].Low
				lv.HasSupport = true
			}
		}
		if isHigh && bars[i].High > price {
			if !lv.HasResistance || bars[i].High < lv.Resistance {
				lv.Resistance = bars[i].High
				lv.HasResistance = true
			}
		}
	}
	return lv, nil
}
