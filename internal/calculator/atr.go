package calculator

import (
	"errors"
	"math"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// CalculateATR computes the average true range over the given period.
// Requires period+1 bars. A flat series legitimately yields 0.
func CalculateATR(bars []model.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 0, errors.New("not enough data for ATR calculation")
	}

	sum := 0.0
	for i := len(bars) - period; i < len(bars); i++ {
		sum += trueRange(bars[i], bars[i-1])
	}
	return sum / float64(period), nil
}

func trueRange(cur, prev model.Bar) float64 {
	tr := cur.High - cur.Low
	if hc := math.Abs(cur.High - prev.Close); hc > tr {
		tr = hc
	}
	if lc := math.Abs(cur.Low - prev.Close); lc > tr {
		tr = lc
	}
	return tr
}
