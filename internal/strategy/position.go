package strategy

import (
	"errors"
	"fmt"
	"math"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// ErrInvalidStopDistance is returned when entry equals stop, which would
// otherwise divide by zero.
var ErrInvalidStopDistance = errors.New("invalid stop distance: entry equals stop")

// CalculatePositionSize derives a suggested trade size from account equity
// and risk parameters: (equity x riskPct) / |entry - stop|, rounded to a
// multiple of minUnit and clamped up to at least one minimum tradable unit.
func CalculatePositionSize(equity, riskPct, entry, stop, minUnit float64) (model.PositionSize, error) {
	if equity <= 0 {
		return model.PositionSize{}, fmt.Errorf("equity must be positive, got %.2f", equity)
	}
	if riskPct <= 0 || riskPct >= 1 {
		return model.PositionSize{}, fmt.Errorf("risk percent must be in (0,1), got %.4f", riskPct)
	}
	stopDistance := math.Abs(entry - stop)
	if stopDistance == 0 {
		return model.PositionSize{}, ErrInvalidStopDistance
	}

	riskAmount := equity * riskPct
	units := riskAmount / stopDistance
	if minUnit > 0 {
		units = math.Round(units/minUnit) * minUnit
		if units < minUnit {
			units = minUnit
		}
	}

	return model.PositionSize{
		Units:        units,
		RiskAmount:   riskAmount,
		StopDistance: stopDistance,
	}, nil
}
