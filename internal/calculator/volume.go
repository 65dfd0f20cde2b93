package calculator

import "errors"

// CalculateVolumeRatio compares the latest volume against the moving-average
// volume of the preceding period bars. Returns 1.0 (no signal) when the
// average is zero.
func CalculateVolumeRatio(volumes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(volumes) < period+1 {
		return 0, errors.New("not enough data for volume ratio calculation")
	}
	avg, err := CalculateSMA(volumes[:len(volumes)-1], period)
	if err != nil {
		return 0, err
	}
	if avg == 0 {
		return 1.0, nil
	}
	return volumes[len(volumes)-1] / avg, nil
}
