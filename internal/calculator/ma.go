package calculator

import "errors"

// CalculateSMA computes the simple moving average of the given prices over the specified period.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// CalculateEMA computes the exponential moving average, seeded with the SMA
// of the first period values.
func CalculateEMA(prices []float64, period int) (float64, error) {
	s, err := emaSeries(prices, period)
	if err != nil {
		return 0, err
	}
	return s[len(s)-1], nil
}

// emaSeries returns the EMA value aligned to each price index, starting at
// index period-1 (earlier indices hold the seed SMA value).
func emaSeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for EMA calculation")
	}
	k := 2.0 / (float64(period) + 1.0)

	seed := 0.0
	for _, p := range prices[:period] {
		seed += p
	}
	seed /= float64(period)

	out := make([]float64, len(prices))
	for i := 0; i < period; i++ {
		out[i] = seed
	}
	ema := seed
	for i := period; i < len(prices); i++ {
		ema = prices[i]*k + ema*(1-k)
		out[i] = ema
	}
	return out, nil
}
