package calculator

import "errors"

// MACDPeriods are the conventional 12/26/9 settings.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// MACDMinBars is the history an accurate MACD needs: the slow EMA plus the
// signal EMA of the MACD line.
const MACDMinBars = macdSlowPeriod + macdSignalPeriod

// MACD holds the line, its EMA(9) signal, and the histogram, plus the
// previous pair for crossover detection.
type MACD struct {
	Line       float64
	Signal     float64
	Histogram  float64
	PrevLine   float64
	PrevSignal float64
}

// CalculateMACD computes EMA12-EMA26 against a true EMA9 signal line over
// the MACD series.
func CalculateMACD(closes []float64) (MACD, error) {
	if len(closes) < MACDMinBars {
		return MACD{}, errors.New("not enough data for MACD calculation")
	}

	fast, err := emaSeries(closes, macdFastPeriod)
	if err != nil {
		return MACD{}, err
	}
	slow, err := emaSeries(closes, macdSlowPeriod)
	if err != nil {
		return MACD{}, err
	}

	// MACD line is defined once the slow EMA is.
	line := make([]float64, 0, len(closes)-macdSlowPeriod+1)
	for i := macdSlowPeriod - 1; i < len(closes); i++ {
		line = append(line, fast[i]-slow[i])
	}

	signal, err := emaSeries(line, macdSignalPeriod)
	if err != nil {
		return MACD{}, err
	}

	n := len(line)
	m := MACD{
		Line:       line[n-1],
		Signal:     signal[n-1],
		PrevLine:   line[n-2],
		PrevSignal: signal[n-2],
	}
	m.Histogram = m.Line - m.Signal
	return m, nil
}

// CrossedAbove reports a bullish crossover on the most recent bar.
func (m MACD) CrossedAbove() bool {
	return m.PrevLine <= m.PrevSignal && m.Line > m.Signal
}

// CrossedBelow reports a bearish crossover on the most recent bar.
func (m MACD) CrossedBelow() bool {
	return m.PrevLine >= m.PrevSignal && m.Line < m.Signal
}
