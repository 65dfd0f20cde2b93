package snapshot

import (
	"math"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// Generator produces a clearly-labeled placeholder snapshot when no real
// data is usable, so the rest of the pipeline is exercised uniformly in
// demo/no-data conditions. Bars follow a deterministic sine wave around the
// base price, so repeated calls with the same inputs yield the same shape.
type Generator struct {
	Symbol    string
	BasePrice float64
	BarCount  int
}

// NewGenerator creates a Generator. barCount bars of M5 history are produced;
// values below the minimum useful for analysis are raised to 200.
func NewGenerator(symbol string, basePrice float64, barCount int) *Generator {
	if barCount < 200 {
		barCount = 200
	}
	return &Generator{Symbol: symbol, BasePrice: basePrice, BarCount: barCount}
}

// Generate builds a synthetic snapshot captured at now. The source flag is
// always SourceSynthetic and must be propagated into any derived signal.
func (g *Generator) Generate(now time.Time) *model.Snapshot {
	base := g.BasePrice
	typicalRange := base * 0.015 // 1.5% swing, plausible for gold

	anchor := now.Truncate(5 * time.Minute)
	bars := make([]model.Bar, g.BarCount)
	dailyHigh, dailyLow := base, base
	for i := 0; i < g.BarCount; i++ {
		idx := g.BarCount - i // bars ago
		wave := math.Sin(float64(idx)*0.3) * (typicalRange * 0.3)
		mid := base + wave

		barRange := typicalRange * 0.1
		open := mid - barRange*0.2
		close := mid + barRange*0.2
		high := mid + barRange
		low := mid - barRange

		bars[i] = model.Bar{
			Time:   anchor.Add(-time.Duration(idx) * 5 * time.Minute),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: 1000,
		}
		if high > dailyHigh {
			dailyHigh = high
		}
		if low < dailyLow {
			dailyLow = low
		}
	}

	// Pin the last bar to the base price so bid sits inside its range.
	last := &bars[g.BarCount-1]
	last.Close = base
	if base > last.High {
		last.High = base
	}
	if base < last.Low {
		last.Low = base
	}

	return &model.Snapshot{
		Symbol:     g.Symbol,
		CapturedAt: now,
		Bid:        base,
		Ask:        base + 0.50,
		Spread:     50,
		DailyHigh:  dailyHigh,
		DailyLow:   dailyLow,
		DailyOpen:  bars[0].Open,
		TickVolume: 1000,
		Bars:       map[model.Timeframe][]model.Bar{model.TimeframeM5: bars},
		Account:    model.Account{Equity: 10000, Balance: 10000, FreeMargin: 10000, Currency: "EUR"},
		Broker:     model.Broker{Name: "Synthetic", Server: "Demo"},
		Source:     model.SourceSynthetic,
	}
}
