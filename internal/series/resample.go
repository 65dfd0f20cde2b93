package series

import (
	"sort"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// Minimum source bars per bucket for the aggregate bar to be meaningful:
// a quarter hour of M5 data for an H1 bar, ~an hour for a D1 bar.
const (
	minBarsPerH1 = 3
	minBarsPerD1 = 10
)

// ResampleH1 builds H1 bars from an M5 series (12 M5 bars per hour).
// Used when the exporter supplies only the primary stream.
func ResampleH1(m5 Series) Series {
	return resample(m5, model.TimeframeH1, minBarsPerH1, func(t time.Time) time.Time {
		return t.Truncate(time.Hour)
	})
}

// ResampleD1 builds D1 bars from an M5 series.
func ResampleD1(m5 Series) Series {
	return resample(m5, model.TimeframeD1, minBarsPerD1, func(t time.Time) time.Time {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	})
}

func resample(src Series, tf model.Timeframe, minBars int, bucketOf func(time.Time) time.Time) Series {
	buckets := make(map[time.Time][]model.Bar)
	for _, b := range src.Bars {
		key := bucketOf(b.Time)
		buckets[key] = append(buckets[key], b)
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]model.Bar, 0, len(keys))
	for _, k := range keys {
		bucket := buckets[k]
		if len(bucket) < minBars {
			continue
		}
		agg := model.Bar{
			Time: k,
			Open: bucket[0].Open,
			High: bucket[0].High,
			Low:  bucket[0].Low,
		}
		for _, b := range bucket {
			if b.High > agg.High {
				agg.High = b.High
			}
			if b.Low < agg.Low {
				agg.Low = b.Low
			}
			agg.Volume += b.Volume
		}
		agg.Close = bucket[len(bucket)-1].Close
		out = append(out, agg)
	}
	return Series{Timeframe: tf, Bars: out}
}
