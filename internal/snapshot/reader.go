package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

// Ingestion failure taxonomy. ErrStale is advisory: Read still returns the
// parsed snapshot alongside it so the caller can choose between the stale
// data, the previous cached result, and the synthetic generator.
var (
	ErrNotFound  = errors.New("snapshot file not found")
	ErrStale     = errors.New("snapshot is stale")
	ErrMalformed = errors.New("snapshot is malformed")
)

const barTimeLayout = "2006.01.02 15:04:05"

// Reader loads the latest exporter snapshot from a filesystem location.
// It performs no caching of its own; every call re-reads the file and
// trusts the OS page cache for performance.
type Reader struct {
	Dir           string
	Files         []string
	TickFreshness time.Duration
	BarFreshness  time.Duration

	now func() time.Time
}

// NewReader creates a Reader that tries the given file names under dir in order.
func NewReader(dir string, files []string, tickFreshness, barFreshness time.Duration) *Reader {
	return &Reader{
		Dir:           dir,
		Files:         files,
		TickFreshness: tickFreshness,
		BarFreshness:  barFreshness,
		now:           time.Now,
	}
}

// Read parses the first readable snapshot file. It fails with ErrNotFound
// when no configured file exists, ErrMalformed on schema violations, and
// returns the snapshot together with a wrapped ErrStale when the captured-at
// timestamp is older than the tick freshness threshold.
func (r *Reader) Read() (*model.Snapshot, error) {
	var lastErr error = ErrNotFound
	for _, name := range r.Files {
		path := filepath.Join(r.Dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			lastErr = fmt.Errorf("stat %s: %w", name, err)
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = fmt.Errorf("read %s: %w", name, err)
			continue
		}

		snap, err := r.parse(data)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", name, err)
			continue
		}
		if snap.CapturedAt.IsZero() {
			snap.CapturedAt = info.ModTime()
		}

		age := r.now().Sub(snap.CapturedAt)
		if age > r.TickFreshness {
			return snap, fmt.Errorf("%s: captured %s ago (threshold %s): %w",
				name, age.Round(time.Second), r.TickFreshness, ErrStale)
		}
		// Bars go stale independently of the tick fields: an exporter that
		// keeps refreshing the quote but stops appending bars must not pass
		// as fully live.
		if last, ok := newestBarTime(snap.Bars[model.TimeframeM5]); ok {
			if barAge := r.now().Sub(last); barAge > r.BarFreshness {
				return snap, fmt.Errorf("%s: newest bar %s old (threshold %s): %w",
					name, barAge.Round(time.Second), r.BarFreshness, ErrStale)
			}
		}
		return snap, nil
	}
	return nil, lastErr
}

// newestBarTime returns the latest bar timestamp; bars may arrive unsorted.
func newestBarTime(bars []model.Bar) (time.Time, bool) {
	if len(bars) == 0 {
		return time.Time{}, false
	}
	last := bars[0].Time
	for _, b := range bars[1:] {
		if b.Time.After(last) {
			last = b.Time
		}
	}
	return last, true
}

// rawBar accepts both the exporter's short keys (o/h/l/c/v) and the long
// forms, and bar time as either "YYYY.MM.DD HH:MM:SS" or unix seconds.
type rawBar struct {
	Time   json.RawMessage `json:"time"`
	O      *float64        `json:"o"`
	H      *float64        `json:"h"`
	L      *float64        `json:"l"`
	C      *float64        `json:"c"`
	V      *float64        `json:"v"`
	Open   *float64        `json:"open"`
	High   *float64        `json:"high"`
	Low    *float64        `json:"low"`
	Close  *float64        `json:"close"`
	Volume *float64        `json:"volume"`
}

type rawSnapshot struct {
	Symbol     string          `json:"symbol"`
	Updated    string          `json:"updated"`
	Timestamp  float64         `json:"timestamp"`
	Bid        float64         `json:"bid"`
	Ask        float64         `json:"ask"`
	Spread     float64         `json:"spread"`
	DailyHigh  float64         `json:"daily_high"`
	DailyLow   float64         `json:"daily_low"`
	DailyOpen  float64         `json:"daily_open"`
	TickVolume float64         `json:"tick_volume"`
	Bars       []rawBar        `json:"bars"`
	BarsH1     []rawBar        `json:"bars_h1"`
	BarsD1     []rawBar        `json:"bars_d1"`
	Account    *model.Account  `json:"account"`
	Broker     *model.Broker   `json:"broker"`
}

func (r *Reader) parse(data []byte) (*model.Snapshot, error) {
	var raw rawSnapshot
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %v: %w", err, ErrMalformed)
	}

	if raw.Symbol == "" {
		return nil, fmt.Errorf("missing symbol: %w", ErrMalformed)
	}
	if raw.Bid <= 0 {
		return nil, fmt.Errorf("missing or non-positive bid: %w", ErrMalformed)
	}
	if len(raw.Bars) == 0 {
		return nil, fmt.Errorf("missing bars: %w", ErrMalformed)
	}

	snap := &model.Snapshot{
		Symbol:     raw.Symbol,
		Bid:        raw.Bid,
		Ask:        raw.Ask,
		Spread:     raw.Spread,
		DailyHigh:  raw.DailyHigh,
		DailyLow:   raw.DailyLow,
		DailyOpen:  raw.DailyOpen,
		TickVolume: raw.TickVolume,
		Bars:       make(map[model.Timeframe][]model.Bar, 3),
		Source:     model.SourceLive,
	}
	if snap.Ask == 0 {
		snap.Ask = snap.Bid
	}
	if snap.Spread == 0 && snap.Ask > snap.Bid {
		snap.Spread = (snap.Ask - snap.Bid) * 100
	}
	if raw.Account != nil {
		snap.Account = *raw.Account
	}
	if raw.Broker != nil {
		snap.Broker = *raw.Broker
	} else {
		snap.Broker = model.Broker{Name: "MT5 Broker", Server: "Unknown"}
	}

	if raw.Timestamp > 0 {
		sec := int64(raw.Timestamp)
		nsec := int64((raw.Timestamp - float64(sec)) * 1e9)
		snap.CapturedAt = time.Unix(sec, nsec)
	} else if raw.Updated != "" {
		t, err := time.ParseInLocation(barTimeLayout, raw.Updated, time.Local)
		if err != nil {
			return nil, fmt.Errorf("updated %q: %w", raw.Updated, ErrMalformed)
		}
		snap.CapturedAt = t
	}

	for tf, rawBars := range map[model.Timeframe][]rawBar{
		model.TimeframeM5: raw.Bars,
		model.TimeframeH1: raw.BarsH1,
		model.TimeframeD1: raw.BarsD1,
	} {
		if len(rawBars) == 0 {
			continue
		}
		bars, err := convertBars(rawBars)
		if err != nil {
			return nil, fmt.Errorf("%s bars: %w", tf, err)
		}
		snap.Bars[tf] = bars
	}

	return snap, nil
}

func convertBars(raw []rawBar) ([]model.Bar, error) {
	bars := make([]model.Bar, 0, len(raw))
	for i, rb := range raw {
		t, err := parseBarTime(rb.Time)
		if err != nil {
			return nil, fmt.Errorf("bar %d: %v: %w", i, err, ErrMalformed)
		}
		b := model.Bar{
			Time:   t,
			Open:   pick(rb.O, rb.Open),
			High:   pick(rb.H, rb.High),
			Low:    pick(rb.L, rb.Low),
			Close:  pick(rb.C, rb.Close),
			Volume: pick(rb.V, rb.Volume),
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("bar %d: %v: %w", i, err, ErrMalformed)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func pick(short, long *float64) float64 {
	if short != nil {
		return *short
	}
	if long != nil {
		return *long
	}
	return 0
}

func parseBarTime(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 {
		return time.Time{}, fmt.Errorf("missing time")
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, perr := time.ParseInLocation(barTimeLayout, s, time.Local)
		if perr != nil {
			return time.Time{}, fmt.Errorf("time %q: %v", s, perr)
		}
		return t, nil
	}
	var unix float64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix <= 0 {
			return time.Time{}, fmt.Errorf("non-positive unix time %v", unix)
		}
		return time.Unix(int64(unix), 0), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %s", string(raw))
}
