package series

import (
	"errors"
	"testing"
	"time"

	"github.com/berelzbeheer/BerelzDashboard/internal/model"
)

func barAt(t time.Time, close float64) model.Bar {
	return model.Bar{Time: t, Open: close - 1, High: close + 2, Low: close - 2, Close: close, Volume: 100}
}

func TestNormalize_SortsUnsortedInput(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	raw := []model.Bar{
		barAt(t0.Add(10*time.Minute), 3),
		barAt(t0, 1),
		barAt(t0.Add(5*time.Minute), 2),
	}

	s := Normalize(model.TimeframeM5, raw, 0)
	if s.Len() != 3 {
		t.Fatalf("len = %d", s.Len())
	}
	for i, want := range []float64{1, 2, 3} {
		if s.Bars[i].Close != want {
			t.Errorf("bar %d close = %.0f, want %.0f", i, s.Bars[i].Close, want)
		}
	}
}

func TestNormalize_DuplicateLastWriteWins(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	raw := []model.Bar{
		barAt(t0, 1),
		barAt(t0.Add(5*time.Minute), 2),
		barAt(t0.Add(5*time.Minute), 9), // later write for the same timestamp
	}

	s := Normalize(model.TimeframeM5, raw, 0)
	if s.Len() != 2 {
		t.Fatalf("len = %d, want duplicates collapsed", s.Len())
	}
	if s.Last().Close != 9 {
		t.Errorf("last close = %.0f, want the later write", s.Last().Close)
	}
}

func TestNormalize_TruncatesToLookback(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	raw := make([]model.Bar, 10)
	for i := range raw {
		raw[i] = barAt(t0.Add(time.Duration(i)*5*time.Minute), float64(i))
	}

	s := Normalize(model.TimeframeM5, raw, 4)
	if s.Len() != 4 {
		t.Fatalf("len = %d, want 4", s.Len())
	}
	// Keeps the most recent bars.
	if s.Bars[0].Close != 6 || s.Last().Close != 9 {
		t.Errorf("window = [%.0f..%.0f], want [6..9]", s.Bars[0].Close, s.Last().Close)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	raw := []model.Bar{
		barAt(t0.Add(5*time.Minute), 2),
		barAt(t0, 1),
	}
	Normalize(model.TimeframeM5, raw, 0)
	if raw[0].Close != 2 {
		t.Error("input slice was reordered")
	}
}

func TestRequire(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	s := Normalize(model.TimeframeM5, []model.Bar{barAt(t0, 1), barAt(t0.Add(5*time.Minute), 2)}, 0)

	if err := s.Require(2); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := s.Require(5)
	var insuff *InsufficientHistoryError
	if !errors.As(err, &insuff) {
		t.Fatalf("expected InsufficientHistoryError, got %v", err)
	}
	if insuff.Need != 5 || insuff.Have != 2 {
		t.Errorf("need/have = %d/%d", insuff.Need, insuff.Have)
	}
}

func TestResampleH1(t *testing.T) {
	t0 := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	var raw []model.Bar
	// Full hour of 12 M5 bars.
	for i := 0; i < 12; i++ {
		raw = append(raw, model.Bar{
			Time: t0.Add(time.Duration(i) * 5 * time.Minute),
			Open: 100 + float64(i), High: 110 + float64(i), Low: 90 + float64(i),
			Close: 105 + float64(i), Volume: 10,
		})
	}
	// Next hour has only 2 bars, below the minimum.
	raw = append(raw,
		barAt(t0.Add(time.Hour), 50),
		barAt(t0.Add(time.Hour+5*time.Minute), 51),
	)

	h1 := ResampleH1(Normalize(model.TimeframeM5, raw, 0))
	if h1.Len() != 1 {
		t.Fatalf("len = %d, want sparse bucket dropped", h1.Len())
	}

	b := h1.Bars[0]
	if !b.Time.Equal(t0) {
		t.Errorf("bucket time = %v, want %v", b.Time, t0)
	}
	if b.Open != 100 {
		t.Errorf("open = %.0f, want first bar's open", b.Open)
	}
	if b.Close != 116 {
		t.Errorf("close = %.0f, want last bar's close", b.Close)
	}
	if b.High != 121 || b.Low != 90 {
		t.Errorf("high/low = %.0f/%.0f, want 121/90", b.High, b.Low)
	}
	if b.Volume != 120 {
		t.Errorf("volume = %.0f, want summed", b.Volume)
	}
}

func TestResampleD1(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	var raw []model.Bar
	for i := 0; i < 15; i++ {
		raw = append(raw, barAt(day.Add(time.Duration(i)*5*time.Minute), float64(100+i)))
	}
	// Second day too thin for a D1 bar.
	for i := 0; i < 5; i++ {
		raw = append(raw, barAt(day.AddDate(0, 0, 1).Add(time.Duration(i)*5*time.Minute), 200))
	}

	d1 := ResampleD1(Normalize(model.TimeframeM5, raw, 0))
	if d1.Len() != 1 {
		t.Fatalf("len = %d, want 1", d1.Len())
	}
	if !d1.Bars[0].Time.Equal(day) {
		t.Errorf("bucket time = %v", d1.Bars[0].Time)
	}
	if d1.Bars[0].Close != 114 {
		t.Errorf("close = %.0f", d1.Bars[0].Close)
	}
}
