package calculator

import (
	"math"
	"testing"
)

func TestCalculateVolumeRatio(t *testing.T) {
	// 5 bars averaging 100, then a 250 spike.
	volumes := []float64{100, 100, 100, 100, 100, 250}
	ratio, err := CalculateVolumeRatio(volumes, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ratio-2.5) > 1e-9 {
		t.Errorf("ratio = %.4f, want 2.5", ratio)
	}
}

func TestCalculateVolumeRatio_ZeroAverage(t *testing.T) {
	volumes := []float64{0, 0, 0, 0, 0, 500}
	ratio, err := CalculateVolumeRatio(volumes, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ratio != 1.0 {
		t.Errorf("ratio with zero average = %.4f, want neutral 1.0", ratio)
	}
}

func TestCalculateVolumeRatio_NotEnoughData(t *testing.T) {
	if _, err := CalculateVolumeRatio([]float64{10, 20}, 5); err == nil {
		t.Error("expected error for insufficient data")
	}
}
