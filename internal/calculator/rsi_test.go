package calculator

import "testing"

func TestCalculateRSI_MonotonicRise(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("RSI of monotonic rise = %.2f, want 100", rsi)
	}
}

func TestCalculateRSI_MonotonicFall(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 0 {
		t.Errorf("RSI of monotonic fall = %.2f, want 0", rsi)
	}
}

func TestCalculateRSI_FlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 2400
	}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50 {
		t.Errorf("RSI of flat series = %.2f, want neutral 50", rsi)
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	rsi, err := CalculateRSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50 {
		t.Errorf("RSI with insufficient data = %.2f, want default 50", rsi)
	}
}

func TestCalculateRSI_Bounds(t *testing.T) {
	closes := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1,
		45.9, 46.3, 46.8, 46.4, 46.2, 45.6, 46.3, 46.2, 46.0, 46.3}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi <= 0 || rsi >= 100 {
		t.Errorf("RSI = %.2f, want inside (0,100)", rsi)
	}
	if rsi < 50 {
		t.Errorf("RSI = %.2f, want above 50 for a net-rising series", rsi)
	}
}
