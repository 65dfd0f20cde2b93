package calculator

import (
	"math"
	"testing"
)

func TestCalculateSMA(t *testing.T) {
	tests := []struct {
		name    string
		prices  []float64
		period  int
		want    float64
		wantErr bool
	}{
		{"simple average", []float64{1, 2, 3, 4, 5}, 5, 3, false},
		{"uses trailing window", []float64{100, 1, 2, 3}, 3, 2, false},
		{"period one", []float64{7, 9}, 1, 9, false},
		{"not enough data", []float64{1, 2}, 3, 0, true},
		{"zero period", []float64{1, 2, 3}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateSMA(tt.prices, tt.period)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SMA = %.4f, want %.4f", got, tt.want)
			}
		})
	}
}

func TestCalculateEMA(t *testing.T) {
	// EMA(3) over [1,2,3,4,5]: seed SMA=2, k=0.5
	// then 4*0.5+2*0.5=3, 5*0.5+3*0.5=4
	got, err := CalculateEMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-4.0) > 1e-9 {
		t.Errorf("EMA = %.4f, want 4.0", got)
	}
}

func TestCalculateEMA_FlatSeries(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 2400
	}
	got, err := CalculateEMA(prices, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2400 {
		t.Errorf("EMA of flat series = %.4f, want 2400", got)
	}
}

func TestCalculateEMA_NotEnoughData(t *testing.T) {
	if _, err := CalculateEMA([]float64{1, 2}, 5); err == nil {
		t.Error("expected error for insufficient data")
	}
}
