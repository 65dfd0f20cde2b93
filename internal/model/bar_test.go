package model

import (
	"testing"
	"time"
)

func TestBarValidate(t *testing.T) {
	at := time.Date(2026, 3, 10, 14, 25, 0, 0, time.UTC)
	tests := []struct {
		name    string
		bar     Bar
		wantErr bool
	}{
		{"valid", Bar{Time: at, Open: 100, High: 102, Low: 99, Close: 101, Volume: 10}, false},
		{"flat bar", Bar{Time: at, Open: 100, High: 100, Low: 100, Close: 100}, false},
		{"zero timestamp", Bar{Open: 100, High: 102, Low: 99, Close: 101}, true},
		{"high below close", Bar{Time: at, Open: 100, High: 100.5, Low: 99, Close: 101}, true},
		{"low above open", Bar{Time: at, Open: 100, High: 102, Low: 100.5, Close: 101}, true},
		{"negative volume", Bar{Time: at, Open: 100, High: 102, Low: 99, Close: 101, Volume: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bar.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBarAnatomy(t *testing.T) {
	b := Bar{Time: time.Now(), Open: 101, High: 105, Low: 98, Close: 100, Volume: 1}
	if !b.Bearish() || b.Bullish() {
		t.Error("close below open must read bearish")
	}
	if b.Body() != 1 {
		t.Errorf("body = %.2f, want 1", b.Body())
	}
	if b.Range() != 7 {
		t.Errorf("range = %.2f, want 7", b.Range())
	}
	if b.UpperWick() != 4 {
		t.Errorf("upper wick = %.2f, want 4", b.UpperWick())
	}
	if b.LowerWick() != 2 {
		t.Errorf("lower wick = %.2f, want 2", b.LowerWick())
	}
}

func TestTimeframeDuration(t *testing.T) {
	if TimeframeM5.Duration() != 5*time.Minute {
		t.Error("M5 duration")
	}
	if TimeframeH1.Duration() != time.Hour {
		t.Error("H1 duration")
	}
	if TimeframeD1.Duration() != 24*time.Hour {
		t.Error("D1 duration")
	}
	if Timeframe("W1").Duration() != 0 {
		t.Error("unknown timeframe must report zero")
	}
}
