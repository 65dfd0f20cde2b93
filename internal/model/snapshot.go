package model

import "time"

// Source labels where a snapshot (and any signal derived from it) came from.
type Source string

const (
	SourceLive       Source = "live"
	SourceSynthetic  Source = "synthetic"
	SourceStaleCache Source = "stale-cache"
)

// Account holds the broker account metrics carried in the exporter payload.
type Account struct {
	Equity     float64 `json:"equity"`
	Balance    float64 `json:"balance"`
	FreeMargin float64 `json:"free_margin"`
	Currency   string  `json:"currency"`
}

// Broker identifies the upstream broker/terminal that produced the data.
type Broker struct {
	Name   string `json:"name"`
	Server string `json:"server"`
}

// Snapshot is one complete point-in-time market-data payload covering
// multiple timeframes. Produced atomically by the reader or the synthetic
// generator and treated as an immutable value downstream.
type Snapshot struct {
	Symbol     string
	CapturedAt time.Time
	Bid        float64
	Ask        float64
	Spread     float64
	DailyHigh  float64
	DailyLow   float64
	DailyOpen  float64
	TickVolume float64
	Bars       map[Timeframe][]Bar
	Account    Account
	Broker     Broker
	Source     Source
}
