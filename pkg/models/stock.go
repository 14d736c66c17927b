// Package models defines the core data structures used throughout StockPulse.
package models

import "time"

// Quote represents a snapshot stock quote.
type Quote struct {
	Ticker     string    `json:"ticker"`      // e.g., "RELIANCE"
	Symbol     string    `json:"symbol"`      // exchange-qualified, e.g., "RELIANCE.NS"
	Name       string    `json:"name"`        // e.g., "Reliance Industries Limited"
	Exchange   string    `json:"exchange"`    // "NSE", "BSE", "NASDAQ", ...
	Currency   string    `json:"currency"`    // "INR", "USD"
	LastPrice  float64   `json:"last_price"`
	Change     float64   `json:"change"`
	ChangePct  float64   `json:"change_pct"`
	Open       float64   `json:"open"`
	High       float64   `json:"high"`
	Low        float64   `json:"low"`
	PrevClose  float64   `json:"prev_close"`
	Volume     int64     `json:"volume"`
	MarketCap  float64   `json:"market_cap,omitempty"` // raw value, not formatted
	WeekHigh52 float64   `json:"week_high_52,omitempty"`
	WeekLow52  float64   `json:"week_low_52,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// OHLCV represents a single candlestick bar of price data.
type OHLCV struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// PriceSeries is a period of OHLCV bars for one ticker, as consumed by the
// dashboard chart views.
type PriceSeries struct {
	Ticker    string    `json:"ticker"`
	Period    string    `json:"period"`   // dashboard period label, e.g., "1M"
	Interval  string    `json:"interval"` // bar interval, e.g., "1d"
	Candles   []OHLCV   `json:"candles"`
	FetchedAt time.Time `json:"fetched_at"`
}

// StockInfo holds company metadata for the info card.
type StockInfo struct {
	Ticker        string  `json:"ticker"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Exchange      string  `json:"exchange"`
	Currency      string  `json:"currency,omitempty"`
	Sector        string  `json:"sector,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Website       string  `json:"website,omitempty"`
	Country       string  `json:"country,omitempty"`
	Summary       string  `json:"summary,omitempty"`
	MarketCap     float64 `json:"market_cap,omitempty"`
	PERatio       float64 `json:"pe_ratio,omitempty"`
	DividendYield float64 `json:"dividend_yield,omitempty"`
	Employees     int     `json:"employees,omitempty"`
}

// SearchResult is one symbol-lookup match.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"` // "EQUITY", "INDEX", ...
}
