package config

// Curated dashboard bootstrap data: ticker lists per market, the period
// selector, lookback options and chart types. Served to the frontend by
// GET /api/v1/config.

// Market keys, in display order.
var Markets = []string{"India (NSE)", "India (BSE)", "US", "Indices"}

// DefaultTickers lists the curated symbols offered per market.
var DefaultTickers = map[string][]string{
	"India (NSE)": {
		"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
		"HINDUNILVR.NS", "SBIN.NS", "AXISBANK.NS", "BAJFINANCE.NS", "KOTAKBANK.NS",
	},
	"India (BSE)": {
		"RELIANCE.BO", "TCS.BO", "HDFCBANK.BO", "INFY.BO", "ICICIBANK.BO",
		"HINDUNILVR.BO", "SBIN.BO", "AXISBANK.BO", "BAJFINANCE.BO", "KOTAKBANK.BO",
	},
	"US": {
		"AAPL", "MSFT", "AMZN", "GOOGL", "META",
		"TSLA", "NVDA", "BRK-B", "JPM", "JNJ",
	},
	"Indices": {
		"^NSEI", "^BSESN", "^GSPC", "^DJI", "^IXIC",
		"^FTSE", "^N225", "^HSI", "^GDAXI", "^FCHI",
	},
}

// LookbackOptions are the sentiment lookback windows offered, in days.
var LookbackOptions = []int{1, 3, 7, 14, 30}

// ChartTypes are the price chart renderings the frontend offers.
var ChartTypes = []string{"Candlestick", "Line", "OHLC", "Area"}
