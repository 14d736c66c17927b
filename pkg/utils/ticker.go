package utils

import (
	"strings"
)

// Display names for the index symbols offered by the dashboard.
var indexNames = map[string]string{
	"^NSEI":  "NIFTY 50",
	"^BSESN": "SENSEX",
	"^GSPC":  "S&P 500",
	"^DJI":   "Dow Jones Industrial Average",
	"^IXIC":  "NASDAQ Composite",
	"^FTSE":  "FTSE 100",
	"^N225":  "Nikkei 225",
	"^HSI":   "Hang Seng Index",
	"^GDAXI": "DAX",
	"^FCHI":  "CAC 40",
}

// FormatTicker formats a raw ticker for the market-data API. Symbols that
// already carry an exchange suffix (.NS, .BO) or an index prefix (^) pass
// through unchanged; otherwise the exchange decides the suffix. US tickers
// take no suffix.
func FormatTicker(ticker, exchange string) string {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	ticker = strings.TrimPrefix(ticker, "$")

	if strings.HasSuffix(ticker, ".NS") || strings.HasSuffix(ticker, ".BO") || strings.HasPrefix(ticker, "^") {
		return ticker
	}

	switch strings.ToUpper(exchange) {
	case "NSE":
		return ticker + ".NS"
	case "BSE":
		return ticker + ".BO"
	}
	return ticker
}

// BaseTicker strips the exchange suffix from a qualified symbol.
func BaseTicker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	symbol = strings.TrimSuffix(symbol, ".NS")
	symbol = strings.TrimSuffix(symbol, ".BO")
	return symbol
}

// ExchangeOf infers the exchange from a symbol's suffix.
func ExchangeOf(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	switch {
	case strings.HasPrefix(symbol, "^"):
		return "INDEX"
	case strings.HasSuffix(symbol, ".NS"):
		return "NSE"
	case strings.HasSuffix(symbol, ".BO"):
		return "BSE"
	default:
		return "US"
	}
}

// IsIndex reports whether the symbol is an index rather than a stock.
func IsIndex(symbol string) bool {
	return strings.HasPrefix(strings.TrimSpace(symbol), "^")
}

// IndexName returns the display name for a known index symbol, or the symbol
// itself when unknown.
func IndexName(symbol string) string {
	if name, ok := indexNames[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return name
	}
	return symbol
}

// HashtagTicker renders a symbol as a hashtag-safe tag: exchange suffix and
// index prefix dropped, non-alphanumeric characters removed.
// "RELIANCE.NS" -> "RELIANCE", "BRK-B" -> "BRKB", "^NSEI" -> "NSEI".
func HashtagTicker(symbol string) string {
	base := strings.TrimPrefix(BaseTicker(symbol), "^")
	var b strings.Builder
	for _, r := range base {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
