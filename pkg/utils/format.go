// Package utils provides common utility functions for StockPulse.
package utils

import (
	"fmt"
)

// FormatMarketCap renders a raw market-cap value the way the dashboard
// displays it: trillions, billions or millions with two decimals.
// 19_270_000_000_000 -> "19.27 T".
func FormatMarketCap(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.2f T", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.2f B", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f M", v/1e6)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPct formats a percentage change with an explicit sign.
// 2.45 -> "+2.45%", -1.23 -> "-1.23%".
func FormatPct(pct float64) string {
	if pct >= 0 {
		return fmt.Sprintf("+%.2f%%", pct)
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatVolume formats share volume in compact notation.
func FormatVolume(volume int64) string {
	v := float64(volume)
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2f B", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2f M", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2f K", v/1e3)
	default:
		return fmt.Sprintf("%d", volume)
	}
}

// FormatPrice renders a price with its currency symbol.
func FormatPrice(v float64, currency string) string {
	return currencySymbol(currency) + fmt.Sprintf("%.2f", v)
}

func currencySymbol(code string) string {
	switch code {
	case "INR":
		return "₹"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	case "JPY":
		return "¥"
	default:
		return ""
	}
}
