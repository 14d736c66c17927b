package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30).
var IST *time.Location

// ET is the US Eastern Time location.
var ET *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
	ET, err = time.LoadLocation("America/New_York")
	if err != nil {
		ET = time.FixedZone("EST", -5*60*60)
	}
}

// timestampLayouts are the string shapes upstream feeds are known to use.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseTimestamp normalizes the two upstream timestamp shapes, epoch seconds
// or an ISO-like string, to UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// FromEpoch converts epoch seconds to UTC.
func FromEpoch(secs int64) time.Time {
	return time.Unix(secs, 0).UTC()
}

// MarketStatus returns the current session status for an exchange.
func MarketStatus(exchange string) string {
	return MarketStatusAt(exchange, time.Now())
}

// MarketStatusAt returns the session status for an exchange at a given time.
// NSE and BSE trade 9:15-15:30 IST; US exchanges trade 9:30-16:00 ET.
// Index symbols follow their home exchange; unknown exchanges report UNKNOWN.
func MarketStatusAt(exchange string, t time.Time) string {
	switch strings.ToUpper(exchange) {
	case "NSE", "BSE":
		return sessionStatus(t.In(IST), 9, 15, 15, 30, nseHoliday(t))
	case "US", "NASDAQ", "NYSE":
		return sessionStatus(t.In(ET), 9, 30, 16, 0, "")
	default:
		return "UNKNOWN"
	}
}

func sessionStatus(t time.Time, openH, openM, closeH, closeM int, holiday string) string {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return "CLOSED (Weekend)"
	}
	if holiday != "" {
		return "CLOSED (" + holiday + ")"
	}
	open := time.Date(t.Year(), t.Month(), t.Day(), openH, openM, 0, 0, t.Location())
	close := time.Date(t.Year(), t.Month(), t.Day(), closeH, closeM, 0, 0, t.Location())
	if t.Before(open) {
		return "PRE-MARKET"
	}
	if !t.After(close) {
		return "OPEN"
	}
	return "CLOSED"
}

func nseHoliday(t time.Time) string {
	return nseHolidays2026[t.In(IST).Format("2006-01-02")]
}

// NSE trading holidays for 2026 (update annually).
// Source: NSE India circular.
var nseHolidays2026 = map[string]string{
	"2026-01-26": "Republic Day",
	"2026-02-17": "Mahashivratri",
	"2026-03-10": "Holi",
	"2026-03-30": "Id-ul-Fitr (Ramadan)",
	"2026-04-02": "Ram Navami",
	"2026-04-03": "Good Friday",
	"2026-04-14": "Dr. Ambedkar Jayanti",
	"2026-05-01": "Maharashtra Day",
	"2026-05-25": "Buddha Purnima",
	"2026-06-05": "Id-ul-Zuha (Bakri Id)",
	"2026-07-06": "Muharram",
	"2026-08-15": "Independence Day",
	"2026-08-18": "Parsi New Year",
	"2026-09-04": "Milad-un-Nabi",
	"2026-10-02": "Mahatma Gandhi Jayanti",
	"2026-10-20": "Dussehra",
	"2026-11-09": "Diwali (Laxmi Pujan)",
	"2026-11-10": "Diwali (Balipratipada)",
	"2026-11-30": "Guru Nanak Jayanti",
	"2026-12-25": "Christmas",
}

// FormatDateUTC formats a time as "2006-01-02" in UTC.
func FormatDateUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// FormatDateTimeUTC formats a time as "2006-01-02 15:04:05 UTC".
func FormatDateTimeUTC(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 UTC")
}
