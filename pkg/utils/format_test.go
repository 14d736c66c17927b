package utils

import "testing"

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{19_270_000_000_000, "19.27 T"},
		{2_500_000_000_000, "2.50 T"},
		{2_500_000_000, "2.50 B"},
		{750_000_000, "750.00 M"},
		{5000, "5000.00"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatMarketCap(tt.input)
			if result != tt.expected {
				t.Errorf("FormatMarketCap(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatPct(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{2.45, "+2.45%"},
		{-1.23, "-1.23%"},
		{0, "+0.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatPct(tt.input)
			if result != tt.expected {
				t.Errorf("FormatPct(%v) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatVolume(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{1_500_000_000, "1.50 B"},
		{2_500_000, "2.50 M"},
		{12_000, "12.00 K"},
		{999, "999"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatVolume(tt.input)
			if result != tt.expected {
				t.Errorf("FormatVolume(%d) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value    float64
		currency string
		expected string
	}{
		{1234.5, "INR", "₹1234.50"},
		{99.99, "USD", "$99.99"},
		{50, "EUR", "€50.00"},
		{10, "XYZ", "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := FormatPrice(tt.value, tt.currency)
			if result != tt.expected {
				t.Errorf("FormatPrice(%v, %q) = %q, want %q", tt.value, tt.currency, result, tt.expected)
			}
		})
	}
}
