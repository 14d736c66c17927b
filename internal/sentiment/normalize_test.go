package sentiment

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Hello World", "hello world"},
		{"url", "Check https://example.com now", "check now"},
		{"www url", "visit www.example.com today", "visit today"},
		{"mention", "@analyst tweets about $TSLA", "tweets about tsla"},
		{"hashtag", "#bullish on RELIANCE", "on reliance"},
		{"digits and punctuation", "Q3 2025 results: up 12%!", "q results up"},
		{"whitespace collapse", "too   many    spaces", "too many spaces"},
		{"already clean", "company beats expectations", "company beats expectations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeToEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "!!!", "123 456", "https://x.co", "@user #tag 42!"} {
		if got := Normalize(input); got != "" {
			t.Errorf("Normalize(%q) = %q, want empty", input, got)
		}
	}
}
