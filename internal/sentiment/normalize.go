package sentiment

import (
	"regexp"
	"strings"
)

// Compiled once; Normalize runs on every scored item.
var (
	reURL        = regexp.MustCompile(`http\S+|www\S+|https\S+`)
	reMention    = regexp.MustCompile(`@\w+`)
	reHashtag    = regexp.MustCompile(`#\w+`)
	reNonWord    = regexp.MustCompile(`[^\w\s]`)
	reDigits     = regexp.MustCompile(`\d+`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// Normalize prepares raw text for scoring: lowercase, strip URLs, @mentions
// and #hashtags, drop everything that is not a word character or whitespace,
// drop digit runs, collapse whitespace, trim. The order matters: hashtags
// must go before punctuation stripping or "#fraud" would survive as "fraud".
// An empty result is a valid outcome, not an error.
func Normalize(raw string) string {
	s := strings.ToLower(raw)
	s = reURL.ReplaceAllString(s, "")
	s = reMention.ReplaceAllString(s, "")
	s = reHashtag.ReplaceAllString(s, "")
	s = reNonWord.ReplaceAllString(s, "")
	s = reDigits.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
