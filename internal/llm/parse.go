package llm

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

var (
	numberRegex    = regexp.MustCompile(`\d+(?:\.\d+)?`)
	currencyWords  = []string{"원", "달러", "엔", "유로", "동", "krw", "usd", "jpy", "eur", "vnd", "won", "dollars", "dollar"}
	errNoAmount    = errors.New("no numeric amount in reply")
	errNotPositive = errors.New("amount must be positive")
)

// ExtractJSON slices the first JSON object out of a model response, tolerating
// markdown code fences and prose around it.
func ExtractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

// ParseAmount reads a user-typed amount, stripping thousands separators and
// currency words ("50,000원" -> 50000). Anything that does not yield exactly
// one positive number is a parse failure.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.ReplaceAll(s, ",", "")
	for _, w := range currencyWords {
		s = strings.ReplaceAll(s, w, "")
	}
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		// Leftover letters mean unconverted scale words ("5만원" is 50000,
		// not 5); a bare digit run taken out of those would be wrong.
		for _, r := range s {
			if unicode.IsLetter(r) {
				return decimal.Decimal{}, errNoAmount
			}
		}
		matches := numberRegex.FindAllString(s, -1)
		if len(matches) != 1 {
			return decimal.Decimal{}, errNoAmount
		}
		d, err = decimal.NewFromString(matches[0])
		if err != nil {
			return decimal.Decimal{}, errNoAmount
		}
	}
	if !d.IsPositive() {
		return decimal.Decimal{}, errNotPositive
	}
	return d, nil
}
