// Package formatting provides human-readable formatting and parsing utilities
// for monetary amounts, percentages, byte sizes, and loosely structured JSON.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotAvailable is the display sentinel for absent or unparsable values.
const NotAvailable = "N/A"

// ParseAmount parses a monetary amount from a free-text survey answer.
// Leading currency symbols, commas, and surrounding whitespace are tolerated.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return v, nil
}

// FormatCurrency renders an amount as a dollar string with thousands
// separators and two decimal places, e.g. 1250.5 -> "$1,250.50".
func FormatCurrency(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	whole := int64(amount)
	cents := int64(math.Round((amount - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, b.String(), cents)
}

// FormatRating renders a 1-10 rating as "7/10 (70%)".
func FormatRating(rating int) string {
	return fmt.Sprintf("%d/10 (%d%%)", rating, rating*10)
}
