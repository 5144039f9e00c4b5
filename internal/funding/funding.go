package funding

import (
	"math"
	"strconv"
	"strings"
)

//suffix multipliers, checked in this fixed order: the first one found wins
var factors = []struct {
	suffix     string
	multiplier float64
}{
	{"K", 1e3},
	{"M", 1e6},
	{"B", 1e9},
}

// Normalize converts a raw funding string like "$12.5M" or "$500K" into an
// amount in base currency units, rounding down. Returns nil when the text
// is empty or does not parse as a number.
func Normalize(raw string) *int64 {
	cleaned := clean(raw)
	if cleaned == "" {
		return nil
	}

	for _, f := range factors {
		if !strings.Contains(cleaned, f.suffix) {
			continue
		}
		value, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, f.suffix, ""), 64)
		if err != nil {
			return nil
		}
		amount := int64(math.Floor(value * f.multiplier))
		return &amount
	}

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return nil
	}
	return &amount
}

// clean strips everything except alphanumerics and the decimal point.
func clean(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}
