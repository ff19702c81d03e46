package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDecimal parses a decimal-string price (e.g. "4.99", "4,99", "12")
// into centavos. Prices travel through the system as strings and are only
// converted here, at render time, to avoid binary-float rounding drift.
func ParseDecimal(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	// Accept comma as the decimal separator (common in pt-BR input).
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return 0, fmt.Errorf("invalid price %q", s)
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	// Normalize the fraction to exactly two digits.
	switch {
	case len(fracPart) == 0:
		fracPart = "00"
	case len(fracPart) == 1:
		fracPart = fracPart + "0"
	case len(fracPart) > 2:
		fracPart = fracPart[:2]
	}

	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	cents, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return total, nil
}

// FormatPrice formats centavos as a display price with exactly two
// fractional digits and a comma separator, e.g. 499 -> "4,99".
func FormatPrice(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := fmt.Sprintf("%d,%02d", cents/100, cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// PriceParts splits centavos into the integer and two-digit fraction
// strings, for the large-unit/small-cents price card rendering.
func PriceParts(cents int64) (units string, frac string) {
	if cents < 0 {
		cents = -cents
	}
	return strconv.FormatInt(cents/100, 10), fmt.Sprintf("%02d", cents%100)
}

// DiscountPercent computes the discount badge percentage,
// round((old-new)/old*100), in integer arithmetic. Returns 0 when there is
// no positive discount.
func DiscountPercent(oldCents, newCents int64) int {
	if oldCents <= 0 || newCents < 0 || oldCents <= newCents {
		return 0
	}
	diff := oldCents - newCents
	// Round half up.
	return int((diff*100 + oldCents/2) / oldCents)
}
