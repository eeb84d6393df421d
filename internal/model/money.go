package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cents is an exact fixed-point money amount in hundredths of the account
// currency. All balance arithmetic happens on this type; float64 is only
// ever produced for display.
type Cents int64

// ErrInvalidAmount indicates a malformed or out-of-range decimal amount.
var ErrInvalidAmount = fmt.Errorf("invalid amount")

// ParseCents converts a decimal string to cents with half-up rounding on
// the third decimal place. Accepts both dot and comma separators. Negative
// amounts are rejected; transaction amounts are entered as magnitudes and
// signed by their type.
func ParseCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	// ASCII digits only; the fraction math below indexes raw bytes.
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	if iv > (math.MaxInt64-fracCents)/100 {
		return 0, ErrInvalidAmount
	}

	return Cents(iv*100 + fracCents), nil
}

// String formats the amount with exactly two decimal places.
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
