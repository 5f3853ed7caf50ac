package zip321

import (
	"fmt"
	"strconv"
	"strings"
)

// Zatoshis is an amount in the smallest ZEC unit.
type Zatoshis uint64

const (
	// ZatoshisPerZEC is the number of zatoshis in one ZEC.
	ZatoshisPerZEC = 100_000_000
	// MaxMoney is the total ZEC supply in zatoshis.
	MaxMoney Zatoshis = 21_000_000 * ZatoshisPerZEC

	maxDecimals = 8
)

// ParseAmount parses a decimal ZEC amount such as "1", "0.5" or
// "12.00000001". At most eight decimal places are accepted and the value
// may not exceed MaxMoney.
func ParseAmount(s string) (Zatoshis, error) {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !isDigits(whole) || (hasFrac && !isDigits(frac)) {
		return 0, fmt.Errorf("amount %q is not a decimal number", s)
	}
	if len(frac) > maxDecimals {
		return 0, fmt.Errorf("amount %q has more than %d decimal places", s, maxDecimals)
	}
	if len(whole) > 8 {
		return 0, fmt.Errorf("amount %q exceeds the maximum supply", s)
	}

	w, err := strconv.ParseUint(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	var f uint64
	if hasFrac {
		padded := frac + strings.Repeat("0", maxDecimals-len(frac))
		if f, err = strconv.ParseUint(padded, 10, 64); err != nil {
			return 0, fmt.Errorf("amount %q: %w", s, err)
		}
	}

	z := Zatoshis(w*ZatoshisPerZEC + f)
	if z > MaxMoney {
		return 0, fmt.Errorf("amount %q exceeds the maximum supply", s)
	}
	return z, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats z as decimal ZEC without trailing zeros.
func (z Zatoshis) String() string {
	whole, frac := uint64(z)/ZatoshisPerZEC, uint64(z)%ZatoshisPerZEC
	if frac == 0 {
		return strconv.FormatUint(whole, 10)
	}
	return strings.TrimRight(fmt.Sprintf("%d.%08d", whole, frac), "0")
}
