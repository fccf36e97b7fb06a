package feed

import (
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

const (
	maxIntegerDigits  = 8
	maxFractionDigits = 4
	// 10^77 is the largest power of ten a 256-bit integer holds.
	maxDecimals = 77
)

// FormatUnits renders an integer amount of base units (e.g. wei) as a token
// amount with the given decimals. Integer parts longer than eight digits are cut
// with "..." and the fraction keeps at most four digits.
func FormatUnits(value string, decimals uint8) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "0", nil
	}

	if decimals > maxDecimals {
		return "", fmt.Errorf("decimals %d out of range", decimals)
	}

	amount, err := uint256.FromDecimal(value)
	if err != nil {
		return "", fmt.Errorf("parse amount %q: %w", value, err)
	}

	integer, fraction := amount.ToBig().String(), ""
	if decimals > 0 {
		unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(decimals)))
		quo, rem := new(uint256.Int).DivMod(amount, unit, new(uint256.Int))
		integer = quo.ToBig().String()
		digits := rem.ToBig().String()
		fraction = strings.Repeat("0", int(decimals)-len(digits)) + digits
		fraction = strings.TrimRight(fraction, "0")
	}

	if len(integer) > maxIntegerDigits {
		return integer[:maxIntegerDigits] + "...", nil
	}
	if len(fraction) > maxFractionDigits {
		fraction = fraction[:maxFractionDigits]
	}
	if fraction == "" {
		return integer, nil
	}
	return integer + "." + fraction, nil
}

// ShortHash keeps the first and last six characters of a hash.
func ShortHash(hash string) string {
	return shorten(hash, 6, 6)
}

// ShortAddress keeps the first six and the last four characters of an address.
func ShortAddress(addr string) string {
	return shorten(addr, 6, 4)
}

func shorten(s string, head, tail int) string {
	if len(s) <= head+tail {
		return s
	}
	return s[:head] + "..." + s[len(s)-tail:]
}
