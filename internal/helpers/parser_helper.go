package helpers

import (
	"math"
	"strconv"
	"strings"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// NormalizeEmail is applied to every buyer email before it is stored or queried.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToMinorUnits converts a rupee price to paise, rounding half away from zero.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}
