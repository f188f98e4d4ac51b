package common

import (
	"math"
	"strconv"
	"strings"
)

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// FormatCoord renders a coordinate with at most six decimals and no trailing zeros.
func FormatCoord(v float64) string {
	return strconv.FormatFloat(Round(v, 6), 'f', -1, 64)
}

// IsTruthy reports whether s is one of the usual "on" spellings.
func IsTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
