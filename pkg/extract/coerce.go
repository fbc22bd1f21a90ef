package extract

import (
	"log/slog"
	"strconv"
	"strings"
)

var cleaner = strings.NewReplacer("%", "", ",", "", "+", "", "$", "", "\u00a0", "", "\u2009", "")

// Cleanup drops display formatting that blocks numeric parsing.
func Cleanup(raw string) string {
	return strings.TrimSpace(cleaner.Replace(raw))
}

// Int converts an extracted value. It returns nil when the value is absent,
// empty, or not an integer after cleanup; nil is never conflated with zero.
// Digit strings beyond the int range also read as nil.
func Int(raw string, ok bool) *int {
	if !ok {
		return nil
	}
	s := Cleanup(raw)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		slog.Debug("extract: not an int", "raw", raw)
		return nil
	}
	return &n
}

// Float is Int for floating point values.
func Float(raw string, ok bool) *float64 {
	if !ok {
		return nil
	}
	s := Cleanup(raw)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		slog.Debug("extract: not a float", "raw", raw)
		return nil
	}
	return &f
}

// IntOrZero is Int with zero standing in for a missing value.
func IntOrZero(raw string, ok bool) int {
	if n := Int(raw, ok); n != nil {
		return *n
	}
	return 0
}
