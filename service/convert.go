package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numericPattern       = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	numericPrefixPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)
)

// isNumeric reports whether s is a decimal number, optionally surrounded by
// whitespace. Hex, inf and nan notations are rejected.
func isNumeric(s string) bool {
	return numericPattern.MatchString(strings.TrimSpace(s))
}

// toInt converts a loosely typed stored value to an int. Strings are read up to
// the first non numeric character, so "12px" is 12 and "abc" is 0.
func toInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		return t
	case int64:
		return int(t)
	case int32:
		return int(t)
	case uint:
		return int(t)
	case uint64:
		return int(t)
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		prefix := numericPrefixPattern.FindString(strings.TrimLeft(t, " \t\n\r\v\f"))
		if prefix == "" {
			return 0
		}
		f, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0
		}
		return truncate(f)
	}
	return 0
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	if f < math.MinInt32 {
		return math.MinInt32
	}
	return int(f)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	}
	return fmt.Sprint(v)
}
