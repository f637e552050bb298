package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration string like "15s"
func ParseDuration(d string, fallback time.Duration) time.Duration {
	if d == "" {
		return fallback
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return fallback
	}
	return duration
}

// FormatFloat renders a float with no trailing ".0": 4.0 is "4", 4.5 is
// "4.5". Magnitudes below 1e-4 or from 1e16 up use exponent form, 1e21 is
// "1e+21" and 1e-7 is "1e-07".
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'e', -1, 64)
	if _, exp, ok := strings.Cut(s, "e"); ok {
		if e, err := strconv.Atoi(exp); err == nil && (e < -4 || e >= 16) {
			return s
		}
	}
	return strings.TrimSuffix(strconv.FormatFloat(f, 'f', -1, 64), ".0")
}

// Stringify renders a scalar the way descriptors store it.
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "None"
	case string:
		return val
	case float64:
		return FormatFloat(val)
	case float32:
		return FormatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// IntValue converts a property value to an int. Strings are trimmed and
// parsed as base-10; floats must be integral.
func IntValue(v interface{}) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) {
			return 0, fmt.Errorf("%v is not an integer", val)
		}
		return int(val), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", val)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("cannot use %T as an integer", v)
	}
}
