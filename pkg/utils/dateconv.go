package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/ncruces/go-strftime"
)

// millisPattern matches a value that is very likely a timestamp in milliseconds.
// YouTrack stores every date field that way.
var millisPattern = regexp.MustCompile(`^\d{13}$`)

// IsMillisTimestamp reports whether value is a 13 digit decimal string
func IsMillisTimestamp(value string) bool {
	return millisPattern.MatchString(value)
}

// ParseMillis converts a millisecond Unix timestamp string to a time in loc.
// A nil loc means UTC.
func ParseMillis(value string, loc *time.Location) (time.Time, error) {
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp: %s", value)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.UnixMilli(ms).In(loc), nil
}

// FormatMillis formats a millisecond Unix timestamp with a strftime pattern.
// Examples with pattern "%Y-%m-%d":
//
//	1700000000000 -> 2023-11-14
//	0000000000000 -> 1970-01-01
func FormatMillis(value, pattern string, loc *time.Location) (string, error) {
	t, err := ParseMillis(value, loc)
	if err != nil {
		return "", err
	}
	return strftime.Format(pattern, t), nil
}

// FormatDateValue returns value formatted as a date when it looks like a
// millisecond timestamp, and ok=false otherwise.
func FormatDateValue(value, pattern string, loc *time.Location) (string, bool) {
	if !IsMillisTimestamp(value) {
		return "", false
	}
	formatted, err := FormatMillis(value, pattern, loc)
	if err != nil {
		return "", false
	}
	return formatted, true
}
