package timeutil

import (
	"fmt"
	"time"
)

// ParseRFC3339 parses service timestamps, accepting both nanosecond and
// second precision.
func ParseRFC3339(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
