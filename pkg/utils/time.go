package utils

import "time"

// timestampFormat is the storage representation for entity timestamps.
// Nanosecond precision keeps sub-second ordering stable across round trips.
const timestampFormat = time.RFC3339Nano

// FormatTimestamp renders a timestamp for storage
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampFormat)
}

// ParseTimestamp parses a stored timestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(timestampFormat, s)
}
