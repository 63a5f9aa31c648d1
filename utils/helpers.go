package utils

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strconv"
	"strings"
)

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a stable lowercase identifier from a display name,
// e.g. "Internal Medicine" -> "internal_medicine". Used for block ids so
// that re-importing the same dataset keeps ids unchanged.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugCleaner.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ColorForName returns a visually distinct HSL color derived from the
// name. Deterministic on purpose so inserts are reproducible in tests
// and across restarts.
func ColorForName(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	hue := h.Sum32() % 360
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue)
}

// ParseHourMinute extracts hour and minutes from a time-of-day string.
// Accepts "HH:MM" and longer datetime strings that embed one.
func ParseHourMinute(value string) (int, int, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, 0, fmt.Errorf("empty time value")
	}

	// Datetime forms: take the segment after 'T' or after a space
	if idx := strings.IndexAny(s, "T "); idx >= 0 {
		s = s[idx+1:]
	}
	// Strip trailing zone designators ("Z", "+07:00")
	if idx := strings.IndexAny(s, "Z+"); idx >= 0 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid time value %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minutes in %q", value)
	}
	return hour, minute, nil
}

// IsValidSessionTime reports whether value is a fixed-width "HH:MM"
// time slot. Same-day ordering uses lexicographic compare, which is only
// sound for fixed-width values, so this is enforced wherever session
// times enter the system.
func IsValidSessionTime(value string) bool {
	if len(value) != 5 || value[2] != ':' {
		return false
	}
	_, _, err := ParseHourMinute(value)
	return err == nil
}

// SequentialID builds zero-padded ids like "i001"/"c042" for imported
// rows, matching the convention of previously exported datasets.
func SequentialID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// SanitizeString removes dangerous characters from string
func SanitizeString(input string) string {
	// Remove null bytes and control characters
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}
