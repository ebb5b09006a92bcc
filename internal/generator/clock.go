package generator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):?(\d{2})$`)

// NormalizeTime converts "H:MM", "HH:MM" or "HHMM" into zero-padded "HHMM".
// Values that do not match are returned unchanged.
func NormalizeTime(raw string) string {
	trimmed := strings.TrimSpace(raw)
	m := clockPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return raw
	}
	hours, _ := strconv.Atoi(m[1])
	return fmt.Sprintf("%02d%s", hours, m[2])
}

// ParseMinutes returns minutes since midnight for an HHMM (or HH:MM) value.
func ParseMinutes(raw string) (int, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0, false
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	if hours > 24 || minutes > 59 {
		return 0, false
	}
	return hours*60 + minutes, true
}

// FormatMinutes renders minutes since midnight as HHMM.
func FormatMinutes(total int) string {
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d%02d", total/60, total%60)
}

// ValidClock reports whether raw is an HH:MM or HHMM clock time.
func ValidClock(raw string) bool {
	_, ok := ParseMinutes(raw)
	return ok
}
