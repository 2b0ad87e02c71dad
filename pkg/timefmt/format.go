package timefmt

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is returned when a duration string does not match the
// SS, MM:SS or HH:MM:SS grammar.
var ErrInvalidDuration = errors.New("invalid duration")

// Hint is the user-facing message shown next to a rejected duration.
const Hint = "Use formats like 90, 2:03, or 1:02:03."

var durationPattern = regexp.MustCompile(`^\d+(?::\d+){0,2}$`)

// maxSeconds keeps the result representable as a time.Duration.
const maxSeconds uint64 = math.MaxInt64 / uint64(time.Second)

// Format renders milliseconds as HH:MM:SS.
func Format(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	totalSeconds := ms / 1000
	seconds := totalSeconds % 60
	totalMinutes := totalSeconds / 60
	minutes := totalMinutes % 60
	hours := totalMinutes / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatDuration renders d as HH:MM:SS.
func FormatDuration(d time.Duration) string {
	return Format(d.Milliseconds())
}

// Parse converts a user-typed duration into milliseconds.
func Parse(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !durationPattern.MatchString(trimmed) {
		return 0, ErrInvalidDuration
	}

	groups := strings.Split(trimmed, ":")
	values := make([]uint64, len(groups))
	for i, g := range groups {
		v, err := strconv.ParseUint(g, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, g)
		}
		values[i] = v
	}

	var hours, minutes, seconds uint64
	switch len(values) {
	case 1:
		seconds = values[0]
	case 2:
		minutes, seconds = values[0], values[1]
	case 3:
		hours, minutes, seconds = values[0], values[1], values[2]
	}

	if hours > maxSeconds/3600 || minutes > maxSeconds/60 || seconds > maxSeconds {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidDuration)
	}
	total := hours*3600 + minutes*60 + seconds
	if total > maxSeconds {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidDuration)
	}
	return int64(total) * 1000, nil
}

// ParseDuration is Parse returning a time.Duration.
func ParseDuration(raw string) (time.Duration, error) {
	ms, err := Parse(raw)
	if err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}
