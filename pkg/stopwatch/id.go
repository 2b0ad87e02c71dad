package stopwatch

import (
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator produces unique record identifiers.
type IDGenerator func() string

// UUIDv7 returns a generator of time-sortable RFC 9562 UUIDs.
func UUIDv7() IDGenerator {
	return func() string {
		id, err := uuid.NewV7()
		if err != nil {
			return uuid.NewString()
		}
		return id.String()
	}
}

// Sequence returns a generator producing prefix-1, prefix-2, ...
// Intended for tests and deterministic fixtures.
func Sequence(prefix string) IDGenerator {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
