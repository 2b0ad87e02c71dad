package persistence

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// untitled mirrors stopwatch.DefaultName without importing it.
const untitled = "Untitled"

// MaxTimeMs is the largest time that still fits a time.Duration.
const MaxTimeMs = math.MaxInt64 / int64(time.Millisecond)

// Entry is one persisted record.
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TimeMs int64  `json:"timeMs"`
}

// Snapshot is the ordered list of persisted records.
type Snapshot []Entry

// Encode serializes the snapshot. Empty names are written as "Untitled"
// and negative times as zero.
func Encode(snap Snapshot) ([]byte, error) {
	out := make([]Entry, len(snap))
	for i, e := range snap {
		if strings.TrimSpace(e.Name) == "" {
			e.Name = untitled
		}
		if e.TimeMs < 0 {
			e.TimeMs = 0
		}
		out[i] = e
	}
	return json.Marshal(out)
}

// Decode parses a stored payload. Anything that is not a JSON array decodes
// to an empty snapshot.
//
// Elements are decoded field by field: a missing or mistyped id or name
// leaves the field empty, and a missing, mistyped or negative timeMs
// becomes zero. Fractional times are floored and values beyond MaxTimeMs
// are clamped. An explicitly empty name
// decodes as "Untitled" so only a missing name is left blank.
func Decode(data []byte) (Snapshot, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	snap := make(Snapshot, 0, len(items))
	for _, item := range items {
		snap = append(snap, decodeEntry(item))
	}
	return snap, nil
}

func decodeEntry(raw json.RawMessage) Entry {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Entry{}
	}

	var e Entry
	if v, ok := fields["id"]; ok {
		_ = json.Unmarshal(v, &e.ID)
	}
	if v, ok := fields["name"]; ok {
		var name string
		if err := json.Unmarshal(v, &name); err == nil {
			e.Name = name
			if name == "" {
				e.Name = untitled
			}
		}
	}
	if v, ok := fields["timeMs"]; ok {
		var ms float64
		if err := json.Unmarshal(v, &ms); err == nil && !math.IsNaN(ms) && !math.IsInf(ms, 0) && ms > 0 {
			if ms >= float64(MaxTimeMs) {
				e.TimeMs = MaxTimeMs
			} else {
				e.TimeMs = int64(math.Floor(ms))
			}
		}
	}
	return e
}
