package log

import (
	"bytes"
	"testing"
	"time"
)

func TestEncodeDecodeEvent(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)

	tests := []struct {
		name  string
		event Event
	}{
		{
			name: "action",
			event: Event{
				Timestamp: ts,
				Category:  CategoryAction,
				Action:    "toggle",
				RecordID:  "sw-1",
				ElapsedMs: 123456,
				Running:   true,
			},
		},
		{
			name: "prompt",
			event: Event{
				Timestamp: ts,
				Category:  CategoryPrompt,
				Action:    "remove",
				RecordID:  "sw-2",
				Prompt: &PromptEvent{
					Message:      "Remove this stopwatch? This cannot be undone.",
					ConfirmLabel: "Remove",
					Outcome:      "cancelled",
					Queued:       1,
				},
			},
		},
		{
			name: "persist failure",
			event: Event{
				Timestamp: ts,
				Category:  CategoryPersist,
				Persist: &PersistEvent{
					Op:      PersistSave,
					Records: 3,
					Reason:  "hidden",
					Err:     "disk full",
				},
			},
		},
		{
			name: "loop",
			event: Event{
				Timestamp: ts,
				Category:  CategoryLoop,
				Loop:      &LoopEvent{Active: false, Frames: 42},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(tt.event)
			if err != nil {
				t.Fatalf("EncodeEvent failed: %v", err)
			}

			got, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}

			if !got.Timestamp.Equal(tt.event.Timestamp) {
				t.Errorf("Timestamp = %v, want %v", got.Timestamp, tt.event.Timestamp)
			}
			if got.Category != tt.event.Category {
				t.Errorf("Category = %v, want %v", got.Category, tt.event.Category)
			}
			if got.Action != tt.event.Action {
				t.Errorf("Action = %q, want %q", got.Action, tt.event.Action)
			}
			if got.RecordID != tt.event.RecordID || got.ElapsedMs != tt.event.ElapsedMs || got.Running != tt.event.Running {
				t.Errorf("record fields = (%q, %d, %v), want (%q, %d, %v)",
					got.RecordID, got.ElapsedMs, got.Running,
					tt.event.RecordID, tt.event.ElapsedMs, tt.event.Running)
			}
			if (got.Prompt == nil) != (tt.event.Prompt == nil) {
				t.Fatalf("Prompt presence mismatch")
			}
			if got.Prompt != nil && *got.Prompt != *tt.event.Prompt {
				t.Errorf("Prompt = %+v, want %+v", *got.Prompt, *tt.event.Prompt)
			}
			if got.Persist != nil && *got.Persist != *tt.event.Persist {
				t.Errorf("Persist = %+v, want %+v", *got.Persist, *tt.event.Persist)
			}
			if got.Loop != nil && *got.Loop != *tt.event.Loop {
				t.Errorf("Loop = %+v, want %+v", *got.Loop, *tt.event.Loop)
			}
		})
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	ev := Event{
		Timestamp: time.Unix(0, 0).UTC(),
		Category:  CategoryAction,
		Action:    "add",
		RecordID:  "x",
	}
	a, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	b, _ := EncodeEvent(ev)
	if !bytes.Equal(a, b) {
		t.Error("encoding the same event twice produced different bytes")
	}
}

func TestStreamEncoderDecoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		if err := enc.Encode(Event{Category: CategoryLoop, Loop: &LoopEvent{Frames: uint64(i)}}); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}

	dec := NewDecoder(&buf)
	for i := 0; i < 3; i++ {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("Decode %d failed: %v", i, err)
		}
		if ev.Loop == nil || ev.Loop.Frames != uint64(i) {
			t.Errorf("event %d Loop = %+v, want Frames=%d", i, ev.Loop, i)
		}
	}
}
