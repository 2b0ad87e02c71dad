package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/multiwatch/multiwatch-go/pkg/clock"
	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/persistence"
	"github.com/multiwatch/multiwatch-go/pkg/stopwatch"
)

func newTestTUI(t *testing.T) (*tuiModel, *clock.Manual, *persistence.MemoryKV) {
	t.Helper()
	clk := clock.NewManual(time.Minute)
	kv := persistence.NewMemoryKV()
	m := newTUIModel(collection.Config{
		Clock: clk,
		Store: persistence.NewStore(kv),
		NewID: stopwatch.Sequence("sw"),
	}, 50*time.Millisecond)
	return m, clk, kv
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *tuiModel, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestTUIToggleAndTick(t *testing.T) {
	m, clk, _ := newTestTUI(t)

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.view.Records[0].Running {
		t.Fatal("space did not start the selected stopwatch")
	}
	if !m.view.LoopActive {
		t.Error("LoopActive = false while a stopwatch runs")
	}

	clk.Advance(5 * time.Second)
	press(m, tickMsg(time.Now()))
	if got := m.view.Records[0].Elapsed; got != "00:00:05" {
		t.Errorf("Elapsed after tick = %q, want 00:00:05", got)
	}
	if !strings.Contains(m.View(), "[Pause]") {
		t.Error("View() does not show the Pause label")
	}

	press(m, keys("s"))
	if m.view.Records[0].Running {
		t.Error("s did not pause the stopwatch")
	}
	if m.c.LoopActive() {
		t.Error("loop still active with nothing running")
	}
}

func TestTUITicksOnlyWhileRunning(t *testing.T) {
	m, _, _ := newTestTUI(t)

	if cmd := m.Init(); cmd != nil {
		t.Error("Init scheduled a tick with nothing running")
	}
	for i := 0; i < 3; i++ {
		if _, cmd := m.Update(tickMsg(time.Now())); cmd != nil {
			t.Fatalf("idle tick %d scheduled another tick", i)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if cmd == nil {
		t.Fatal("starting a stopwatch did not schedule a tick")
	}
	if _, cmd := m.Update(keys("j")); cmd != nil {
		t.Error("a second tick was scheduled while one is pending")
	}
	if _, cmd := m.Update(tickMsg(time.Now())); cmd == nil {
		t.Error("tick while running did not schedule the next one")
	}

	press(m, keys("s"))
	if _, cmd := m.Update(tickMsg(time.Now())); cmd != nil {
		t.Error("tick after pausing scheduled another tick")
	}
	if m.frames.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0 after pausing", m.frames.Pending())
	}
}

func TestTUIAddMovesCursorToNewest(t *testing.T) {
	m, _, _ := newTestTUI(t)

	press(m, keys("j"), keys("a"))
	if len(m.view.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(m.view.Records))
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}

	press(m, keys("j"), keys("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clamped to 1", m.cursor)
	}
}

func TestTUIRemoveConfirmation(t *testing.T) {
	tests := []struct {
		name     string
		answer   tea.Msg
		wantLeft int
	}{
		{"confirm", keys("y"), 0},
		{"cancel", keys("n"), 1},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, 1},
		{"click outside", tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, _ := newTestTUI(t)

			press(m, keys("x"))
			if !m.view.PromptOpen() {
				t.Fatal("x did not open a prompt")
			}
			if !strings.Contains(m.View(), "Remove this stopwatch?") {
				t.Error("View() does not show the prompt")
			}

			// Keys other than the answers are ignored while the prompt is open.
			press(m, keys("a"))
			if len(m.view.Records) != 1 {
				t.Fatal("add went through while the prompt was open")
			}

			press(m, tt.answer)
			if m.view.PromptOpen() {
				t.Fatal("prompt still open")
			}
			if len(m.view.Records) != tt.wantLeft {
				t.Errorf("len(Records) = %d, want %d", len(m.view.Records), tt.wantLeft)
			}
		})
	}
}

func TestTUISetTime(t *testing.T) {
	m, _, _ := newTestTUI(t)

	press(m, keys("t"))
	if m.mode != modeTime {
		t.Fatal("t did not open the time input")
	}
	if got := m.input.Value(); got != "00:00:00" {
		t.Errorf("input = %q, want current elapsed", got)
	}

	m.input.SetValue("")
	press(m, keys("x"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeTime {
		t.Fatal("invalid input closed the time input")
	}
	if m.view.Records[0].Error == "" {
		t.Error("no error shown for invalid input")
	}

	m.input.SetValue("")
	press(m, keys("2:03"), tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != modeList {
		t.Error("valid input did not close the time input")
	}
	r := m.view.Records[0]
	if r.Elapsed != "00:02:03" || r.Error != "" {
		t.Errorf("record = %s (error %q), want 00:02:03 without error", r.Elapsed, r.Error)
	}
}

func TestTUIRename(t *testing.T) {
	m, _, _ := newTestTUI(t)

	press(m, keys("e"))
	m.input.SetValue("")
	press(m, keys("Laundry"), tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.view.Records[0].Name; got != "Laundry" {
		t.Errorf("Name = %q, want Laundry", got)
	}

	press(m, keys("e"), keys("zzz"), tea.KeyMsg{Type: tea.KeyEsc})
	if got := m.view.Records[0].Name; got != "Laundry" {
		t.Errorf("Name after esc = %q, want unchanged", got)
	}
}

func TestTUIBlurSaves(t *testing.T) {
	m, _, kv := newTestTUI(t)

	press(m, keys("e"))
	m.input.SetValue("")
	press(m, keys("Oven"), tea.KeyMsg{Type: tea.KeyEnter})
	kv.Set(persistence.DefaultKey, "[]")

	press(m, tea.BlurMsg{})
	raw, _, _ := kv.Get(persistence.DefaultKey)
	if !strings.Contains(raw, "Oven") {
		t.Errorf("stored = %s, want saved on blur", raw)
	}
}

func TestTUIQuit(t *testing.T) {
	m, _, _ := newTestTUI(t)

	_, cmd := m.Update(keys("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
