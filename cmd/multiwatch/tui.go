package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/runloop"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F7DC6F")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 2).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			MarginTop(1)
)

type tickMsg time.Time

type inputMode int

const (
	modeList inputMode = iota
	modeRename
	modeTime
)

// tuiModel is the full-screen front end. The collection runs on the
// bubbletea goroutine: frames are queued and stepped on every tick, and the
// Render hook only stores the latest view. A tick is only scheduled while a
// frame is queued, so an idle screen does not wake up.
type tuiModel struct {
	c        *collection.Collection
	frames   *runloop.QueuedFrames
	interval time.Duration
	ticking  bool

	view   collection.View
	cursor int

	mode   inputMode
	editID string
	input  textinput.Model
}

func newTUIModel(engineCfg collection.Config, interval time.Duration) *tuiModel {
	if interval <= 0 {
		interval = runloop.DefaultInterval
	}
	m := &tuiModel{
		frames:   runloop.NewQueuedFrames(),
		interval: interval,
		input:    textinput.New(),
	}
	m.input.CharLimit = 64
	m.input.Prompt = "> "

	engineCfg.Frames = m.frames
	engineCfg.Render = func(v collection.View) { m.view = v }
	m.c = collection.New(engineCfg)
	m.c.Init()
	return m
}

func runTUI(ctx context.Context, engineCfg collection.Config, interval time.Duration, logger *slog.Logger) int {
	m := newTUIModel(engineCfg, interval)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithReportFocus(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()

	// The program loop has stopped, so the collection is ours again.
	m.c.Dispatch(collection.Unload{})
	m.c.Stop()

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("terminal UI failed", "error", err)
		return 1
	}
	return 0
}

func (m *tuiModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// armTick schedules the next tick if the engine has a frame queued and no
// tick is already on its way.
func (m *tuiModel) armTick() tea.Cmd {
	if m.ticking || m.frames.Pending() == 0 {
		return nil
	}
	m.ticking = true
	return m.tick()
}

func (m *tuiModel) Init() tea.Cmd {
	return m.armTick()
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if tick := m.armTick(); tick != nil {
		if cmd == nil {
			return m, tick
		}
		return m, tea.Batch(cmd, tick)
	}
	return m, cmd
}

func (m *tuiModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tickMsg:
		m.ticking = false
		m.frames.Step()
		return nil

	case tea.BlurMsg:
		m.c.Dispatch(collection.PageHidden{})
		return nil

	case tea.MouseMsg:
		// Any click while a prompt is open counts as clicking outside it.
		if m.view.PromptOpen() && msg.Action == tea.MouseActionPress {
			m.c.Dispatch(collection.DismissPrompt{})
		}
		return nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		if m.view.PromptOpen() {
			return m.updatePrompt(msg)
		}
		switch m.mode {
		case modeRename:
			return m.updateRename(msg)
		case modeTime:
			return m.updateTime(msg)
		default:
			return m.updateList(msg)
		}
	}
	return nil
}

func (m *tuiModel) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		m.c.Dispatch(collection.ConfirmPrompt{})
		m.clampCursor()
	case "n", "c":
		m.c.Dispatch(collection.CancelPrompt{})
	case "esc":
		m.c.Dispatch(collection.EscapePressed{})
	}
	return nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "a", "n":
		m.c.Dispatch(collection.AddTimer{})
		m.cursor = 0
	case " ", "enter", "s":
		if id, ok := m.selected(); ok {
			m.c.Dispatch(collection.ToggleTimer{ID: id})
		}
	case "r":
		if id, ok := m.selected(); ok {
			m.c.Dispatch(collection.ResetTimer{ID: id})
		}
	case "x", "d", "delete":
		if id, ok := m.selected(); ok {
			m.c.Dispatch(collection.RemoveTimer{ID: id})
		}
	case "e":
		if r, ok := m.selectedView(); ok {
			m.mode = modeRename
			m.editID = r.ID
			m.input.SetValue(r.Name)
			m.input.CursorEnd()
			return m.input.Focus()
		}
	case "t":
		if r, ok := m.selectedView(); ok {
			m.c.Dispatch(collection.FocusTimeInput{ID: r.ID})
			r, _ = m.view.Find(r.ID)
			m.mode = modeTime
			m.editID = r.ID
			m.input.SetValue(r.Draft)
			m.input.CursorEnd()
			return m.input.Focus()
		}
	case "esc":
		m.c.Dispatch(collection.EscapePressed{})
	}
	return nil
}

func (m *tuiModel) updateRename(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.c.Dispatch(collection.RenameTimer{ID: m.editID, Name: m.input.Value()})
		m.leaveInput()
		return nil
	case "esc":
		m.leaveInput()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *tuiModel) updateTime(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		// An invalid value keeps the input open with the error shown.
		if err := m.c.Dispatch(collection.ApplyTime{ID: m.editID}); err == nil {
			m.c.Dispatch(collection.BlurTimeInput{ID: m.editID})
			m.leaveInput()
		}
		return nil
	case "esc":
		m.c.Dispatch(collection.BlurTimeInput{ID: m.editID})
		m.leaveInput()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.c.Dispatch(collection.EditTimeInput{ID: m.editID, Draft: m.input.Value()})
	return cmd
}

func (m *tuiModel) leaveInput() {
	m.mode = modeList
	m.editID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m *tuiModel) selectedView() (collection.RecordView, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Records) {
		return collection.RecordView{}, false
	}
	return m.view.Records[m.cursor], true
}

func (m *tuiModel) selected() (string, bool) {
	r, ok := m.selectedView()
	return r.ID, ok
}

func (m *tuiModel) clampCursor() {
	if m.cursor >= len(m.view.Records) {
		m.cursor = len(m.view.Records) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *tuiModel) View() string {
	var b strings.Builder

	running := 0
	for _, r := range m.view.Records {
		if r.Running {
			running++
		}
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Multiwatch  %d stopwatches, %d running", len(m.view.Records), running)))
	b.WriteString("\n\n")

	width := 4
	for _, r := range m.view.Records {
		width = max(width, lipgloss.Width(r.Name))
	}

	for i, r := range m.view.Records {
		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("> ")
		}

		status := pausedStyle.Render(r.Status)
		if r.Running {
			status = runningStyle.Render(r.Status)
		}

		fmt.Fprintf(&b, "%s%-*s  %s  %-7s  [%s]\n", marker, width, r.Name, r.Elapsed, status, r.ToggleLabel)
		if r.Error != "" {
			fmt.Fprintf(&b, "    %s\n", errorStyle.Render(r.Error))
		}
	}

	switch m.mode {
	case modeRename:
		fmt.Fprintf(&b, "\nRename:\n%s\n", m.input.View())
	case modeTime:
		fmt.Fprintf(&b, "\nSet time (90, 2:03, 1:02:03):\n%s\n", m.input.View())
	}

	if p := m.view.Prompt; p != nil {
		text := fmt.Sprintf("%s\n\n[y] %s   [n] Cancel", p.Message, p.ConfirmLabel)
		if p.Queued > 0 {
			text += fmt.Sprintf("   (%d more waiting)", p.Queued)
		}
		b.WriteString(promptStyle.Render(text))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m *tuiModel) help() string {
	switch {
	case m.view.PromptOpen():
		return "y/enter: confirm  n: cancel  esc: close"
	case m.mode != modeList:
		return "enter: apply  esc: cancel"
	default:
		return "a: add  space: start/pause  r: reset  x: remove  e: rename  t: set time  q: quit"
	}
}
