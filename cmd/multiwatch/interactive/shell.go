// Package interactive provides the line-oriented multiwatch shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/runloop"
	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

const idlePrompt = "multiwatch> "

// Shell is the readline front end. All engine calls go through exec, which
// also runs the redraw frames, so the collection only ever sees one caller
// at a time.
type Shell struct {
	c    *collection.Collection
	exec runloop.Executor
	rl   *readline.Instance
	out  io.Writer

	// view is the last rendered state; only touched inside exec.
	view collection.View
}

// New creates the shell and restores the stopwatches. engineCfg.Render is
// replaced by the shell's own renderer.
func New(engineCfg collection.Config, exec runloop.Executor) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          idlePrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := newShell(engineCfg, exec, rl.Stdout())
	s.rl = rl
	return s, nil
}

// newShell builds a shell without a terminal; Execute output goes to out.
func newShell(engineCfg collection.Config, exec runloop.Executor, out io.Writer) *Shell {
	s := &Shell{exec: exec, out: out}
	engineCfg.Render = s.render
	s.exec.Do(func() {
		s.c = collection.New(engineCfg)
		s.c.Init()
	})
	return s
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Run reads commands until quit, EOF or ctx is done. The collection is
// saved on the way out.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	go func() {
		<-ctx.Done()
		s.rl.Close()
	}()

	s.printHelp()
	s.printList()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				// Ctrl-C answers an open prompt like Escape.
				s.dispatch(collection.EscapePressed{})
				continue
			}
			break
		}
		if quit := s.Execute(line); quit {
			break
		}
	}

	fmt.Fprintln(s.out, "Exiting...")
	s.dispatch(collection.Unload{})
	s.exec.Do(s.c.Stop)
}

// Execute runs one input line. It reports whether the shell should exit.
func (s *Shell) Execute(line string) bool {
	input := strings.TrimSpace(line)

	if prompt := s.currentView().Prompt; prompt != nil {
		s.answer(prompt, input)
		return false
	}
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "list", "ls", "l":
		s.printList()

	case "add", "a", "new":
		s.dispatch(collection.AddTimer{Name: strings.Join(args, " ")})
		s.printList()

	case "toggle", "t", "start", "pause", "p":
		s.withRecord(args, func(id string, _ []string) {
			s.dispatch(collection.ToggleTimer{ID: id})
			s.printRecord(id)
		})

	case "reset":
		s.withRecord(args, func(id string, _ []string) {
			s.dispatch(collection.ResetTimer{ID: id})
		})

	case "remove", "rm":
		s.withRecord(args, func(id string, _ []string) {
			s.dispatch(collection.RemoveTimer{ID: id})
		})

	case "rename", "mv":
		s.withRecord(args, func(id string, rest []string) {
			s.dispatch(collection.RenameTimer{ID: id, Name: strings.Join(rest, " ")})
			s.printRecord(id)
		})

	case "set":
		s.withRecord(args, func(id string, rest []string) {
			if len(rest) == 0 {
				// Show the current value, as focusing the input does.
				s.dispatch(collection.FocusTimeInput{ID: id})
				if r, ok := s.currentView().Find(id); ok {
					fmt.Fprintf(s.out, "%s is at %s. Usage: set <n> <time>\n", r.Name, r.Draft)
				}
				s.dispatch(collection.BlurTimeInput{ID: id})
				return
			}
			err := s.dispatch(collection.ApplyTime{ID: id, Text: rest[0]})
			if errors.Is(err, timefmt.ErrInvalidDuration) {
				fmt.Fprintln(s.out, timefmt.Hint)
				return
			}
			s.printRecord(id)
		})

	case "save":
		s.dispatch(collection.PageHidden{})
		fmt.Fprintln(s.out, "Saved.")

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) answer(p *collection.PromptView, input string) {
	switch strings.ToLower(input) {
	case "y", "yes", strings.ToLower(p.ConfirmLabel):
		s.dispatch(collection.ConfirmPrompt{})
		s.printList()
	case "n", "no", "cancel", "":
		s.dispatch(collection.CancelPrompt{})
		fmt.Fprintln(s.out, "Cancelled.")
	case "esc", "escape":
		s.dispatch(collection.EscapePressed{})
		fmt.Fprintln(s.out, "Cancelled.")
	default:
		fmt.Fprintf(s.out, "Answer y (%s) or n (cancel).\n", p.ConfirmLabel)
	}
}

func (s *Shell) dispatch(msg collection.Message) error {
	var err error
	s.exec.Do(func() {
		err = s.c.Dispatch(msg)
	})
	return err
}

func (s *Shell) currentView() collection.View {
	var v collection.View
	s.exec.Do(func() {
		v = s.view
	})
	return v
}

// withRecord resolves the first argument to a stopwatch id and calls fn with
// the remaining arguments.
func (s *Shell) withRecord(args []string, fn func(id string, rest []string)) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Which stopwatch? Give its number from 'list' or its id.")
		return
	}
	id, err := resolve(s.currentView(), args[0])
	if err != nil {
		fmt.Fprintln(s.out, err)
		return
	}
	fn(id, args[1:])
}

// resolve accepts a 1-based list position, a full id or a unique id prefix.
func resolve(v collection.View, ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(v.Records) {
			return "", fmt.Errorf("no stopwatch #%d (have %d)", n, len(v.Records))
		}
		return v.Records[n-1].ID, nil
	}

	var match string
	for _, r := range v.Records {
		if r.ID == ref {
			return r.ID, nil
		}
		if strings.HasPrefix(r.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("%q matches more than one stopwatch", ref)
			}
			match = r.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no stopwatch %q", ref)
	}
	return match, nil
}

// render is the collection's Render hook; it runs inside exec.
func (s *Shell) render(v collection.View) {
	opened := v.Prompt != nil && s.view.Prompt == nil
	s.view = v

	if opened {
		fmt.Fprintf(s.out, "%s [y=%s / n=cancel]\n", v.Prompt.Message, v.Prompt.ConfirmLabel)
	}
	if s.rl != nil {
		s.rl.SetPrompt(promptLine(v))
		s.rl.Refresh()
	}
}

// promptLine shows the first running stopwatch so the prompt ticks along.
func promptLine(v collection.View) string {
	if v.Prompt != nil {
		return "confirm> "
	}
	var first *collection.RecordView
	running := 0
	for i := range v.Records {
		if v.Records[i].Running {
			if first == nil {
				first = &v.Records[i]
			}
			running++
		}
	}
	if first == nil {
		return idlePrompt
	}
	if running > 1 {
		return fmt.Sprintf("multiwatch [%s %s +%d]> ", first.Name, first.Elapsed, running-1)
	}
	return fmt.Sprintf("multiwatch [%s %s]> ", first.Name, first.Elapsed)
}

func (s *Shell) printList() {
	v := s.currentView()
	if len(v.Records) == 0 {
		fmt.Fprintln(s.out, "No stopwatches. Use 'add' to create one.")
		return
	}

	width := len("NAME")
	for _, r := range v.Records {
		width = max(width, len(r.Name))
	}
	fmt.Fprintf(s.out, "  %-3s %-*s  %-8s  %s\n", "#", width, "NAME", "ELAPSED", "STATUS")
	for i, r := range v.Records {
		fmt.Fprintf(s.out, "  %-3d %-*s  %-8s  %s\n", i+1, width, r.Name, r.Elapsed, r.Status)
	}
}

func (s *Shell) printRecord(id string) {
	r, ok := s.currentView().Find(id)
	if !ok {
		return
	}
	fmt.Fprintf(s.out, "%s: %s (%s)\n", r.Name, r.Elapsed, r.Status)
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
Multiwatch Commands:
  Stopwatches (<n> is the number shown by 'list', or an id prefix):
    list               - Show all stopwatches, newest first
    add [name]         - Add a stopwatch
    toggle <n>         - Start or pause
    reset <n>          - Reset to 00:00:00 (asks first)
    remove <n>         - Remove (asks first)
    rename <n> <name>  - Rename
    set <n> <time>     - Set elapsed time: 90, 2:03 or 1:02:03

  General:
    save               - Save now
    help               - Show this help
    quit               - Save and exit

  Prompts:
    y / n              - Confirm or cancel; Ctrl-C also cancels`)
}
