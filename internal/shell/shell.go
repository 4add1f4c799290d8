// Package shell runs the interactive read-eval-print loop: readline
// input with tab completion, prompt rendering from session state, and
// ExecutionResult rendering. All user-visible output flows through
// render; commands never print directly.
package shell

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"

	"xcsh/internal/completion"
	"xcsh/internal/executor"
	"xcsh/internal/logger"
	"xcsh/internal/session"
	"xcsh/pkg/shelltypes"
)

// interruptWindow is how quickly a second Ctrl+C must follow the first
// to exit the shell.
const interruptWindow = 500 * time.Millisecond

// Shell owns the REPL loop.
type Shell struct {
	session   *session.Session
	executor  *executor.Executor
	completer *completion.Completer
	logger    *log.Logger

	rl            *readline.Instance
	lastInterrupt time.Time
}

// New wires a shell over an executor and completer sharing one session.
func New(sess *session.Session, exec *executor.Executor, comp *completion.Completer) *Shell {
	return &Shell{
		session:   sess,
		executor:  exec,
		completer: comp,
		logger:    logger.NewStyledLogger("Shell"),
	}
}

// Run starts the loop and blocks until the user exits or ctx is
// canceled between commands.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 s.prompt(),
		HistoryFile:            session.DefaultHistoryPath(),
		HistoryLimit:           1000,
		DisableAutoSaveHistory: true,
		AutoComplete:           &readlineCompleter{completer: s.completer},
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	s.rl = rl
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), s.banner())
	fmt.Fprintln(rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			if s.armInterrupt() {
				fmt.Fprintln(rl.Stdout(), "Goodbye!")
				return nil
			}
			fmt.Fprintln(rl.Stdout(), "Press Ctrl+C again to exit")
			continue
		case io.EOF:
			fmt.Fprintln(rl.Stdout(), "Goodbye!")
			return nil
		default:
			return err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			if err := rl.SaveHistory(line); err != nil {
				s.logger.Debug("history save failed", "error", err)
			}
		}

		result := s.executor.Execute(ctx, line)
		s.render(result)

		if result.ShouldExit {
			if history := s.session.HistoryManager(); history != nil {
				if err := history.Save(); err != nil {
					s.logger.Debug("history flush failed", "error", err)
				}
			}
			return nil
		}
		if result.ShouldClear {
			fmt.Fprint(rl.Stdout(), "\033[H\033[2J")
		}
		if result.ContextChanged {
			rl.SetPrompt(s.prompt())
		}
	}
}

// armInterrupt reports whether this Ctrl+C is the second inside the
// exit window.
func (s *Shell) armInterrupt() bool {
	now := time.Now()
	armed := now.Sub(s.lastInterrupt) <= interruptWindow
	s.lastInterrupt = now
	return armed
}

// render is the single channel between command results and the
// terminal.
func (s *Shell) render(result *shelltypes.ExecutionResult) {
	out := s.rl.Stdout()

	if result.Err != nil {
		message := "Error: " + result.Err.Error()
		if s.session.ColorEnabled() {
			message = errorStyle.Render(message)
		}
		fmt.Fprintln(out, message)
		for _, line := range result.Output {
			if s.session.ColorEnabled() {
				line = hintStyle.Render(line)
			}
			fmt.Fprintln(out, line)
		}
		return
	}

	for _, line := range result.Output {
		fmt.Fprintln(out, line)
	}
}
