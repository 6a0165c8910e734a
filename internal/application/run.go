// Package application holds the terminal frontends. Both walk the same menu
// tree: the bubbletea model in Run and the numbered line mode in RunPlain.
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JonMunkholm/esports/internal/core"
	"github.com/JonMunkholm/esports/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionTimeout is the maximum duration of one menu action.
var ActionTimeout = 30 * time.Second

type DoneMsg string
type ErrMsg struct{ Err error }

// ResultMsg carries an action's output back to the model.
type ResultMsg struct{ Output Output }

// Options configures both frontends.
type Options struct {
	AltScreen      bool
	MaxColumnWidth int
	MessageDelay   time.Duration
}

// Run starts the interactive frontend and blocks until the user quits.
func Run(ctx context.Context, svc *core.Service, opts Options) error {
	var progOpts []tea.ProgramOption
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	progOpts = append(progOpts, tea.WithContext(ctx))

	p := tea.NewProgram(NewModel(ctx, svc, opts), progOpts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// execute runs a under its own action ID and time limit.
func execute(ctx context.Context, a *Action, in []string) (Output, error) {
	ctx = logging.ContextWithActionID(ctx, "")
	ctx, cancel := context.WithTimeout(ctx, ActionTimeout)
	defer cancel()

	out, err := a.Run(ctx, in)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("action timed out after %v", ActionTimeout)
		}
		logging.FromContext(ctx).Error("action failed", "error", err)
		return Output{}, err
	}
	return out, nil
}

// runAction wraps execute as a command for the bubbletea loop.
func runAction(ctx context.Context, a *Action, in []string) tea.Cmd {
	return func() tea.Msg {
		out, err := execute(ctx, a, in)
		if err != nil {
			return ErrMsg{Err: err}
		}
		if out.Table == nil {
			return DoneMsg(out.Message)
		}
		return ResultMsg{Output: out}
	}
}
