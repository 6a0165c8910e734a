package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/esports/internal/console"
	"github.com/JonMunkholm/esports/internal/core"
)

// RunPlain walks the menu tree with numbered menus on in and out. It returns
// nil when the user exits or the input ends. Failed actions are reported and
// the menu is shown again.
func RunPlain(ctx context.Context, svc *core.Service, in io.Reader, out io.Writer, opts Options) error {
	p := console.NewPrompter(in, out)
	current := buildMenuTree(svc)

	for {
		choice, err := p.Menu(current.Title, current.Labels())
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		item := current.Items[choice-1]
		switch {
		case item.Label == exitLabel:
			return nil
		case item.Submenu != nil:
			current = item.Submenu
		case item.Action != nil:
			if err := runPlainAction(ctx, p, item, opts); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}

// runPlainAction collects the action's fields, runs it and prints the
// outcome. Only input errors are returned.
func runPlainAction(ctx context.Context, p *console.Prompter, item MenuItem, opts Options) error {
	a := item.Action
	values := make([]string, len(a.Fields))
	for i, f := range a.Fields {
		v, err := p.Ask(f.Prompt()+": ", f.check)
		if err != nil {
			return err
		}
		values[i] = v
	}

	if a.Confirm != "" {
		ok, err := p.Confirm(a.Confirm)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(p.Out(), "Cancelled.")
			return nil
		}
	}

	output, err := execute(ctx, a, values)
	if err != nil {
		fmt.Fprintf(p.Out(), "Error: %s\n", core.FormatUserError(err))
		pause(opts.MessageDelay)
		return nil
	}

	if output.Title != "" {
		fmt.Fprintln(p.Out(), output.Title)
	}
	if output.Message != "" {
		fmt.Fprintln(p.Out(), output.Message)
	}
	if output.Table != nil {
		fmt.Fprint(p.Out(), console.RenderTable(output.Table, opts.MaxColumnWidth))
	}
	pause(opts.MessageDelay)
	return nil
}

func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}
