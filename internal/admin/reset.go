// Package admin provides administrative operations on the table store.
package admin

import (
	"context"
	"fmt"

	"github.com/JonMunkholm/esports/internal/core"
)

// Resetter empties tables. This is a destructive operation: every row is
// removed and only the registered header remains.
type Resetter struct {
	Service *core.Service
}

type tableResetFn func(ctx context.Context) (int, error)

// ResetTable empties one table and returns the number of rows removed.
func (r *Resetter) ResetTable(ctx context.Context, key string) (int, error) {
	return r.Service.Reset(ctx, key)
}

// ResetGroup empties every table in a menu group.
func (r *Resetter) ResetGroup(ctx context.Context, group string) (int, error) {
	defs := core.ByGroup(group)
	if len(defs) == 0 {
		return 0, fmt.Errorf("no tables in group %q", group)
	}
	return r.runResets(ctx, r.resetsFor(defs))
}

// ResetAll empties every registered table. The audit log is kept.
func (r *Resetter) ResetAll(ctx context.Context) (int, error) {
	return r.runResets(ctx, r.resetsFor(core.All()))
}

func (r *Resetter) resetsFor(defs []core.TableDefinition) []tableResetFn {
	resets := make([]tableResetFn, len(defs))
	for i, def := range defs {
		key := def.Info.Key
		resets[i] = func(ctx context.Context) (int, error) {
			return r.Service.Reset(ctx, key)
		}
	}
	return resets
}

func (r *Resetter) runResets(ctx context.Context, resets []tableResetFn) (int, error) {
	var total int
	for _, reset := range resets {
		n, err := reset(ctx)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
