package core

import (
	"context"
	"strings"

	"github.com/JonMunkholm/esports/internal/store"
)

// AuditFilter narrows the audit log. Empty fields match everything.
type AuditFilter struct {
	TableKey string
	RowKey   string
	Action   AuditAction
	Severity AuditSeverity
	Limit    int // 0 means no limit
}

// QueryAudit returns the audit entries matching f, newest first.
func (s *Service) QueryAudit(ctx context.Context, f AuditFilter) (*store.Table, error) {
	t, err := s.AuditLog(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range []struct{ column, value string }{
		{"table_key", f.TableKey},
		{"row_key", f.RowKey},
		{"action", string(f.Action)},
		{"severity", string(f.Severity)},
	} {
		if c.value == "" {
			continue
		}
		if t, err = store.Filter(t, c.column, c.value); err != nil {
			return nil, err
		}
	}

	if f.Limit > 0 && t.Len() > f.Limit {
		t = store.New(t.Columns(), t.Rows()[:f.Limit]...)
	}
	return t, nil
}

// History returns every audit entry for one record, newest first.
func (s *Service) History(ctx context.Context, tableKey string, keyValues ...string) (*store.Table, error) {
	def, err := s.Table(tableKey)
	if err != nil {
		return nil, err
	}
	if len(keyValues) != len(def.Info.KeyColumns) {
		return nil, ErrKeyCount
	}
	return s.QueryAudit(ctx, AuditFilter{
		TableKey: tableKey,
		RowKey:   strings.Join(normalizeKeys(def, keyValues), "/"),
	})
}
