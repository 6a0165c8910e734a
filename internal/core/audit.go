package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/esports/internal/logging"
	"github.com/JonMunkholm/esports/internal/store"
	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionRecordAdd    AuditAction = "record_add"
	ActionRecordUpdate AuditAction = "record_update"
	ActionFieldUpdate  AuditAction = "field_update"
	ActionRecordDelete AuditAction = "record_delete"
	ActionTableInit    AuditAction = "table_init"
	ActionImport       AuditAction = "import"
	ActionTableReset   AuditAction = "table_reset"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow      AuditSeverity = "low"
	SeverityMedium   AuditSeverity = "medium"
	SeverityHigh     AuditSeverity = "high"
	SeverityCritical AuditSeverity = "critical"
)

// auditColumns is the header of the audit file. detail is last so it may
// hold free text.
var auditColumns = []string{
	"audit_id", "created_at", "action_id", "operator", "action", "severity",
	"table_key", "row_key", "column_name", "old_value", "new_value",
	"rows_affected", "detail",
}

// auditTimeLayout is fixed width so entries sort by text.
const auditTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID           string
	CreatedAt    time.Time
	ActionID     string
	Operator     string
	Action       AuditAction
	Severity     AuditSeverity
	TableKey     string
	RowKey       string
	ColumnName   string
	OldValue     string
	NewValue     string
	RowsAffected int
	Detail       string
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action       AuditAction
	TableKey     string
	RowKey       string
	ColumnName   string
	OldValue     string
	NewValue     string
	RowsAffected int
	Detail       string
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction, rows int) AuditSeverity {
	switch action {
	case ActionRecordDelete:
		if rows > 1 {
			return SeverityCritical
		}
		return SeverityHigh
	case ActionTableReset:
		return SeverityCritical
	case ActionImport:
		return SeverityHigh
	case ActionTableInit:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// AuditLog appends entries to a CSV file in the store.
type AuditLog struct {
	store   *store.Store
	file    string
	enabled bool
	now     func() time.Time
}

// NewAuditLog returns an audit log writing to file. A disabled log accepts
// entries and drops them.
func NewAuditLog(st *store.Store, file string, enabled bool) *AuditLog {
	return &AuditLog{store: st, file: file, enabled: enabled && file != "", now: time.Now}
}

// Enabled reports whether entries are written.
func (a *AuditLog) Enabled() bool { return a.enabled }

// File returns the audit file name.
func (a *AuditLog) File() string { return a.file }

// Init writes the audit header if the file is missing or empty.
func (a *AuditLog) Init(ctx context.Context) (bool, error) {
	if !a.enabled {
		return false, nil
	}
	return a.store.EnsureHeader(ctx, a.file, auditColumns)
}

// Record appends an entry. The action ID and operator come from ctx.
func (a *AuditLog) Record(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	entry := &AuditEntry{
		ID:           uuid.NewString(),
		CreatedAt:    a.now().UTC(),
		ActionID:     logging.ActionID(ctx),
		Operator:     OperatorFromContext(ctx),
		Action:       params.Action,
		Severity:     determineSeverity(params.Action, params.RowsAffected),
		TableKey:     params.TableKey,
		RowKey:       params.RowKey,
		ColumnName:   params.ColumnName,
		OldValue:     params.OldValue,
		NewValue:     params.NewValue,
		RowsAffected: params.RowsAffected,
		Detail:       params.Detail,
	}
	if !a.enabled {
		return entry, nil
	}

	if _, err := a.store.EnsureHeader(ctx, a.file, auditColumns); err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}
	if err := a.store.AppendRow(ctx, a.file, a.cells(entry)); err != nil {
		return nil, fmt.Errorf("audit: %w", err)
	}

	logging.WithFields(ctx,
		"audit_id", entry.ID,
		"action", entry.Action,
		"table", entry.TableKey,
	).Debug("audit entry recorded", "severity", entry.Severity)
	return entry, nil
}

// Entries loads the audit file, newest entry first.
func (a *AuditLog) Entries(ctx context.Context) (*store.Table, error) {
	t, err := a.store.Load(ctx, a.file)
	if err != nil {
		return nil, err
	}
	return store.SortByOneKey(t, "created_at", false)
}

// cells renders an entry as an audit row. Every cell but the last is made
// safe for the unquoted file format.
func (a *AuditLog) cells(e *AuditEntry) []string {
	row := []string{
		e.ID,
		e.CreatedAt.Format(auditTimeLayout),
		e.ActionID,
		e.Operator,
		string(e.Action),
		string(e.Severity),
		e.TableKey,
		e.RowKey,
		e.ColumnName,
		e.OldValue,
		e.NewValue,
		strconv.Itoa(e.RowsAffected),
		e.Detail,
	}
	delim := string(a.store.Delimiter())
	r := strings.NewReplacer(delim, " ", `"`, "'", "\r", " ", "\n", " ")
	for i := range row {
		if i == len(row)-1 {
			row[i] = strings.NewReplacer("\r", " ", "\n", " ").Replace(row[i])
			continue
		}
		row[i] = r.Replace(row[i])
	}
	return row
}
