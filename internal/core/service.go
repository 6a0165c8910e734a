package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/JonMunkholm/esports/internal/logging"
	"github.com/JonMunkholm/esports/internal/store"
)

var (
	// ErrUnknownTable is returned for table or report keys nobody registered.
	ErrUnknownTable = errors.New("unknown table")
	// ErrDuplicateKey is returned when an added record reuses an existing key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrKeyCount is returned when the number of key values does not match
	// the table's key columns.
	ErrKeyCount = errors.New("wrong number of key values")
)

// ServiceConfig holds the settings a Service needs beyond its store.
type ServiceConfig struct {
	AuditFile    string
	AuditEnabled bool
}

// Service provides the tournament record operations shared by every frontend.
type Service struct {
	store *store.Store
	audit *AuditLog
}

// NewService creates a new Service over st.
func NewService(st *store.Store, cfg ServiceConfig) *Service {
	return &Service{
		store: st,
		audit: NewAuditLog(st, cfg.AuditFile, cfg.AuditEnabled),
	}
}

// Store returns the underlying table store.
func (s *Service) Store() *store.Store { return s.store }

// ListTables returns information about all registered tables.
func (s *Service) ListTables() []TableInfo {
	defs := All()
	infos := make([]TableInfo, len(defs))
	for i, def := range defs {
		infos[i] = def.Info
	}
	return infos
}

// ListTablesByGroup returns tables organized by group.
func (s *Service) ListTablesByGroup() map[string][]TableInfo {
	result := make(map[string][]TableInfo)
	for _, group := range Groups() {
		for _, def := range ByGroup(group) {
			result[group] = append(result[group], def.Info)
		}
	}
	return result
}

// Table returns the definition registered under key.
func (s *Service) Table(key string) (TableDefinition, error) {
	def, ok := Get(key)
	if !ok {
		return TableDefinition{}, fmt.Errorf("%w: %s", ErrUnknownTable, key)
	}
	return def, nil
}

// Reports returns the registered reports.
func (s *Service) Reports() []Report {
	return Reports()
}

// RunReport runs the report registered under key.
func (s *Service) RunReport(ctx context.Context, key string) (*store.Table, error) {
	for _, r := range Reports() {
		if r.Key == key {
			logging.FromContext(ctx).Debug("running report", "report", key)
			return r.Run(ctx, s)
		}
	}
	return nil, fmt.Errorf("%w: report %s", ErrUnknownTable, key)
}

// Init creates every registered table file that is missing or empty and
// writes its header, and does the same for the audit file. Returns the keys
// of the tables it initialized.
func (s *Service) Init(ctx context.Context) ([]string, error) {
	if _, err := s.audit.Init(ctx); err != nil {
		return nil, fmt.Errorf("init audit log: %w", err)
	}

	var created []string
	for _, def := range All() {
		wrote, err := s.store.EnsureHeader(ctx, def.Info.File, def.Info.Columns)
		if err != nil {
			return created, fmt.Errorf("init %s: %w", def.Info.Key, err)
		}
		if !wrote {
			continue
		}
		created = append(created, def.Info.Key)
		s.LogAudit(ctx, AuditLogParams{
			Action:   ActionTableInit,
			TableKey: def.Info.Key,
		})
	}
	return created, nil
}

// AuditLog returns the audit entries, newest first.
func (s *Service) AuditLog(ctx context.Context) (*store.Table, error) {
	if !s.audit.Enabled() {
		return store.New(auditColumns), nil
	}
	return s.audit.Entries(ctx)
}

// LogAudit records an audit entry. Failures are logged and otherwise
// ignored so an audit problem never undoes a completed change.
func (s *Service) LogAudit(ctx context.Context, params AuditLogParams) {
	if _, err := s.audit.Record(ctx, params); err != nil {
		logging.FromContext(ctx).Warn("audit entry not recorded",
			"action", params.Action,
			"table", params.TableKey,
			"error", err,
		)
	}
}
