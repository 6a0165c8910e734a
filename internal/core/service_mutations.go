package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/JonMunkholm/esports/internal/logging"
	"github.com/JonMunkholm/esports/internal/store"
)

// Add validates and normalizes cells, then appends them as a new record.
// An empty key on a table with an ID prefix is filled with the next ID.
// Returns the row as written.
func (s *Service) Add(ctx context.Context, key string, cells []string) ([]string, error) {
	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}
	if len(cells) != len(def.Info.Columns) {
		return nil, fmt.Errorf("%w: %s has %d columns, got %d", store.ErrColumnCount, key, len(def.Info.Columns), len(cells))
	}

	row := slices.Clone(cells)
	keyIdx := def.KeyIndexes()
	if def.Info.IDPrefix != "" && len(keyIdx) == 1 && strings.TrimSpace(row[keyIdx[0]]) == "" {
		id, err := s.NextID(ctx, key)
		if err != nil {
			return nil, err
		}
		row[keyIdx[0]] = id
	}

	row, err = s.prepareRow(def, row)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.EnsureHeader(ctx, def.Info.File, def.Info.Columns); err != nil {
		return nil, err
	}
	current, err := s.loadChecked(ctx, def)
	if err != nil {
		return nil, err
	}
	keyValues := pick(row, keyIdx)
	if n, err := countMatches(current, def, keyValues); err != nil {
		return nil, err
	} else if n > 0 {
		return nil, fmt.Errorf("%w: %s already has %s", ErrDuplicateKey, key, strings.Join(keyValues, "/"))
	}

	if err := s.store.AppendRow(ctx, def.Info.File, row); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("record added", "table", key, "key", strings.Join(keyValues, "/"))
	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionRecordAdd,
		TableKey:     key,
		RowKey:       strings.Join(keyValues, "/"),
		NewValue:     store.JoinRow(row, s.store.Delimiter()),
		RowsAffected: 1,
	})
	return row, nil
}

// Update replaces every record whose key columns equal keyValues with cells.
// Returns the number of records replaced.
func (s *Service) Update(ctx context.Context, key string, keyValues []string, cells []string) (int, error) {
	def, err := s.Table(key)
	if err != nil {
		return 0, err
	}
	if len(keyValues) != len(def.Info.KeyColumns) {
		return 0, fmt.Errorf("%w: %s takes %d, got %d", ErrKeyCount, key, len(def.Info.KeyColumns), len(keyValues))
	}
	keyValues = normalizeKeys(def, keyValues)
	if len(cells) != len(def.Info.Columns) {
		return 0, fmt.Errorf("%w: %s has %d columns, got %d", store.ErrColumnCount, key, len(def.Info.Columns), len(cells))
	}

	row, err := s.prepareRow(def, cells)
	if err != nil {
		return 0, err
	}

	current, err := s.loadChecked(ctx, def)
	if err != nil {
		return 0, err
	}
	keyIdx := def.KeyIndexes()
	newKey := pick(row, keyIdx)
	if !slices.Equal(newKey, keyValues) {
		if n, err := countMatches(current, def, newKey); err != nil {
			return 0, err
		} else if n > 0 {
			return 0, fmt.Errorf("%w: %s already has %s", ErrDuplicateKey, key, strings.Join(newKey, "/"))
		}
	}
	old := firstMatch(current, def, keyValues)

	var n int
	if len(keyIdx) == 1 {
		n, err = s.store.UpdateByKey(ctx, def.Info.File, keyValues[0], keyIdx[0], row)
	} else {
		n, err = s.store.UpdateByTwoKeys(ctx, def.Info.File, keyValues[0], keyIdx[0], keyValues[1], keyIdx[1], row)
	}
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Info("record updated", "table", key, "key", strings.Join(keyValues, "/"), "rows", n)
	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionRecordUpdate,
		TableKey:     key,
		RowKey:       strings.Join(keyValues, "/"),
		OldValue:     store.JoinRow(old, s.store.Delimiter()),
		NewValue:     store.JoinRow(row, s.store.Delimiter()),
		RowsAffected: n,
	})
	return n, nil
}

// UpdateField changes one non-key column of the first record identified by
// keyValues. Other records sharing the key are left unchanged.
func (s *Service) UpdateField(ctx context.Context, key string, keyValues []string, column, value string) error {
	def, err := s.Table(key)
	if err != nil {
		return err
	}
	if !slices.Contains(def.Info.Columns, column) {
		return fmt.Errorf("%w: %s in %s", store.ErrColumnNotFound, column, key)
	}
	if slices.Contains(def.Info.KeyColumns, column) {
		return fmt.Errorf("%w: key column %s cannot be changed here, update the whole record", ErrValidation, column)
	}

	if spec, ok := def.Spec(column); ok {
		normalized, err := NormalizeCell(value, spec)
		if err != nil {
			return fmt.Errorf("%w: %s", ErrValidation, ValidationError{Field: column, Value: value, Message: err.Error()})
		}
		value = normalized
	}

	if len(keyValues) != len(def.Info.KeyColumns) {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrKeyCount, key, len(def.Info.KeyColumns), len(keyValues))
	}
	keyValues = normalizeKeys(def, keyValues)

	t, err := s.loadChecked(ctx, def)
	if err != nil {
		return err
	}
	rec, err := s.Lookup(ctx, key, keyValues...)
	if err != nil {
		return err
	}
	oldValue, _ := rec.Get(column)

	row := make([]string, len(def.Info.Columns))
	for i, c := range def.Info.Columns {
		row[i], _ = rec.Get(c)
	}
	row[slices.Index(def.Info.Columns, column)] = value
	if err := ValidateStorable(def.Info.Columns, row, s.store.Delimiter()); err != nil {
		return err
	}

	if keyIdx := def.KeyIndexes(); len(keyIdx) == 1 && keyIdx[0] == 0 {
		err = s.store.UpdateFieldByKey(ctx, def.Info.File, keyValues[0], column, value)
	} else {
		err = s.setFirstMatch(ctx, def, t, keyValues, column, value)
	}
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info("field updated", "table", key, "key", strings.Join(keyValues, "/"), "column", column)
	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionFieldUpdate,
		TableKey:     key,
		RowKey:       strings.Join(keyValues, "/"),
		ColumnName:   column,
		OldValue:     oldValue,
		NewValue:     value,
		RowsAffected: 1,
	})
	return nil
}

// Delete removes every record whose key columns equal keyValues and returns
// how many were removed.
func (s *Service) Delete(ctx context.Context, key string, keyValues ...string) (int, error) {
	def, err := s.Table(key)
	if err != nil {
		return 0, err
	}
	if len(keyValues) != len(def.Info.KeyColumns) {
		return 0, fmt.Errorf("%w: %s takes %d, got %d", ErrKeyCount, key, len(def.Info.KeyColumns), len(keyValues))
	}
	keyValues = normalizeKeys(def, keyValues)
	if _, err := s.loadChecked(ctx, def); err != nil {
		return 0, err
	}

	keyIdx := def.KeyIndexes()
	var n int
	if len(keyIdx) == 1 {
		n, err = s.store.DeleteByKey(ctx, def.Info.File, keyValues[0], keyIdx[0])
	} else {
		n, err = s.store.DeleteByTwoKeys(ctx, def.Info.File, keyValues[0], keyIdx[0], keyValues[1], keyIdx[1])
	}
	if err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Info("record deleted", "table", key, "key", strings.Join(keyValues, "/"), "rows", n)
	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionRecordDelete,
		TableKey:     key,
		RowKey:       strings.Join(keyValues, "/"),
		RowsAffected: n,
	})
	return n, nil
}

// Reset empties a table, leaving the registered header. A drifted header is
// replaced as well. Returns the number of rows removed.
func (s *Service) Reset(ctx context.Context, key string) (int, error) {
	def, err := s.Table(key)
	if err != nil {
		return 0, err
	}

	var n int
	t, err := s.store.Load(ctx, def.Info.File)
	switch {
	case err == nil:
		n = t.Len()
	case !isNotExist(err):
		return 0, err
	}

	if err := s.store.WriteFull(ctx, def.Info.File, store.New(def.Info.Columns)); err != nil {
		return 0, err
	}

	logging.FromContext(ctx).Warn("table reset", "table", key, "rows", n)
	s.LogAudit(ctx, AuditLogParams{
		Action:       ActionTableReset,
		TableKey:     key,
		RowsAffected: n,
	})
	return n, nil
}

// prepareRow normalizes a full row and checks that it can be stored.
func (s *Service) prepareRow(def TableDefinition, cells []string) ([]string, error) {
	v := NewRowValidator(def.FieldSpecs, MakeHeaderIndex(def.Info.Columns))
	row, result := v.NormalizeRow(cells)
	if err := result.Err(); err != nil {
		return nil, err
	}
	if err := ValidateStorable(def.Info.Columns, row, s.store.Delimiter()); err != nil {
		return nil, err
	}
	return row, nil
}

// loadChecked loads a table and refuses to continue if its header no longer
// lines up with the definition, since writes address columns by position.
func (s *Service) loadChecked(ctx context.Context, def TableDefinition) (*store.Table, error) {
	t, err := s.store.Load(ctx, def.Info.File)
	if err != nil {
		return nil, err
	}
	if err := checkLayout(def, t.Columns()); err != nil {
		return nil, fmt.Errorf("%s: %w", def.Info.File, err)
	}
	return t, nil
}

// setFirstMatch sets column in the first row matching keyValues and writes
// the table back. Other rows sharing the key keep their values.
func (s *Service) setFirstMatch(ctx context.Context, def TableDefinition, t *store.Table, keyValues []string, column, value string) error {
	idx := def.KeyIndexes()
	col := t.ColumnIndex(column)
	rows := t.Rows()
	for i, row := range rows {
		if slices.Equal(pick(row, idx), keyValues) {
			rows[i][col] = value
			return s.store.WriteFull(ctx, def.Info.File, store.New(t.Columns(), rows...))
		}
	}
	return fmt.Errorf("%w: %s in %s", store.ErrKeyNotFound, strings.Join(keyValues, "/"), def.Info.File)
}

// normalizeKeys applies the key columns' normalizers to entered key values.
func normalizeKeys(def TableDefinition, keyValues []string) []string {
	out := make([]string, len(keyValues))
	for i, v := range keyValues {
		v = strings.TrimSpace(v)
		if spec, ok := def.Spec(def.Info.KeyColumns[i]); ok && spec.Normalizer != nil && v != "" {
			v = spec.Normalizer(v)
		}
		out[i] = v
	}
	return out
}

func pick(row []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, p := range idx {
		out[i] = row[p]
	}
	return out
}

func countMatches(t *store.Table, def TableDefinition, keyValues []string) (int, error) {
	var (
		m   *store.Table
		err error
	)
	if len(keyValues) == 1 {
		m, err = store.Filter(t, def.Info.KeyColumns[0], keyValues[0])
	} else {
		m, err = store.FilterTwo(t, def.Info.KeyColumns[0], keyValues[0], def.Info.KeyColumns[1], keyValues[1])
	}
	if err != nil {
		return 0, err
	}
	return m.Len(), nil
}

func firstMatch(t *store.Table, def TableDefinition, keyValues []string) []string {
	idx := def.KeyIndexes()
	for _, row := range t.Rows() {
		if slices.Equal(pick(row, idx), keyValues) {
			return row
		}
	}
	return nil
}
