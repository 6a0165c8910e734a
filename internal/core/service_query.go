package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/JonMunkholm/esports/internal/logging"
	"github.com/JonMunkholm/esports/internal/store"
)

// View loads a table in file order. A header that has drifted from the
// registered columns is logged but still returned.
func (s *Service) View(ctx context.Context, key string) (*store.Table, error) {
	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}
	t, err := s.store.Load(ctx, def.Info.File)
	if err != nil {
		return nil, err
	}
	if err := checkLayout(def, t.Columns()); err != nil {
		logging.FromContext(ctx).Warn("table header differs from definition",
			"table", key,
			"error", err,
		)
	}
	return t, nil
}

// Search returns the rows of a table whose column equals value exactly.
func (s *Service) Search(ctx context.Context, key, column, value string) (*store.Table, error) {
	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, def.Info.File, column, value)
}

// SearchTwo returns the rows matching both column/value pairs.
func (s *Service) SearchTwo(ctx context.Context, key, column1, value1, column2, value2 string) (*store.Table, error) {
	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}
	return s.store.SearchTwo(ctx, def.Info.File, column1, value1, column2, value2)
}

// Sort returns a table ordered by one column.
func (s *Service) Sort(ctx context.Context, key string, by SortSpec) (*store.Table, error) {
	t, err := s.View(ctx, key)
	if err != nil {
		return nil, err
	}
	return store.SortByOneKey(t, by.Column, by.Ascending)
}

// SortTwo returns a table ordered by primary, then secondary. The direction
// applies to both columns.
func (s *Service) SortTwo(ctx context.Context, key, primary, secondary string, ascending bool) (*store.Table, error) {
	t, err := s.View(ctx, key)
	if err != nil {
		return nil, err
	}
	return store.SortByTwoKeys(t, primary, secondary, ascending)
}

// Project returns only the named columns of a table, in the order given.
func (s *Service) Project(ctx context.Context, key string, columns ...string) (*store.Table, error) {
	t, err := s.View(ctx, key)
	if err != nil {
		return nil, err
	}
	return store.Project(t, columns...)
}

// Join left-joins two tables on leftColumn = rightColumn. Left rows without
// a partner are kept with placeholder cells.
func (s *Service) Join(ctx context.Context, leftKey, leftColumn, rightKey, rightColumn string) (*store.Table, error) {
	left, err := s.View(ctx, leftKey)
	if err != nil {
		return nil, err
	}
	right, err := s.View(ctx, rightKey)
	if err != nil {
		return nil, err
	}
	return store.KeyJoin(left, leftColumn, right, rightColumn)
}

// ColumnValues returns every value of one column, in row order.
func (s *Service) ColumnValues(ctx context.Context, key, column string) (*store.Column, error) {
	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}
	return s.store.QueryField(ctx, def.Info.File, column)
}

// Lookup returns the first record whose key columns equal keyValues.
func (s *Service) Lookup(ctx context.Context, key string, keyValues ...string) (*store.Record, error) {
	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}
	if len(keyValues) != len(def.Info.KeyColumns) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrKeyCount, key, len(def.Info.KeyColumns), len(keyValues))
	}
	keyValues = normalizeKeys(def, keyValues)

	if len(keyValues) == 1 && def.KeyIndexes()[0] == 0 {
		return s.store.QueryKey(ctx, def.Info.File, keyValues[0])
	}

	var matches *store.Table
	if len(keyValues) == 1 {
		matches, err = s.store.Search(ctx, def.Info.File, def.Info.KeyColumns[0], keyValues[0])
	} else {
		matches, err = s.store.SearchTwo(ctx, def.Info.File,
			def.Info.KeyColumns[0], keyValues[0],
			def.Info.KeyColumns[1], keyValues[1])
	}
	if err != nil {
		return nil, err
	}
	if matches.Len() == 0 {
		return nil, fmt.Errorf("%w: %s in %s", store.ErrKeyNotFound, strings.Join(keyValues, "/"), def.Info.File)
	}
	return matches.Record(0), nil
}

// NextID returns the next generated identifier for a table: its prefix
// followed by one more than the highest numeric suffix in use, at least
// three digits wide. Missing files start at 001.
func (s *Service) NextID(ctx context.Context, key string) (string, error) {
	def, err := s.Table(key)
	if err != nil {
		return "", err
	}
	prefix := def.Info.IDPrefix
	if prefix == "" {
		return "", fmt.Errorf("table %s does not generate ids", key)
	}

	col, err := s.store.QueryField(ctx, def.Info.File, def.Info.KeyColumns[0])
	if errors.Is(err, os.ErrNotExist) {
		return formatID(prefix, 1), nil
	}
	if err != nil {
		return "", err
	}

	return formatID(prefix, highestID(col.Values, prefix)+1), nil
}

// highestID returns the largest numeric suffix among values carrying prefix.
func highestID(values []string, prefix string) int {
	highest := 0
	for _, v := range values {
		rest, ok := strings.CutPrefix(v, prefix)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			continue
		}
		highest = max(highest, n)
	}
	return highest
}

func formatID(prefix string, n int) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}

// checkLayout reports whether a file header still carries the registered
// columns, with the key columns where the definition expects them.
func checkLayout(def TableDefinition, header []string) error {
	if _, err := ValidateHeaders(header, def.Info.Columns); err != nil {
		return err
	}
	for i, pos := range def.KeyIndexes() {
		if pos >= len(header) || !strings.EqualFold(strings.TrimSpace(header[pos]), def.Info.KeyColumns[i]) {
			return fmt.Errorf("%w: missing required column %s at position %d", ErrValidation, def.Info.KeyColumns[i], pos+1)
		}
	}
	return nil
}
