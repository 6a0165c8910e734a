package core

// import.go bulk-loads records from an external file into a registered table.
//
// The incoming file uses the store's format. Its header is matched to the
// table by column name, so exports with reordered or extra columns load
// without editing. Each row goes through the same normalization as Add;
// rows that fail, or whose key already exists, are reported and skipped.
// Accepted rows are written with a single full rewrite.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/JonMunkholm/esports/internal/logging"
	"github.com/JonMunkholm/esports/internal/store"
)

// maxImportFailures caps how many rejected rows are described in a result.
const maxImportFailures = 50

// ImportOptions controls an import.
type ImportOptions struct {
	// DryRun analyzes the file without writing anything.
	DryRun bool

	// FailedFile, when set, receives every rejected input row with the
	// reason appended as a last "error" column.
	FailedFile string
}

// ImportFailure describes one rejected input row.
type ImportFailure struct {
	Row    int // 1-based data row number in the input
	RowKey string
	Errors []string
}

// ImportResult summarizes an import.
type ImportResult struct {
	TableKey        string
	TotalRows       int
	Inserted        int
	ErrorRows       int
	DuplicateInFile int
	Existing        int
	Failures        []ImportFailure // at most maxImportFailures
	DryRun          bool
	FailedFile      string // set when rejected rows were written out
	Duration        time.Duration
}

// Skipped returns the number of input rows that were not inserted.
func (r *ImportResult) Skipped() int {
	return r.TotalRows - r.Inserted
}

// Import loads rows from r into the table registered under key.
func (s *Service) Import(ctx context.Context, key string, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	log := logging.WithFields(ctx, "table", key, "dry_run", opts.DryRun)

	def, err := s.Table(key)
	if err != nil {
		return nil, err
	}

	incoming, err := store.Read(ctx, r, s.store.Delimiter())
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	headerIdx, err := ValidateHeaders(incoming.Columns(), requiredColumns(def))
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if _, err := s.store.EnsureHeader(ctx, def.Info.File, def.Info.Columns); err != nil {
			return nil, err
		}
	}
	current, err := s.loadForImport(ctx, def, opts.DryRun)
	if err != nil {
		return nil, err
	}

	keyIdx := def.KeyIndexes()
	existing := make(map[string]bool, current.Len())
	for _, row := range current.Rows() {
		existing[rowKey(row, keyIdx)] = true
	}
	nextID := 0
	if def.Info.IDPrefix != "" {
		used, err := store.ExtractColumn(current, def.Info.KeyColumns[0])
		if err != nil {
			return nil, err
		}
		given, err := store.ExtractColumn(incoming, incoming.Columns()[headerIdx[strings.ToLower(def.Info.KeyColumns[0])]])
		if err != nil {
			return nil, err
		}
		nextID = max(highestID(used.Values, def.Info.IDPrefix), highestID(given.Values, def.Info.IDPrefix)) + 1
	}

	result := &ImportResult{TableKey: key, TotalRows: incoming.Len(), DryRun: opts.DryRun}
	validator := NewRowValidator(def.FieldSpecs, MakeHeaderIndex(def.Info.Columns))
	seen := make(map[string]bool)
	var accepted, rejected [][]string
	reject := func(i int, key string, in []string, msgs ...string) {
		result.addFailure(i+1, key, msgs...)
		rejected = append(rejected, append(slices.Clone(in), strings.Join(msgs, "; ")))
	}

	for i, in := range incoming.Rows() {
		row := make([]string, len(def.Info.Columns))
		for j, c := range def.Info.Columns {
			if pos, ok := headerIdx[strings.ToLower(c)]; ok {
				row[j] = in[pos]
			}
		}
		if def.Info.IDPrefix != "" && len(keyIdx) == 1 && strings.TrimSpace(row[keyIdx[0]]) == "" {
			row[keyIdx[0]] = formatID(def.Info.IDPrefix, nextID)
			nextID++
		}

		normalized, vr := validator.NormalizeRow(row)
		if !vr.Valid {
			result.ErrorRows++
			msgs := make([]string, len(vr.Errors))
			for k, e := range vr.Errors {
				msgs[k] = e.Error()
			}
			reject(i, rowKey(row, keyIdx), in, msgs...)
			continue
		}
		if err := ValidateStorable(def.Info.Columns, normalized, s.store.Delimiter()); err != nil {
			result.ErrorRows++
			reject(i, rowKey(normalized, keyIdx), in, err.Error())
			continue
		}

		k := rowKey(normalized, keyIdx)
		switch {
		case existing[k]:
			result.Existing++
			reject(i, k, in, "key already exists in "+def.Info.File)
			continue
		case seen[k]:
			result.DuplicateInFile++
			reject(i, k, in, "key repeated earlier in the file")
			continue
		}
		seen[k] = true
		accepted = append(accepted, normalized)
	}
	result.Inserted = len(accepted)

	if !opts.DryRun && len(accepted) > 0 {
		merged := store.New(current.Columns(), append(current.Rows(), accepted...)...)
		if err := s.store.WriteFull(ctx, def.Info.File, merged); err != nil {
			return nil, err
		}
		s.LogAudit(ctx, AuditLogParams{
			Action:       ActionImport,
			TableKey:     key,
			RowsAffected: len(accepted),
			Detail: fmt.Sprintf("%d rows read, %d invalid, %d existing, %d repeated",
				result.TotalRows, result.ErrorRows, result.Existing, result.DuplicateInFile),
		})
	}

	if !opts.DryRun && opts.FailedFile != "" && len(rejected) > 0 {
		header := append(incoming.Columns(), "error")
		if err := writeRejected(opts.FailedFile, store.New(header, rejected...), s.store.Delimiter()); err != nil {
			return nil, err
		}
		result.FailedFile = opts.FailedFile
	}

	result.Duration = time.Since(start)
	log.Info("import finished",
		"rows", result.TotalRows,
		"inserted", result.Inserted,
		"skipped", result.Skipped(),
		"duration", result.Duration,
	)
	return result, nil
}

// loadForImport returns the current table. A dry run against a missing
// file sees an empty table instead of creating one.
func (s *Service) loadForImport(ctx context.Context, def TableDefinition, dryRun bool) (*store.Table, error) {
	if dryRun {
		if _, err := s.store.Load(ctx, def.Info.File); err != nil && isNotExist(err) {
			return store.New(def.Info.Columns), nil
		}
	}
	return s.loadChecked(ctx, def)
}

func (r *ImportResult) addFailure(row int, key string, msgs ...string) {
	if len(r.Failures) >= maxImportFailures {
		return
	}
	r.Failures = append(r.Failures, ImportFailure{Row: row, RowKey: key, Errors: msgs})
}

// requiredColumns returns the columns an import file must carry: the key
// columns and every required field.
func requiredColumns(def TableDefinition) []string {
	cols := slices.Clone(def.Info.KeyColumns)
	for _, spec := range def.FieldSpecs {
		if spec.Required && !slices.Contains(cols, spec.Name) {
			cols = append(cols, spec.Name)
		}
	}
	return cols
}

func writeRejected(path string, t *store.Table, delim byte) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w rejected rows: %w", store.ErrWrite, err)
	}
	if err := store.Write(f, t, delim); err != nil {
		f.Close()
		return fmt.Errorf("%w rejected rows: %w", store.ErrWrite, err)
	}
	return f.Close()
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

func rowKey(row []string, keyIdx []int) string {
	return strings.Join(pick(row, keyIdx), "/")
}
