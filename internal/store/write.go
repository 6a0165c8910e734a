package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/esports/internal/logging"
)

// Write serializes t as delimited lines: the header, then one line per row,
// each terminated by '\n'. Cells are written as-is.
func Write(w io.Writer, t *Table, delim byte) error {
	if t == nil {
		return ErrNoTable
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(JoinRow(t.columns, delim) + "\n"); err != nil {
		return err
	}
	for _, row := range t.rows {
		if _, err := bw.WriteString(JoinRow(row, delim) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFull replaces the named file's contents with t. The file is
// truncated in place; a failure part way leaves it partially written.
// Nothing is written once ctx is done.
func (s *Store) WriteFull(ctx context.Context, name string, t *Table) error {
	if t == nil {
		return ErrNoTable
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := s.ensureDir(ctx); err != nil {
		return err
	}
	s.warnUnsafeCells(ctx, name, t.columns)
	for _, row := range t.rows {
		s.warnUnsafeCells(ctx, name, row)
	}

	f, err := os.Create(s.Path(name))
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}
	if err := Write(f, t, s.delim); err != nil {
		f.Close()
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}
	return nil
}

// AppendRow adds one line to the end of the named file, creating it if
// needed. Only the file's last byte is inspected, to start on a fresh line;
// the header and column count are not checked.
func (s *Store) AppendRow(ctx context.Context, name string, cells []string) error {
	if err := s.ensureDir(ctx); err != nil {
		return err
	}
	s.warnUnsafeCells(ctx, name, cells)

	f, err := os.OpenFile(s.Path(name), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}

	line := JoinRow(cells, s.delim) + "\n"
	if missing, err := missingFinalNewline(f); err != nil {
		f.Close()
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	} else if missing {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}
	return nil
}

// EnsureHeader writes headers as the only line of the named file when the
// file is missing or empty. It reports whether it wrote anything.
func (s *Store) EnsureHeader(ctx context.Context, name string, headers []string) (bool, error) {
	info, err := os.Stat(s.Path(name))
	switch {
	case err == nil && info.Size() > 0:
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}

	if err := s.WriteFull(ctx, name, New(headers)); err != nil {
		return false, err
	}
	logging.FromContext(ctx).Info("table file initialized", "file", name, "columns", len(headers))
	return true, nil
}

/* ---- READ-MODIFY-WRITE ---- */

// UpdateByKey replaces every row whose cell at keyIndex equals key with
// newRow and rewrites the file. It returns the number of rows replaced.
func (s *Store) UpdateByKey(ctx context.Context, name, key string, keyIndex int, newRow []string) (int, error) {
	return s.rewrite(ctx, name, []keyMatch{{key, keyIndex}}, newRow)
}

// UpdateByTwoKeys is UpdateByKey requiring equality on two columns.
func (s *Store) UpdateByTwoKeys(ctx context.Context, name, key1 string, index1 int, key2 string, index2 int, newRow []string) (int, error) {
	return s.rewrite(ctx, name, []keyMatch{{key1, index1}, {key2, index2}}, newRow)
}

// DeleteByKey drops every row whose cell at keyIndex equals key, keeping the
// order of the rest, and rewrites the file. It returns the number of rows
// removed.
func (s *Store) DeleteByKey(ctx context.Context, name, key string, keyIndex int) (int, error) {
	return s.rewrite(ctx, name, []keyMatch{{key, keyIndex}}, nil)
}

// DeleteByTwoKeys is DeleteByKey requiring equality on two columns.
func (s *Store) DeleteByTwoKeys(ctx context.Context, name, key1 string, index1 int, key2 string, index2 int) (int, error) {
	return s.rewrite(ctx, name, []keyMatch{{key1, index1}, {key2, index2}}, nil)
}

// UpdateFieldByKey sets column to value in the first row whose first column
// equals key and rewrites the file.
func (s *Store) UpdateFieldByKey(ctx context.Context, name, key, column, value string) error {
	t, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	idx, err := t.index(column)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	for _, row := range t.rows {
		if row[0] == key {
			row[idx] = value
			return s.WriteFull(ctx, name, t)
		}
	}
	return fmt.Errorf("%w: %q in %s", ErrKeyNotFound, key, name)
}

type keyMatch struct {
	value string
	index int
}

// rewrite loads name, replaces (newRow != nil) or drops (newRow == nil)
// every row matching all keys, and writes the result back. Nothing is
// written when no row matches.
func (s *Store) rewrite(ctx context.Context, name string, keys []keyMatch, newRow []string) (int, error) {
	t, err := s.Load(ctx, name)
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if k.index < 0 || k.index >= t.Width() {
			return 0, fmt.Errorf("%s: index %d of %d columns: %w", name, k.index, t.Width(), ErrIndexOutOfRange)
		}
	}
	if newRow != nil && len(newRow) != t.Width() {
		return 0, fmt.Errorf("%s: got %d cells, want %d: %w", name, len(newRow), t.Width(), ErrColumnCount)
	}

	kept := make([][]string, 0, len(t.rows))
	matched := 0
	for _, row := range t.rows {
		if !matchesAll(row, keys) {
			kept = append(kept, row)
			continue
		}
		matched++
		if newRow != nil {
			kept = append(kept, append([]string(nil), newRow...))
		}
	}

	if matched == 0 {
		return 0, fmt.Errorf("%w: %s in %s", ErrKeyNotFound, describeKeys(keys), name)
	}

	t.rows = kept
	if err := s.WriteFull(ctx, name, t); err != nil {
		return 0, err
	}

	op := "update"
	if newRow == nil {
		op = "delete"
	}
	logging.WithFields(ctx, "file", name, "operation", op).Debug("table rewritten", "rows", matched)
	return matched, nil
}

func matchesAll(row []string, keys []keyMatch) bool {
	for _, k := range keys {
		if row[k.index] != k.value {
			return false
		}
	}
	return true
}

func describeKeys(keys []keyMatch) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q at column %d", k.value, k.index)
	}
	return strings.Join(parts, " and ")
}

// ensureDir creates the store directory if it does not exist.
func (s *Store) ensureDir(ctx context.Context) error {
	if s.dir == "" || isDir(s.dir) {
		return nil
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create data directory %s: %w", ErrWrite, s.dir, err)
	}
	logging.FromContext(ctx).Info("data directory created", "dir", s.dir)
	return nil
}

// warnUnsafeCells logs cells that will not read back as written: the
// delimiter or a quote in any cell but the last.
func (s *Store) warnUnsafeCells(ctx context.Context, name string, cells []string) {
	for i := 0; i < len(cells)-1; i++ {
		if strings.IndexByte(cells[i], s.delim) >= 0 || strings.IndexByte(cells[i], '"') >= 0 {
			logging.FromContext(ctx).Warn("cell contains delimiter or quote and will not round-trip",
				"file", name,
				"column", i,
				"value", cells[i],
			)
		}
	}
}

// missingFinalNewline reports whether a non-empty file lacks a trailing
// newline, so an appended line would join the last one.
func missingFinalNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	b := make([]byte, 1)
	if _, err := f.ReadAt(b, info.Size()-1); err != nil {
		return false, err
	}
	return b[0] != '\n', nil
}
