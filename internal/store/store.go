package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/esports/internal/logging"
)

// Store reads and writes table files in one directory.
type Store struct {
	dir   string
	delim byte
}

// Option configures a Store.
type Option func(*Store)

// WithDelimiter sets the field delimiter. The zero byte keeps the default.
func WithDelimiter(d byte) Option {
	return func(s *Store) {
		if d != 0 {
			s.delim = d
		}
	}
}

// NewStore returns a Store rooted at dir. The directory need not exist yet.
func NewStore(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, delim: DefaultDelimiter}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Dir returns the directory table files live in.
func (s *Store) Dir() string { return s.dir }

// Delimiter returns the field delimiter.
func (s *Store) Delimiter() byte { return s.delim }

// Path returns the file path for a table file name. Absolute names are
// returned unchanged.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Load reads the named file into a Table. A cancelled or expired ctx stops
// it before the file is opened.
func (s *Store) Load(ctx context.Context, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrLoad, name, err)
	}
	defer f.Close()

	t, err := Read(ctx, f, s.delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logging.FromContext(ctx).Debug("table loaded",
		"file", name,
		"columns", t.Width(),
		"rows", t.Len(),
	)
	return t, nil
}

// Search loads the named file and keeps rows whose column equals value.
func (s *Store) Search(ctx context.Context, name, column, value string) (*Table, error) {
	t, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return Filter(t, column, value)
}

// SearchTwo loads the named file and keeps rows matching both column/value pairs.
func (s *Store) SearchTwo(ctx context.Context, name, column1, value1, column2, value2 string) (*Table, error) {
	t, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return FilterTwo(t, column1, value1, column2, value2)
}

// QueryKey returns the first row whose first column equals key.
func (s *Store) QueryKey(ctx context.Context, name, key string) (*Record, error) {
	t, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	for i, row := range t.rows {
		if len(row) > 0 && row[0] == key {
			return t.Record(i), nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %s", ErrKeyNotFound, key, name)
}

// QueryField returns every value of one column in the named file.
func (s *Store) QueryField(ctx context.Context, name, column string) (*Column, error) {
	t, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return ExtractColumn(t, column)
}
