package store

import "errors"

// Sentinel errors returned by the store. Callers match them with errors.Is;
// the returned error carries the file or column name as context.
var (
	// ErrLoad reports a file that could not be opened or read as a table.
	ErrLoad = errors.New("load table")

	// ErrEmptyHeader reports a file with no usable header line. It is always
	// wrapped together with ErrLoad.
	ErrEmptyHeader = errors.New("empty or unparsable header")

	// ErrNoTable is returned when an algebra function receives a nil table.
	ErrNoTable = errors.New("no table")

	// ErrColumnNotFound reports a column name missing from a table's header.
	ErrColumnNotFound = errors.New("column not found")

	// ErrKeyNotFound reports a mutation or lookup that matched no rows.
	ErrKeyNotFound = errors.New("key not found")

	// ErrIndexOutOfRange reports a key column index outside the header or a
	// row index outside the table.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrColumnCount reports a replacement row whose width differs from the table's.
	ErrColumnCount = errors.New("column count mismatch")

	// ErrWrite reports a file that could not be created, opened or written.
	ErrWrite = errors.New("write table")
)
