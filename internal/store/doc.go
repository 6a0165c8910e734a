// Package store implements a flat-file tabular store: CSV files treated as
// database tables.
//
// A Table is loaded whole into memory, derived into new Tables by the
// algebra functions (Filter, KeyJoin, Project, ExtractColumn, the sorts)
// and written back whole. Every Store operation reloads its file; nothing
// is cached between calls and nothing is locked.
//
// # File format
//
// The first line is the header. A UTF-8 byte-order mark on it is dropped and
// a trailing carriage return is stripped from every line, so LF and CRLF
// files both load. Fields are split on a single delimiter byte (',' by
// default). A double quote toggles a quoted region in which the delimiter is
// literal; quote characters are dropped from the cell and "" is not
// un-escaped. Once all but one column has been read, the rest of the line is
// taken verbatim as the last cell, delimiters and quotes included, so a
// trailing free-text column may contain commas.
//
// # Known limitation
//
// Writes never quote or escape. A cell containing the delimiter in any
// column other than the last will shift the following cells on the next
// read. Writers log a warning when they see one. Full rewrites truncate the
// file in place, so a crash mid-write can leave it partial or empty.
//
// # Errors
//
// Failures are reported with the sentinel errors in errors.go, matched with
// errors.Is. A nil *Table handed to an algebra function fails with
// ErrNoTable, so a failed load propagates through a pipeline without extra
// checks at each step.
package store
