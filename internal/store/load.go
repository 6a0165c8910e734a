package store

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/esports/internal/logging"
)

// utf8BOM is the byte-order mark some Windows editors prepend to CSV files.
const utf8BOM = "\xEF\xBB\xBF"

// maxLineSize bounds a single CSV line.
const maxLineSize = 1 << 20

// Read parses a whole CSV stream into a Table.
//
// The header is the first line, or the second when the first is empty.
// Blank data lines are skipped. Data lines are split to the header's width
// and padded with empty cells. Lines that produce no cells at all are
// skipped with a warning.
func Read(ctx context.Context, r io.Reader, delim byte) (*Table, error) {
	logger := logging.FromContext(ctx)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: read header: %w", ErrLoad, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmptyHeader)
	}
	header := sc.Text()
	if header == "" && !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: read header: %w", ErrLoad, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmptyHeader)
	}
	header = strings.TrimPrefix(sc.Text(), utf8BOM)
	header = strings.TrimSuffix(header, "\r")

	columns := SplitRow(header, delim, headerTokenLimit)
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "") {
		return nil, fmt.Errorf("%w: %w", ErrLoad, ErrEmptyHeader)
	}

	t := &Table{columns: columns}
	lineNo := 1
	for sc.Scan() {
		lineNo++
		line := strings.TrimSuffix(sc.Text(), "\r")
		if line == "" {
			continue
		}

		cells := SplitRow(line, delim, len(columns))
		if len(cells) == 0 {
			logger.Warn("skipping unparsable line", "line", lineNo)
			continue
		}
		t.appendRow(cells)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrLoad, lineNo+1, err)
	}

	return t, nil
}
