package store

import "strings"

// DefaultDelimiter separates fields when no other delimiter is configured.
const DefaultDelimiter = ','

// headerTokenLimit bounds the number of columns read from a header line.
const headerTokenLimit = 256

// SplitRow splits line into at most n cells separated by delim.
//
// A '"' toggles a quoted region and is dropped; an unquoted delim ends the
// current cell. When n-1 cells have been produced the remainder of the line
// after that delimiter becomes the last cell verbatim. A line ending in an
// unquoted delimiter, or an empty line, yields a final empty cell. The result
// may hold fewer than n cells; padding is the caller's job. SplitRow returns
// nil when n < 1.
func SplitRow(line string, delim byte, n int) []string {
	if n < 1 {
		return nil
	}

	cells := make([]string, 0, n)
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == delim && !inQuotes:
			if len(cells) < n {
				cells = append(cells, buf.String())
			}
			buf.Reset()
			if len(cells) == n-1 {
				return append(cells, line[i+1:])
			}
		default:
			buf.WriteByte(c)
		}
	}

	if len(cells) < n {
		switch {
		case buf.Len() > 0:
			cells = append(cells, buf.String())
		case line == "":
			cells = append(cells, "")
		case line[len(line)-1] == delim && !inQuotes:
			cells = append(cells, "")
		}
	}

	return cells
}

// JoinRow joins cells with delim. No quoting is applied.
func JoinRow(cells []string, delim byte) string {
	return strings.Join(cells, string(delim))
}
