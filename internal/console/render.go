package console

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/esports/internal/store"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 2).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 2).Align(lipgloss.Center)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// RenderMenu lists options numbered from 1 under header.
func RenderMenu(header string, options []string) string {
	var b strings.Builder
	if header != "" {
		b.WriteString(titleStyle.Render(header))
		b.WriteString("\n")
	}
	for i, opt := range options {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, opt)
	}
	return b.String()
}

// Choose resolves input against options: either a 1-based number in range or
// an option label compared case-insensitively. The result is 1-based.
func Choose(input string, options []string) (int, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false
	}
	if ValidateInt(input) == nil {
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
			return n, true
		}
	}
	for i, opt := range options {
		if strings.EqualFold(input, strings.TrimSpace(opt)) {
			return i + 1, true
		}
	}
	return 0, false
}

// RenderTable draws t with a border and centred cells. Cells longer than
// maxWidth runes are cut and end in an ellipsis; maxWidth < 1 disables this.
func RenderTable(t *store.Table, maxWidth int) string {
	if t == nil || t.Width() == 0 {
		return "No data to display.\n"
	}

	headers := make([]string, 0, t.Width())
	for _, c := range t.Columns() {
		headers = append(headers, truncate(c, maxWidth))
	}
	rows := t.Rows()
	for _, row := range rows {
		for i := range row {
			row[i] = truncate(row[i], maxWidth)
		}
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return fmt.Sprintf("%s\n%d row(s)\n", tbl.Render(), t.Len())
}

func truncate(s string, max int) string {
	if max < 1 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
