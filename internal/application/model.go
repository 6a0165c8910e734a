package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/esports/internal/core"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type viewState int

const (
	viewMenu viewState = iota
	viewForm
	viewConfirm
	viewRunning
	viewResult
)

// Model is the bubbletea model behind Run.
type Model struct {
	ctx  context.Context
	svc  *core.Service
	opts Options
	keys keyMap

	current *Menu
	cursor  int

	action  *Action
	title   string
	inputs  []textinput.Model
	focus   int
	formErr string
	pending []string

	spinner     spinner.Model
	resultTable table.Model
	help        help.Model
	showHelp    bool

	state  viewState
	output Output
	err    error
	status string

	width  int
	height int
}

func NewModel(ctx context.Context, svc *core.Service, opts Options) Model {
	if opts.MaxColumnWidth < 1 {
		opts.MaxColumnWidth = 30
	}

	t := table.New(
		table.WithColumns([]table.Column{{Title: "Results", Width: 20}}),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(bgLight).
		BorderBottom(true).
		Bold(true).
		Foreground(primaryColor)
	s.Selected = s.Selected.
		Foreground(bgDark).
		Background(secondaryColor).
		Bold(false)
	t.SetStyles(s)

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		ctx:         ctx,
		svc:         svc,
		opts:        opts,
		keys:        keys,
		current:     buildMenuTree(svc),
		spinner:     sp,
		resultTable: t,
		help:        help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case DoneMsg:
		m.state = viewResult
		m.output = Output{Message: string(msg)}
		m.err = nil
		m.status = string(msg)
		return m, nil

	case ResultMsg:
		m.state = viewResult
		m.output = msg.Output
		m.err = nil
		m.status = msg.Output.Message
		m.setResultTable()
		return m, nil

	case ErrMsg:
		m.state = viewResult
		m.output = Output{}
		m.err = msg.Err
		m.status = "Last action failed"
		return m, nil

	case spinner.TickMsg:
		if m.state != viewRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		switch m.state {
		case viewMenu:
			return m.updateMenu(msg)
		case viewForm:
			return m.updateForm(msg)
		case viewConfirm:
			return m.updateConfirm(msg)
		case viewResult:
			return m.updateResult(msg)
		}
		return m, nil
	}

	if m.state == viewForm {
		return m.updateInput(msg)
	}
	return m, nil
}

/* ----------------------------------------
	MENU
---------------------------------------- */

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.current.Items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Back):
		if m.current.Parent != nil {
			m.current = m.current.Parent
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Select):
		return m.selectItem(m.current.Items[m.cursor])
	}
	return m, nil
}

func (m Model) selectItem(item MenuItem) (tea.Model, tea.Cmd) {
	switch {
	case item.Label == exitLabel:
		return m, tea.Quit
	case item.Submenu != nil:
		m.current = item.Submenu
		m.cursor = 0
		return m, nil
	case item.Action != nil:
		return m.startAction(item)
	}
	return m, nil
}

func (m Model) startAction(item MenuItem) (tea.Model, tea.Cmd) {
	m.action = item.Action
	m.title = strings.TrimSuffix(item.Label, " ->")
	m.formErr = ""
	m.pending = nil

	fields := m.action.Fields
	if len(fields) == 0 {
		if m.action.Confirm != "" {
			m.state = viewConfirm
			return m, nil
		}
		return m.run(nil)
	}

	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = "› "
		ti.Placeholder = f.Hint
		ti.CharLimit = 512
		ti.Width = 48
		ti.Cursor.SetMode(cursor.CursorStatic)
		m.inputs[i] = ti
	}
	m.focus = 0
	m.state = viewForm
	return m, m.inputs[0].Focus()
}

/* ----------------------------------------
	FORM
---------------------------------------- */

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.inputs)
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state = viewMenu
		m.inputs = nil
		return m, nil
	case key.Matches(msg, m.keys.Select):
		f := m.action.Fields[m.focus]
		if err := f.check(strings.TrimSpace(m.inputs[m.focus].Value())); err != nil {
			m.formErr = fmt.Sprintf("%s: %v", f.Label, err)
			return m, nil
		}
		m.formErr = ""
		if m.focus < n-1 {
			cmd := m.focusField(m.focus + 1)
			return m, cmd
		}
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		cmd := m.focusField((m.focus + 1) % n)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.focusField((m.focus - 1 + n) % n)
		return m, cmd
	}
	return m.updateInput(msg)
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) focusField(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m Model) values() []string {
	values := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		values[i] = strings.TrimSpace(in.Value())
	}
	return values
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	values := m.values()
	for i, f := range m.action.Fields {
		if err := f.check(values[i]); err != nil {
			m.formErr = fmt.Sprintf("%s: %v", f.Label, err)
			cmd := m.focusField(i)
			return m, cmd
		}
	}
	if m.action.Confirm != "" {
		m.pending = values
		m.state = viewConfirm
		return m, nil
	}
	return m.run(values)
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		return m.run(m.pending)
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Back):
		m.state = viewMenu
		m.inputs = nil
		m.status = "Cancelled"
	}
	return m, nil
}

func (m Model) run(values []string) (tea.Model, tea.Cmd) {
	m.state = viewRunning
	m.inputs = nil
	return m, tea.Batch(m.spinner.Tick, runAction(m.ctx, m.action, values))
}

/* ----------------------------------------
	RESULT
---------------------------------------- */

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Select):
		m.state = viewMenu
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	}
	var cmd tea.Cmd
	m.resultTable, cmd = m.resultTable.Update(msg)
	return m, cmd
}

func (m *Model) setResultTable() {
	t := m.output.Table
	if t == nil || t.Width() == 0 {
		return
	}

	rows := t.Rows()
	columns := make([]table.Column, t.Width())
	for i, name := range t.Columns() {
		columns[i] = table.Column{Title: name, Width: m.columnWidth(name, i, rows)}
	}
	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	// Old rows must never render against the new columns.
	m.resultTable.SetRows(nil)
	m.resultTable.SetColumns(columns)
	m.resultTable.SetRows(tableRows)
	m.resultTable.GotoTop()
}

func (m Model) columnWidth(name string, index int, rows [][]string) int {
	const minWidth = 4
	width := lipgloss.Width(name) + 2
	for _, row := range rows {
		if w := lipgloss.Width(row[index]) + 2; w > width {
			width = w
		}
	}
	return max(minWidth, min(width, m.opts.MaxColumnWidth))
}

// updateLayout adjusts component sizes based on window size
func (m *Model) updateLayout() {
	if h := m.height - 12; h > 3 {
		m.resultTable.SetHeight(h)
	}
	if m.width > 4 {
		m.resultTable.SetWidth(m.width - 4)
		m.help.Width = m.width - 4
	}
}

/* ----------------------------------------
	VIEW
---------------------------------------- */

func (m Model) View() string {
	sections := []string{m.renderHeader()}

	switch m.state {
	case viewMenu:
		sections = append(sections, m.renderMenu())
	case viewForm:
		sections = append(sections, m.renderForm())
	case viewConfirm:
		sections = append(sections, m.renderConfirm())
	case viewRunning:
		sections = append(sections, m.renderRunning())
	case viewResult:
		sections = append(sections, m.renderResult())
	}

	sections = append(sections, m.renderStatusBar())
	m.help.ShowAll = m.showHelp
	sections = append(sections, m.help.View(m.keys))

	return appStyle.Render(strings.Join(sections, "\n\n"))
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("Esports Tournament Manager")
	crumbs := crumbStyle.Render(strings.Join(m.current.Path(), " / "))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", crumbs)
}

func (m Model) renderMenu() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.current.Title))
	b.WriteString("\n")
	for i, item := range m.current.Items {
		b.WriteString("\n")
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + item.Label))
			continue
		}
		b.WriteString(itemStyle.Render(item.Label))
	}
	return b.String()
}

func (m Model) renderForm() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.title))
	for i, f := range m.action.Fields {
		b.WriteString("\n\n")
		label := f.Label
		if i == m.focus {
			label = labelStyle.Render(label)
		}
		b.WriteString(label)
		if f.Hint != "" {
			b.WriteString(" " + hintStyle.Render(f.Hint))
		}
		if f.Optional {
			b.WriteString(" " + hintStyle.Render("[optional]"))
		}
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
	}
	if m.formErr != "" {
		b.WriteString("\n\n")
		b.WriteString(errorTextStyle.Render(m.formErr))
	}
	return formStyle.Render(b.String())
}

func (m Model) renderConfirm() string {
	return fmt.Sprintf("%s\n\n%s %s",
		labelStyle.Render(m.title),
		m.action.Confirm,
		hintStyle.Render("(y/n)"),
	)
}

func (m Model) renderRunning() string {
	return lipgloss.NewStyle().
		Foreground(primaryColor).
		Render(m.spinner.View() + " Working on " + m.title + "...")
}

func (m Model) renderResult() string {
	if m.err != nil {
		return errorStyle.Render(" ERROR ") + " " + errorTextStyle.Render(core.FormatUserError(m.err))
	}

	var parts []string
	if m.output.Message != "" {
		parts = append(parts, successStyle.Render(" ✓ ")+" "+m.output.Message)
	}
	if t := m.output.Table; t != nil {
		header := labelStyle.Render(fmt.Sprintf("%s (%d row(s))", m.output.Title, t.Len()))
		parts = append(parts, header, m.resultTable.View())
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderStatusBar() string {
	content := "Data: " + m.svc.Store().Dir()
	if op := core.OperatorFromContext(m.ctx); op != "" {
		content += " | Operator: " + op
	}
	if m.status != "" {
		content += " | " + m.status
	}
	bar := statusBarStyle
	if m.width > 4 {
		bar = bar.Width(m.width - 4)
	}
	return bar.Render(content)
}
