package application

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#06B6D4")
	accentColor    = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#94A3B8")

	bgDark   = lipgloss.Color("#0F172A")
	bgMedium = lipgloss.Color("#1E293B")
	bgLight  = lipgloss.Color("#334155")

	textPrimary   = lipgloss.Color("#F8FAFC")
	textSecondary = lipgloss.Color("#CBD5E1")
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(textPrimary).
			Bold(true).
			Padding(0, 2)

	crumbStyle = lipgloss.NewStyle().Foreground(textSecondary)

	itemStyle     = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(1).
			Foreground(secondaryColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(mutedColor)

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Background(accentColor).
			Foreground(bgDark).
			Bold(true).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Background(errorColor).
			Foreground(textPrimary).
			Bold(true).
			Padding(0, 1)

	errorTextStyle = lipgloss.NewStyle().Foreground(errorColor)

	statusBarStyle = lipgloss.NewStyle().
			Background(bgMedium).
			Foreground(textSecondary).
			Padding(0, 1)
)
