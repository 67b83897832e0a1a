package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleProgress = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	styleQuestion = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(1, 2).
			MarginBottom(1)
	styleChoice    = lipgloss.NewStyle().PaddingLeft(4)
	styleSelected  = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170")).Bold(true)
	styleButton    = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("33")).Padding(0, 2)
	styleSubtle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleAlertBox  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 3)
	styleAlertHead = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	styleCorrect   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleIncorrect = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)
