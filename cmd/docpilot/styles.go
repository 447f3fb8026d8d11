package main

import "github.com/charmbracelet/lipgloss"

var (
	styleBold      = lipgloss.NewStyle().Bold(true)
	styleGreen     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleBoldGreen = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleGray      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarning   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	styleDiffAdded   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleDiffRemoved = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleDiffHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	styleDiffContext = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	styleModalBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("3")).
				Padding(1, 2)
)
