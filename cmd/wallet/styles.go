package main

import "github.com/charmbracelet/lipgloss"

var (
	// SuccessStyle formats success messages.
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	// WarningStyle formats budget advisories and other cautions.
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))
	// InfoStyle formats informational messages.
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#95E1D3"))
	// SubtleStyle formats less prominent text.
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	// HeaderStyle formats table headers.
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
)
