// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file defines the shared lipgloss styles. Two palettes exist, one
// for light and one for dark terminals, selected by the persisted
// darkMode flag.
package tui // import "github.com/resvlab/resv/internal/tui"

import "github.com/charmbracelet/lipgloss"

// theme bundles the styles the views share.
type theme struct {
	Title     lipgloss.Style
	PaneTitle lipgloss.Style
	Pane      lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Special   lipgloss.Style
	Footer    lipgloss.Style
	Badge     lipgloss.Style
}

// themeFor builds the palette for the requested mode.
func themeFor(dark bool) theme {
	var (
		subtle    = lipgloss.Color("240")
		highlight = lipgloss.Color("27") // blue
		special   = lipgloss.Color("208")
		errColor  = lipgloss.Color("196")
		success   = lipgloss.Color("28")
		footerFg  = lipgloss.Color("240")
		footerBg  = lipgloss.Color("254")
	)
	if dark {
		highlight = lipgloss.Color("81")
		success = lipgloss.Color("40")
		footerFg = lipgloss.Color("241")
		footerBg = lipgloss.Color("236")
	}

	return theme{
		Title: lipgloss.NewStyle().
			Foreground(highlight).
			Bold(true).
			Padding(1, 2),
		PaneTitle: lipgloss.NewStyle().Bold(true),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtle).
			Padding(1, 2),
		Item:     lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Foreground(highlight),
		Help:     lipgloss.NewStyle().Foreground(subtle),
		Error:    lipgloss.NewStyle().Foreground(errColor),
		Success:  lipgloss.NewStyle().Foreground(success),
		Special:  lipgloss.NewStyle().Foreground(special),
		Footer: lipgloss.NewStyle().
			Foreground(footerFg).
			Background(footerBg).
			Padding(0, 1).
			Italic(true),
		Badge: lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("231")).
			Background(highlight),
	}
}
