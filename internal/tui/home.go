// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file contains the home view: the navigation menu on the left,
// announcements and a statistics summary on the right. The statistics
// poll goes through the silent-path pipeline so it degrades quietly
// while logged out.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
	"github.com/resvlab/resv/internal/routes"
)

const statsPollInterval = 30 * time.Second

// homeDataMsg carries the home view's fetched data.
type homeDataMsg struct {
	announcements []model.Announcement
	stats         api.Statistics
}

// statsTickMsg re-arms the statistics poll.
type statsTickMsg struct{}

// menuEntry pairs a display label with its navigation target.
type menuEntry struct {
	label  string
	target string
}

// homeModel holds the home view state.
type homeModel struct {
	deps    Deps
	theme   theme
	cursor  int
	entries []menuEntry

	announcements []model.Announcement
	stats         api.Statistics
	width, height int
}

func newHomeModel(deps Deps, th theme) *homeModel {
	entries := []menuEntry{
		{i18n.T("menu.browse_equipment"), "/equipment"},
		{i18n.T("menu.find_reservation"), "/reservation/query"},
		{i18n.T("menu.admin_console"), routes.DashboardPath},
	}
	return &homeModel{deps: deps, theme: th, entries: entries}
}

// Init loads announcements and statistics and arms the poll timer.
func (m *homeModel) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), statsTick())
}

func statsTick() tea.Cmd {
	return tea.Tick(statsPollInterval, func(time.Time) tea.Msg { return statsTickMsg{} })
}

// fetchCmd loads the home data in one command. Failures return empty
// data; the pipeline already notified (or silenced) them.
func (m *homeModel) fetchCmd() tea.Cmd {
	c := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		anns, err := c.ListAnnouncements(ctx, 0, 5)
		if err != nil {
			anns = nil
		}
		stats, err := c.GetStatistics(ctx)
		if err != nil {
			stats = nil
		}
		return homeDataMsg{announcements: anns, stats: stats}
	}
}

func (m *homeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case homeDataMsg:
		m.announcements = msg.announcements
		m.stats = msg.stats
		return m, nil
	case statsTickMsg:
		return m, tea.Batch(m.fetchCmd(), statsTick())
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case "enter":
			return m, Navigate(m.entries[m.cursor].target)
		}
	}
	return m, nil
}

func (m *homeModel) View() string {
	var menuItems []string
	menuItems = append(menuItems, m.theme.PaneTitle.Render(i18n.T("common.app_name")), "")
	for i, e := range m.entries {
		if m.cursor == i {
			menuItems = append(menuItems, m.theme.Selected.Render("▸ "+e.label))
		} else {
			menuItems = append(menuItems, m.theme.Item.Render("  "+e.label))
		}
	}
	menuItems = append(menuItems, "", m.theme.Help.Render("ctrl+l "+i18n.T("menu.language")))
	menuPane := m.theme.Pane.Width(34).Render(lipgloss.JoinVertical(lipgloss.Left, menuItems...))

	var right []string
	right = append(right, m.theme.PaneTitle.Render(i18n.T("menu.announcements")), "")
	if len(m.announcements) == 0 {
		right = append(right, m.theme.Help.Render("—"))
	}
	for _, a := range m.announcements {
		right = append(right, m.theme.Selected.Render(a.Title))
		right = append(right, m.theme.Help.Render(truncate(a.Content, 60)))
	}

	if len(m.stats) > 0 {
		right = append(right, "", m.theme.PaneTitle.Render(i18n.T("common.total")), "")
		right = append(right, fmt.Sprintf("%s: %d",
			i18n.T("route.equipment_list"), m.stats.Count("equipment_count")))
		right = append(right, fmt.Sprintf("%s: %d",
			i18n.T("route.admin_reservation"), m.stats.Count("reservation_count")))
	}
	rightWidth := m.width - 34 - 8
	if rightWidth < 30 {
		rightWidth = 40
	}
	rightPane := m.theme.Pane.Width(rightWidth).MarginLeft(2).
		Render(lipgloss.JoinVertical(lipgloss.Left, right...))

	return lipgloss.JoinHorizontal(lipgloss.Top, menuPane, rightPane)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
