// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file contains the equipment browser: a paged, filterable list
// plus a detail pane with the availability window for one device.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/dateutil"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
	"github.com/resvlab/resv/internal/session"
)

const equipmentPageSize = 15

// equipmentViewState selects between the list and the detail pane.
type equipmentViewState int

const (
	equipmentListState equipmentViewState = iota
	equipmentDetailState
)

// equipmentPageMsg delivers one fetched page.
type equipmentPageMsg struct {
	list model.EquipmentList
}

// equipmentDetailMsg delivers one device plus its availability.
type equipmentDetailMsg struct {
	eq           model.Equipment
	availability model.Availability
	err          error
}

// equipmentModel holds the equipment browser state.
type equipmentModel struct {
	deps  Deps
	theme theme
	state equipmentViewState

	items  []model.Equipment
	total  int
	cursor int
	page   int

	filter      string
	isFiltering bool

	detail       model.Equipment
	availability model.Availability

	spin          spinner.Model
	width, height int
}

func newEquipmentModel(deps Deps, th theme, id string) *equipmentModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = th.Selected
	m := &equipmentModel{deps: deps, theme: th, spin: sp}
	if id != "" {
		m.state = equipmentDetailState
		m.detail.ID, _ = strconv.Atoi(id)
	}
	return m
}

func (m *equipmentModel) Init() tea.Cmd {
	if m.state == equipmentDetailState {
		return tea.Batch(m.spin.Tick, m.fetchDetailCmd(m.detail.ID))
	}
	return tea.Batch(m.spin.Tick, m.fetchPageCmd())
}

// fetchPageCmd loads the current page through the session store so the
// loading flag and fetch fencing apply.
func (m *equipmentModel) fetchPageCmd() tea.Cmd {
	sess := m.deps.Session
	q := api.EquipmentQuery{
		Skip:   m.page * equipmentPageSize,
		Limit:  equipmentPageSize,
		Search: m.filter,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return equipmentPageMsg{list: sess.FetchEquipments(ctx, q)}
	}
}

func (m *equipmentModel) fetchDetailCmd(id int) tea.Cmd {
	c := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		eq, err := c.GetEquipment(ctx, id)
		if err != nil {
			return equipmentDetailMsg{err: err}
		}
		// Availability for the coming week.
		now := time.Now()
		start := dateutil.FormatDate(now, "YYYY-MM-DD", false)
		end := dateutil.FormatDate(now.AddDate(0, 0, 7), "YYYY-MM-DD", false)
		avail, err := c.GetAvailability(ctx, id, start, end)
		if err != nil {
			avail = model.Availability{}
		}
		return equipmentDetailMsg{eq: eq, availability: avail}
	}
}

func (m *equipmentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case equipmentPageMsg:
		m.items = msg.list.Items
		m.total = msg.list.Total
		if m.cursor >= len(m.items) {
			m.cursor = 0
		}
		return m, nil
	case equipmentDetailMsg:
		if msg.err == nil {
			m.detail = msg.eq
			m.availability = msg.availability
		}
		return m, nil
	case tea.KeyMsg:
		if m.state == equipmentDetailState {
			switch msg.String() {
			case "q", "esc":
				m.state = equipmentListState
				return m, m.fetchPageCmd()
			case "r":
				return m, Navigate(fmt.Sprintf("/equipment/%d/reserve", m.detail.ID))
			}
			return m, nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *equipmentModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isFiltering {
		switch msg.Type {
		case tea.KeyEsc:
			m.isFiltering = false
			m.filter = ""
			m.page = 0
			return m, m.fetchPageCmd()
		case tea.KeyEnter:
			m.isFiltering = false
			m.page = 0
			return m, m.fetchPageCmd()
		case tea.KeyBackspace:
			if len(m.filter) > 0 {
				m.filter = m.filter[:len(m.filter)-1]
			}
		case tea.KeyRunes:
			m.filter += string(msg.Runes)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		return m, Navigate("/")
	case "/":
		m.isFiltering = true
		m.filter = ""
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
			return m, m.fetchPageCmd()
		}
	case "right", "l":
		if (m.page+1)*equipmentPageSize < m.total {
			m.page++
			return m, m.fetchPageCmd()
		}
	case "enter":
		if m.cursor < len(m.items) {
			return m, Navigate(fmt.Sprintf("/equipment/%d", m.items[m.cursor].ID))
		}
	}
	return m, nil
}

func (m *equipmentModel) View() string {
	if m.state == equipmentDetailState {
		return m.detailView()
	}
	return m.listView()
}

func (m *equipmentModel) listView() string {
	var rows []string
	if m.deps.Session.IsLoading(session.ResourceEquipment) {
		rows = append(rows, m.spin.View()+" "+i18n.T("common.loading"))
	}
	for i, eq := range m.items {
		line := fmt.Sprintf("%-30s %-14s %s", truncate(eq.Name, 30), truncate(eq.Category, 14), eq.Status)
		if m.cursor == i {
			rows = append(rows, m.theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, m.theme.Item.Render("  "+line))
		}
	}
	if len(m.items) == 0 && !m.deps.Session.IsLoading(session.ResourceEquipment) {
		rows = append(rows, m.theme.Help.Render("—"))
	}

	pages := (m.total + equipmentPageSize - 1) / equipmentPageSize
	status := fmt.Sprintf("%s: %d  %d/%d", i18n.T("common.total"), m.total, m.page+1, max(pages, 1))
	if m.isFiltering {
		status = "/" + m.filter + "▌"
	} else if m.filter != "" {
		status = "/" + m.filter + "  " + status
	}
	rows = append(rows, "", m.theme.Help.Render(status))

	return m.theme.Pane.Width(paneWidth(m.width)).Render(strings.Join(rows, "\n"))
}

func (m *equipmentModel) detailView() string {
	eq := m.detail
	var rows []string
	rows = append(rows, m.theme.PaneTitle.Render(eq.Name), "")
	rows = append(rows,
		i18n.T("equipment.category")+": "+eq.Category,
		i18n.T("equipment.location")+": "+eq.Location,
		i18n.T("equipment.status")+": "+eq.Status,
	)
	if len(m.availability.Slots) > 0 {
		rows = append(rows, "", m.theme.PaneTitle.Render(i18n.T("route.calendar")), "")
		for _, slot := range m.availability.Slots {
			mark := m.theme.Success.Render(i18n.T("equipment.available"))
			if !slot.Available {
				mark = m.theme.Special.Render(i18n.T("equipment.reserved"))
			}
			window := dateutil.FormatDate(slot.StartDatetime, "MM/DD HH:mm", true) +
				" → " + dateutil.FormatDate(slot.EndDatetime, "MM/DD HH:mm", true)
			rows = append(rows, fmt.Sprintf("%s  %s", window, mark))
		}
	}
	rows = append(rows, "", m.theme.Help.Render("r: "+i18n.T("route.reservation_form")+"  esc: "+i18n.T("common.back")))
	return m.theme.Pane.Width(paneWidth(m.width)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func paneWidth(w int) int {
	if w <= 0 {
		return 76
	}
	if w > 100 {
		return 96
	}
	return w - 4
}
