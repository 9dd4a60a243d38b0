// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file contains the admin console: dashboard, reservation
// management with export, announcement management, equipment and
// category management, and system settings. All of these routes sit
// behind the guard; unauthenticated access never reaches here.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/dateutil"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
	"github.com/resvlab/resv/internal/routes"
	"github.com/resvlab/resv/internal/session"
)

const adminPageSize = 15

// adminDataMsg delivers whatever the active admin tab fetched.
type adminDataMsg struct {
	reservations  model.ReservationList
	announcements []model.Announcement
	equipments    model.EquipmentList
	categories    []model.Category
	settings      model.Settings
	detail        model.Reservation
	stats         api.Statistics
}

// exportDoneMsg reports where the export blob was written.
type exportDoneMsg struct {
	path string
	err  error
}

// adminModel drives all admin console tabs; routeName selects which.
type adminModel struct {
	deps      Deps
	theme     theme
	routeName string
	params    map[string]string

	reservations  []model.Reservation
	total         int
	announcements []model.Announcement
	equipments    []model.Equipment
	categories    []model.Category
	settings      model.Settings
	detail        model.Reservation
	stats         api.Statistics

	cursor int
	page   int
	status string
	width  int
}

func newAdminModel(deps Deps, th theme, routeName string, params map[string]string) *adminModel {
	return &adminModel{deps: deps, theme: th, routeName: routeName, params: params}
}

func (m *adminModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m *adminModel) fetchCmd() tea.Cmd {
	deps := m.deps
	name := m.routeName
	page := m.page
	code := m.params["code"]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		switch name {
		case routes.NameAdminDashboard:
			stats, _ := deps.API.GetStatistics(ctx)
			list := deps.Session.FetchReservations(ctx, api.ReservationQuery{Limit: 5})
			return adminDataMsg{stats: stats, reservations: list}
		case routes.NameAdminReservation:
			list := deps.Session.FetchReservations(ctx, api.ReservationQuery{
				Skip:  page * adminPageSize,
				Limit: adminPageSize,
			})
			return adminDataMsg{reservations: list}
		case routes.NameAdminReservationDetail:
			out, _ := deps.API.GetReservationByCode(ctx, code, api.Ref{})
			return adminDataMsg{detail: out.Data}
		case routes.NameAdminAnnouncement:
			anns, _ := deps.API.AllAnnouncements(ctx, 0, 50)
			return adminDataMsg{announcements: anns}
		case routes.NameAdminEquipment:
			list, _ := deps.API.ListEquipment(ctx, api.EquipmentQuery{
				Skip:  page * adminPageSize,
				Limit: adminPageSize,
			})
			return adminDataMsg{equipments: list}
		case routes.NameAdminCategory:
			cats, _ := deps.API.AllCategories(ctx)
			return adminDataMsg{categories: cats}
		case routes.NameAdminSettings:
			settings := deps.Session.FetchSettings(ctx)
			return adminDataMsg{settings: settings}
		}
		return adminDataMsg{}
	}
}

// exportCmd downloads the reservation export and writes it next to the
// working directory. The response is an opaque blob; it is never
// decoded, only written.
func (m *adminModel) exportCmd() tea.Cmd {
	c := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		blob, err := c.ExportReservations(ctx, api.ExportRequest{
			ExportFormat: "excel",
			ExportScope:  "all",
		})
		if err != nil {
			return exportDoneMsg{err: err}
		}
		path := fmt.Sprintf("reservations_%s.xlsx", time.Now().Format("20060102_150405"))
		if err := os.WriteFile(path, blob, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

func (m *adminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case adminDataMsg:
		m.reservations = msg.reservations.Items
		m.total = msg.reservations.Total
		m.announcements = msg.announcements
		m.equipments = msg.equipments.Items
		m.categories = msg.categories
		m.settings = msg.settings
		m.detail = msg.detail
		m.stats = msg.stats
		if m.cursor >= m.rowCount() {
			m.cursor = 0
		}
		return m, nil
	case exportDoneMsg:
		if msg.err != nil {
			m.status = m.theme.Error.Render(msg.err.Error())
		} else {
			m.status = m.theme.Success.Render(i18n.T("reservation.export_done") + ": " + msg.path)
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *adminModel) rowCount() int {
	switch m.routeName {
	case routes.NameAdminReservation, routes.NameAdminDashboard:
		return len(m.reservations)
	case routes.NameAdminAnnouncement:
		return len(m.announcements)
	case routes.NameAdminEquipment:
		return len(m.equipments)
	case routes.NameAdminCategory:
		return len(m.categories)
	}
	return 0
}

func (m *adminModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.routeName == routes.NameAdminDashboard {
			return m, Navigate("/")
		}
		return m, Navigate(routes.DashboardPath)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
			return m, m.fetchCmd()
		}
	case "right", "l":
		if (m.page+1)*adminPageSize < m.total {
			m.page++
			return m, m.fetchCmd()
		}
	case "e":
		if m.routeName == routes.NameAdminReservation {
			return m, m.exportCmd()
		}
	case "1":
		return m, Navigate(routes.DashboardPath)
	case "2":
		return m, Navigate("/admin/reservation")
	case "3":
		return m, Navigate("/admin/equipment")
	case "4":
		return m, Navigate("/admin/category")
	case "5":
		return m, Navigate("/admin/announcement")
	case "6":
		return m, Navigate("/admin/settings")
	case "7":
		return m, Navigate("/admin/db-viewer")
	case "enter":
		if m.routeName == routes.NameAdminReservation && m.cursor < len(m.reservations) {
			return m, Navigate("/admin/reservation/" + m.reservations[m.cursor].ReservationCode)
		}
	case "L":
		m.deps.Session.Logout(context.Background())
		return m, Navigate("/")
	}
	return m, nil
}

func (m *adminModel) View() string {
	var body string
	switch m.routeName {
	case routes.NameAdminDashboard:
		body = m.dashboardView()
	case routes.NameAdminReservation:
		body = m.reservationsView()
	case routes.NameAdminReservationDetail:
		body = m.detailView()
	case routes.NameAdminAnnouncement:
		body = m.announcementsView()
	case routes.NameAdminEquipment:
		body = m.equipmentsView()
	case routes.NameAdminCategory:
		body = m.categoriesView()
	case routes.NameAdminSettings:
		body = m.settingsView()
	}

	tabs := m.theme.Help.Render("1-7: " + i18n.T("menu.admin_console") + "  L: " + i18n.T("menu.logout"))
	if m.status != "" {
		tabs = m.status + "  " + tabs
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Pane.Width(paneWidth(m.width)).Render(body), tabs)
}

func (m *adminModel) dashboardView() string {
	var rows []string
	rows = append(rows, m.theme.PaneTitle.Render(i18n.T("route.admin_dashboard")), "")
	if len(m.stats) > 0 {
		keys := make([]string, 0, len(m.stats))
		for k := range m.stats {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			rows = append(rows, fmt.Sprintf("%-28s %v", k, m.stats[k]))
		}
		rows = append(rows, "")
	}
	rows = append(rows, m.theme.PaneTitle.Render(i18n.T("route.admin_reservation")), "")
	rows = append(rows, m.reservationRows()...)
	return strings.Join(rows, "\n")
}

func (m *adminModel) reservationRows() []string {
	var rows []string
	if m.deps.Session.IsLoading(session.ResourceReservations) {
		rows = append(rows, m.theme.Help.Render(i18n.T("common.loading")))
	}
	for i, r := range m.reservations {
		start := dateutil.FormatDate(r.StartDatetime, "MM/DD HH:mm", true)
		line := fmt.Sprintf("%-18s %-20s %-12s %s", r.ReservationNumber, truncate(r.EquipmentName, 20), truncate(r.UserName, 12), start)
		if m.cursor == i {
			rows = append(rows, m.theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(m.reservations) == 0 {
		rows = append(rows, m.theme.Help.Render("—"))
	}
	return rows
}

func (m *adminModel) reservationsView() string {
	rows := m.reservationRows()
	pages := (m.total + adminPageSize - 1) / adminPageSize
	rows = append(rows, "", m.theme.Help.Render(fmt.Sprintf(
		"%s: %d  %d/%d  e: %s", i18n.T("common.total"), m.total, m.page+1, max(pages, 1), "export")))
	return strings.Join(rows, "\n")
}

func (m *adminModel) detailView() string {
	r := m.detail
	period := dateutil.FormatDate(r.StartDatetime, "YYYY/MM/DD HH:mm", true) +
		" → " + dateutil.FormatDate(r.EndDatetime, "YYYY/MM/DD HH:mm", true)
	return strings.Join([]string{
		m.theme.PaneTitle.Render(r.ReservationNumber),
		"",
		i18n.T("reservation.code") + ": " + r.ReservationCode,
		i18n.T("reservation.equipment") + ": " + r.EquipmentName,
		i18n.T("reservation.user") + ": " + r.UserName + " / " + r.UserDepartment + " / " + r.UserContact,
		i18n.T("reservation.period") + ": " + period,
		i18n.T("reservation.status") + ": " + r.Status,
	}, "\n")
}

func (m *adminModel) announcementsView() string {
	var rows []string
	for i, a := range m.announcements {
		mark := m.theme.Success.Render("●")
		if !a.IsActive {
			mark = m.theme.Help.Render("○")
		}
		line := mark + " " + truncate(a.Title, 50)
		if m.cursor == i {
			rows = append(rows, m.theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, m.theme.Help.Render("—"))
	}
	return strings.Join(rows, "\n")
}

func (m *adminModel) equipmentsView() string {
	var rows []string
	for i, eq := range m.equipments {
		line := fmt.Sprintf("%-30s %-14s %s", truncate(eq.Name, 30), truncate(eq.Category, 14), eq.Status)
		if m.cursor == i {
			rows = append(rows, m.theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, m.theme.Help.Render("—"))
	}
	return strings.Join(rows, "\n")
}

func (m *adminModel) categoriesView() string {
	var rows []string
	for i, c := range m.categories {
		line := fmt.Sprintf("%-24s %s", c.Name, truncate(c.Description, 40))
		if m.cursor == i {
			rows = append(rows, m.theme.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	if len(rows) == 0 {
		rows = append(rows, m.theme.Help.Render("—"))
	}
	return strings.Join(rows, "\n")
}

func (m *adminModel) settingsView() string {
	var rows []string
	if m.deps.Session.IsLoading(session.ResourceSettings) {
		rows = append(rows, m.theme.Help.Render(i18n.T("common.loading")))
	}
	keys := make([]string, 0, len(m.settings))
	for k := range m.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		rows = append(rows, fmt.Sprintf("%-28s %v", k, m.settings[k]))
	}
	if len(rows) == 0 {
		rows = append(rows, m.theme.Help.Render("—"))
	}
	return strings.Join(rows, "\n")
}
