// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file, tui.go, holds the top-level model that routes between the
// sub-views. Every navigation request passes through the route guard
// before a view switch happens, so locked views are unreachable while
// logged out.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/logging"
	"github.com/resvlab/resv/internal/routes"
	"github.com/resvlab/resv/internal/session"
)

// Deps are the shared dependencies every view draws on. Constructed
// once in main and passed down; no package globals.
type Deps struct {
	API     *api.Client
	Session *session.Store
	Routes  routes.Table
}

// navigateMsg asks the router to go to a path. Views emit it instead
// of mutating router state themselves.
type navigateMsg struct {
	path string
}

// Navigate builds a command that requests a route change.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// languageChangedMsg signals that the language changed and the UI must
// be rebuilt to pick up new translations.
type languageChangedMsg struct{}

// notifyMsg carries a transient status line for the footer.
type notifyMsg struct {
	text  string
	isErr bool
}

// notify builds a command that sets the footer status line.
func notify(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return notifyMsg{text: text, isErr: isErr} }
}

// authExpiredMsg is emitted by the pipeline hook when a 401 settles on
// a non-silenced path.
type authExpiredMsg struct{}

// mainModel is the top-level router. It keeps one sub-model per route
// family and delegates Update/View to whichever route is current.
type mainModel struct {
	deps  Deps
	route routes.Route
	param map[string]string

	home      *homeModel
	equipment *equipmentModel
	lookup    *lookupModel
	detail    *reservationDetailModel
	form      *formModel
	login     *loginModel
	admin     *adminModel
	dbviewer  *dbViewerModel

	// language selection is an overlay, not a route
	langOpen bool
	language languageModel

	theme  theme
	status string
	width  int
	height int
	err    error
}

func newMainModel(deps Deps) mainModel {
	m := mainModel{
		deps:  deps,
		theme: themeFor(deps.Session.DarkMode()),
	}
	m.route, m.param = deps.Routes.Match("/")
	m.home = newHomeModel(deps, m.theme)
	return m
}

// Init kicks off the home view's initial load.
func (m mainModel) Init() tea.Cmd {
	return m.home.Init()
}

// goTo runs the guard and switches the active sub-model. The guard may
// divert to the dashboard or the login view; the login view remembers
// the original target so a successful login lands where the user was
// headed.
func (m *mainModel) goTo(path string) tea.Cmd {
	d := m.deps.Routes.Guard(m.deps.Session.Session(), path)
	m.route = d.Route
	m.param = d.Params
	m.status = ""
	m.langOpen = false

	switch m.route.Name {
	case routes.NameHome:
		m.home = newHomeModel(m.deps, m.theme)
		return m.home.Init()
	case routes.NameEquipmentList, routes.NameEquipmentDetail:
		m.equipment = newEquipmentModel(m.deps, m.theme, m.param["id"])
		return m.equipment.Init()
	case routes.NameReservationForm:
		m.form = newFormModel(m.deps, m.theme, m.param["id"])
		return m.form.Init()
	case routes.NameReservationQuery:
		m.lookup = newLookupModel(m.deps, m.theme)
		return m.lookup.Init()
	case routes.NameReservationDetail, routes.NameReservationByNumber:
		m.detail = newReservationDetailModel(m.deps, m.theme, m.param["code"], m.param["number"])
		return m.detail.Init()
	case routes.NameAdminLogin:
		redirect := queryParam(d.RedirectedTo, "redirect")
		if redirect == "" {
			redirect = queryParam(path, "redirect")
		}
		if redirect == "" {
			redirect = routes.DashboardPath
		}
		m.login = newLoginModel(m.deps, m.theme, redirect)
		return m.login.Init()
	case routes.NameAdminDBViewer:
		m.dbviewer = newDBViewerModel(m.deps, m.theme)
		return m.dbviewer.Init()
	default:
		if isAdminRoute(m.route.Name) {
			m.admin = newAdminModel(m.deps, m.theme, m.route.Name, m.param)
			return m.admin.Init()
		}
		return nil
	}
}

func isAdminRoute(name string) bool {
	switch name {
	case routes.NameAdminDashboard, routes.NameAdminReservation,
		routes.NameAdminReservationDetail, routes.NameAdminAnnouncement,
		routes.NameAdminSettings, routes.NameAdminEquipment,
		routes.NameAdminCategory:
		return true
	}
	return false
}

// Update is the main message loop.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.theme = themeFor(m.deps.Session.ToggleDarkMode(context.Background()))
			return m, Navigate(m.currentPath())
		case "ctrl+l":
			m.langOpen = true
			m.language = newLanguageModel()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case navigateMsg:
		cmd = m.goTo(msg.path)
		return m, cmd
	case authExpiredMsg:
		m.deps.Session.Logout(context.Background())
		if m.route.Name != routes.NameAdminLogin {
			return m, Navigate(routes.LoginPath + "?redirect=" + m.currentPath())
		}
		return m, nil
	case notifyMsg:
		m.status = msg.text
		if msg.isErr {
			m.status = m.theme.Error.Render(msg.text)
		}
		return m, nil
	case languageChangedMsg:
		fresh := newMainModel(m.deps)
		fresh.width = m.width
		fresh.height = m.height
		return fresh, fresh.Init()
	}

	if m.langOpen {
		return m.updateLanguage(msg)
	}

	switch m.route.Name {
	case routes.NameHome:
		var nm tea.Model
		nm, cmd = m.home.Update(msg)
		m.home = nm.(*homeModel)
	case routes.NameEquipmentList, routes.NameEquipmentDetail:
		var nm tea.Model
		nm, cmd = m.equipment.Update(msg)
		m.equipment = nm.(*equipmentModel)
	case routes.NameReservationForm:
		var nm tea.Model
		nm, cmd = m.form.Update(msg)
		m.form = nm.(*formModel)
	case routes.NameReservationQuery:
		var nm tea.Model
		nm, cmd = m.lookup.Update(msg)
		m.lookup = nm.(*lookupModel)
	case routes.NameReservationDetail, routes.NameReservationByNumber:
		var nm tea.Model
		nm, cmd = m.detail.Update(msg)
		m.detail = nm.(*reservationDetailModel)
	case routes.NameAdminLogin:
		var nm tea.Model
		nm, cmd = m.login.Update(msg)
		m.login = nm.(*loginModel)
	case routes.NameAdminDBViewer:
		var nm tea.Model
		nm, cmd = m.dbviewer.Update(msg)
		m.dbviewer = nm.(*dbViewerModel)
	default:
		if isAdminRoute(m.route.Name) {
			var nm tea.Model
			nm, cmd = m.admin.Update(msg)
			m.admin = nm.(*adminModel)
		}
	}

	return m, cmd
}

func (m mainModel) updateLanguage(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc":
			m.langOpen = false
			return m, nil
		case "up", "k":
			if m.language.cursor > 0 {
				m.language.cursor--
			}
		case "down", "j":
			if m.language.cursor < len(m.language.choices)-1 {
				m.language.cursor++
			}
		case "enter":
			code := m.language.choices[m.language.cursor].code
			i18n.SetLang(code)
			m.deps.Session.SetLanguage(context.Background(), code)
			viper.Set("language", code)
			return m, func() tea.Msg { return languageChangedMsg{} }
		}
	}
	return m, nil
}

// View renders the frame: header title from route metadata, the active
// sub-view, and the footer.
func (m mainModel) View() string {
	if m.err != nil {
		return m.theme.Error.Padding(1, 2).Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	header := m.theme.Title.Render(routes.Title(m.route))

	var body string
	switch {
	case m.langOpen:
		body = m.language.View(m.theme)
	case m.route.Name == routes.NameHome:
		body = m.home.View()
	case m.route.Name == routes.NameEquipmentList || m.route.Name == routes.NameEquipmentDetail:
		body = m.equipment.View()
	case m.route.Name == routes.NameReservationForm:
		body = m.form.View()
	case m.route.Name == routes.NameReservationQuery:
		body = m.lookup.View()
	case m.route.Name == routes.NameReservationDetail || m.route.Name == routes.NameReservationByNumber:
		body = m.detail.View()
	case m.route.Name == routes.NameAdminLogin:
		body = m.login.View()
	case m.route.Name == routes.NameAdminDBViewer:
		body = m.dbviewer.View()
	case isAdminRoute(m.route.Name):
		body = m.admin.View()
	case m.route.Name == routes.NameNotFound:
		body = m.theme.Help.Render(i18n.T("route.not_found"))
	default:
		body = m.theme.Help.Render(i18n.T("common.console_unsupported"))
	}

	footer := m.footerView()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m mainModel) footerView() string {
	left := m.status
	if left == "" {
		left = i18n.T("common.quit") + ": ctrl+c"
	}
	right := sessionBadge(m.deps.Session)
	width := m.width
	if width <= 0 {
		width = 80
	}
	return m.theme.Footer.Render(AlignFooter(left, right, width-2))
}

func (m mainModel) currentPath() string {
	return pathFor(m.route, m.param)
}

// Run starts the program. It blocks until the user quits. The API
// pipeline's boundary hooks are pointed at the running program so
// classified failures surface in the footer and a 401 drives the
// logout-and-redirect flow.
func Run(deps Deps) error {
	p := tea.NewProgram(newMainModel(deps), tea.WithAltScreen())
	deps.API.SetHooks(api.Hooks{
		Notify: func(e *api.Error) {
			p.Send(notifyMsg{text: i18n.T(e.Kind.MessageID()), isErr: true})
		},
		AuthExpired: func() {
			p.Send(authExpiredMsg{})
		},
	})
	if _, err := p.Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		os.Exit(1)
	}
	return nil
}
