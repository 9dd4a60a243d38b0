// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file contains the administrator login form. The form carries the
// redirect target the guard captured, so a successful login continues
// to wherever the user was originally headed.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/i18n"
)

// loginResultMsg reports the login attempt's outcome.
type loginResultMsg struct {
	ok bool
}

// loginModel is the two-field login form.
type loginModel struct {
	deps     Deps
	theme    theme
	redirect string

	username textinput.Model
	password textinput.Model
	focus    int // 0 username, 1 password
	busy     bool
	failed   bool
}

func newLoginModel(deps Deps, th theme, redirect string) *loginModel {
	user := textinput.New()
	user.Placeholder = i18n.T("login.username")
	user.Focus()
	user.CharLimit = 64
	user.Width = 32

	pass := textinput.New()
	pass.Placeholder = i18n.T("login.password")
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128
	pass.Width = 32

	return &loginModel{
		deps:     deps,
		theme:    th,
		redirect: redirect,
		username: user,
		password: pass,
	}
}

func (m *loginModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *loginModel) submitCmd() tea.Cmd {
	sess := m.deps.Session
	user, pass := m.username.Value(), m.password.Value()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return loginResultMsg{ok: sess.Login(ctx, user, pass)}
	}
}

func (m *loginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.ok {
			return m, Navigate(m.redirect)
		}
		m.failed = true
		m.password.SetValue("")
		return m, nil
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, Navigate("/")
		case "tab", "shift+tab", "up", "down":
			m.focus = 1 - m.focus
			if m.focus == 0 {
				m.password.Blur()
				return m, m.username.Focus()
			}
			m.username.Blur()
			return m, m.password.Focus()
		case "enter":
			if m.focus == 0 {
				m.focus = 1
				m.username.Blur()
				return m, m.password.Focus()
			}
			if m.username.Value() == "" || m.password.Value() == "" {
				return m, nil
			}
			m.busy = true
			m.failed = false
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.username, cmd = m.username.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *loginModel) View() string {
	var rows []string
	rows = append(rows, m.theme.PaneTitle.Render(i18n.T("login.title")), "")
	rows = append(rows, m.username.View(), m.password.View())
	switch {
	case m.busy:
		rows = append(rows, "", m.theme.Help.Render(i18n.T("common.loading")))
	case m.failed:
		rows = append(rows, "", m.theme.Error.Render(i18n.T("login.failed")))
	}
	rows = append(rows, "", m.theme.Help.Render("enter: "+i18n.T("login.submit")+"  esc: "+i18n.T("common.back")))
	return m.theme.Pane.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
