// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file contains the reservation lookup form and the reservation
// detail view: status, period, history, a terminal-rendered check-in
// QR code, clipboard copy, and cancellation with confirmation.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/dateutil"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
)

// lookupModel is the reservation query form. One input accepts either
// a reservation code or an "RN-..." reservation number; the shape
// decides which endpoint the lookup hits.
type lookupModel struct {
	deps  Deps
	theme theme
	input textinput.Model
	err   string
}

func newLookupModel(deps Deps, th theme) *lookupModel {
	ti := textinput.New()
	ti.Placeholder = i18n.T("reservation.code") + " / " + i18n.T("reservation.number")
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	return &lookupModel{deps: deps, theme: th, input: ti}
}

func (m *lookupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *lookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Navigate("/")
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				return m, nil
			}
			if api.IsReservationNumber(value) {
				return m, Navigate("/reservation/number/" + value)
			}
			return m, Navigate("/reservation/" + value)
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *lookupModel) View() string {
	var rows []string
	rows = append(rows, m.theme.PaneTitle.Render(i18n.T("route.reservation_query")), "")
	rows = append(rows, m.input.View())
	if m.err != "" {
		rows = append(rows, "", m.theme.Error.Render(m.err))
	}
	rows = append(rows, "", m.theme.Help.Render("enter: "+i18n.T("common.confirm")+"  esc: "+i18n.T("common.back")))
	return m.theme.Pane.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// reservationLoadedMsg delivers the looked-up reservation.
type reservationLoadedMsg struct {
	res model.Reservation
	err error
}

// historyLoadedMsg delivers the audit trail.
type historyLoadedMsg struct {
	entries []model.HistoryEntry
}

// qrLoadedMsg delivers the check-in QR payload, already rendered for
// the terminal.
type qrLoadedMsg struct {
	art string
}

// cancelledMsg reports the outcome of a cancellation.
type cancelledMsg struct {
	result api.ReservationResult
	err    error
}

// reservationDetailModel shows one reservation.
type reservationDetailModel struct {
	deps  Deps
	theme theme

	code   string
	number api.Ref

	res     model.Reservation
	history []model.HistoryEntry
	qrArt   string
	loaded  bool
	failed  bool

	confirmingCancel bool
	confirmCursor    int // 0 no, 1 yes

	status string
	width  int
}

func newReservationDetailModel(deps Deps, th theme, code, number string) *reservationDetailModel {
	m := &reservationDetailModel{deps: deps, theme: th, code: code}
	if number != "" {
		m.number = api.ByNumber(number)
	}
	return m
}

func (m *reservationDetailModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m *reservationDetailModel) loadCmd() tea.Cmd {
	c := m.deps.API
	code, number := m.code, m.number
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if code == "" && number.Kind() == api.RefNumber {
			out, err := c.GetReservationByNumber(ctx, number.Value())
			return reservationLoadedMsg{res: out.Data, err: err}
		}
		out, err := c.GetReservationByCode(ctx, code, number)
		return reservationLoadedMsg{res: out.Data, err: err}
	}
}

func (m *reservationDetailModel) historyCmd() tea.Cmd {
	c := m.deps.API
	code, number := m.res.ReservationCode, m.number
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		entries, err := c.GetReservationHistory(ctx, code, number)
		if err != nil {
			entries = nil
		}
		return historyLoadedMsg{entries: entries}
	}
}

func (m *reservationDetailModel) qrCmd() tea.Cmd {
	c := m.deps.API
	code := m.res.ReservationCode
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		payload, err := c.GetReservationQRCode(ctx, code)
		if err != nil || payload == "" {
			return qrLoadedMsg{}
		}
		qr, err := qrcode.New(payload, qrcode.Medium)
		if err != nil {
			return qrLoadedMsg{}
		}
		return qrLoadedMsg{art: qr.ToSmallString(false)}
	}
}

func (m *reservationDetailModel) cancelCmd() tea.Cmd {
	c := m.deps.API
	code, number := m.res.ReservationCode, m.number
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		out, err := c.CancelReservation(ctx, code, number)
		return cancelledMsg{result: out, err: err}
	}
}

func (m *reservationDetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case reservationLoadedMsg:
		if msg.err != nil {
			m.failed = true
			return m, nil
		}
		m.res = msg.res
		m.loaded = true
		// Narrow follow-up reads to the exact occurrence we landed on.
		if m.number.IsZero() && msg.res.ReservationNumber != "" {
			m.number = api.ByNumber(msg.res.ReservationNumber)
		}
		return m, m.historyCmd()
	case historyLoadedMsg:
		m.history = msg.entries
		return m, nil
	case qrLoadedMsg:
		m.qrArt = msg.art
		return m, nil
	case cancelledMsg:
		m.confirmingCancel = false
		if msg.err != nil {
			return m, nil
		}
		m.status = m.theme.Success.Render(i18n.T("reservation.cancelled"))
		return m, m.loadCmd()
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *reservationDetailModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmingCancel {
		switch msg.String() {
		case "n", "q", "esc":
			m.confirmingCancel = false
		case "left", "h":
			m.confirmCursor = 0
		case "right", "l", "tab":
			m.confirmCursor = 1
		case "enter":
			if m.confirmCursor == 1 {
				return m, m.cancelCmd()
			}
			m.confirmingCancel = false
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "esc":
		return m, Navigate("/reservation/query")
	case "c":
		if m.loaded {
			code := m.res.ReservationCode
			if err := clipboard.WriteAll(code); err != nil {
				return m, notify(i18n.T("common.copy_failed"), true)
			}
			return m, notify(i18n.T("common.copied"), false)
		}
	case "s":
		if m.loaded && m.qrArt == "" {
			return m, m.qrCmd()
		}
		m.qrArt = ""
	case "x":
		if m.loaded && m.res.Status != "cancelled" {
			m.confirmingCancel = true
			m.confirmCursor = 0
		}
	}
	return m, nil
}

func (m *reservationDetailModel) View() string {
	if m.failed {
		return m.theme.Pane.Width(60).Render(m.theme.Error.Render(i18n.T("reservation.not_found")))
	}
	if !m.loaded {
		return m.theme.Pane.Width(60).Render(m.theme.Help.Render(i18n.T("common.loading")))
	}

	if m.confirmingCancel {
		return m.confirmView()
	}

	res := m.res
	period := dateutil.FormatDate(res.StartDatetime, "YYYY/MM/DD HH:mm", true) +
		" → " + dateutil.FormatDate(res.EndDatetime, "YYYY/MM/DD HH:mm", true)

	var rows []string
	rows = append(rows, m.theme.PaneTitle.Render(res.ReservationNumber), "")
	rows = append(rows,
		i18n.T("reservation.code")+": "+res.ReservationCode,
		i18n.T("reservation.equipment")+": "+res.EquipmentName,
		i18n.T("reservation.user")+": "+res.UserName,
		i18n.T("reservation.period")+": "+period,
		i18n.T("reservation.status")+": "+m.statusLine(res),
	)
	if res.Purpose != "" {
		rows = append(rows, i18n.T("reservation.purpose")+": "+truncate(res.Purpose, 50))
	}

	if m.qrArt != "" {
		rows = append(rows, "", m.qrArt)
	}

	if len(m.history) > 0 {
		rows = append(rows, "", m.theme.PaneTitle.Render(i18n.T("reservation.history")), "")
		for _, h := range m.history {
			ts := dateutil.FormatDate(h.CreatedAt, "MM/DD HH:mm", true)
			rows = append(rows, m.theme.Help.Render(ts)+" "+h.Action+" "+truncate(h.Detail, 40))
		}
	}

	if m.status != "" {
		rows = append(rows, "", m.status)
	}
	rows = append(rows, "", m.theme.Help.Render(
		"c: "+i18n.T("reservation.copy_code")+"  s: "+i18n.T("reservation.show_qr")+
			"  x: "+i18n.T("common.cancel")+"  esc: "+i18n.T("common.back")))

	return m.theme.Pane.Width(paneWidth(m.width)).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m *reservationDetailModel) statusLine(res model.Reservation) string {
	expired := dateutil.IsReservationExpired(res.EndDatetime)
	switch {
	case res.Status == "cancelled":
		return m.theme.Error.Render(res.Status)
	case expired:
		return m.theme.Help.Render(res.Status)
	default:
		return m.theme.Success.Render(res.Status)
	}
}

func (m *reservationDetailModel) confirmView() string {
	no := i18n.T("common.no")
	yes := i18n.T("common.yes")
	if m.confirmCursor == 0 {
		no = m.theme.Selected.Render("[" + no + "]")
		yes = " " + yes + " "
	} else {
		no = " " + no + " "
		yes = m.theme.Selected.Render("[" + yes + "]")
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		i18n.T("reservation.cancel_confirm"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, no, "   ", yes),
	)
	return m.theme.Pane.Width(60).Render(body)
}
