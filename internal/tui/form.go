// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the reservation booking form. The form is reached
// from the equipment browser and posts a booking for one device; on
// success it jumps straight to the reservation detail view so the user
// sees the code they need to keep.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
)

const formTimeLayout = "2006-01-02 15:04"

// formEquipmentMsg carries the device being booked.
type formEquipmentMsg struct {
	eq  model.Equipment
	err error
}

// formResultMsg reports the booking outcome.
type formResultMsg struct {
	res api.ReservationResult
	err error
}

// Field order matches the paper form people are used to: who, how to
// reach them, when, and why.
const (
	fieldName = iota
	fieldDepartment
	fieldContact
	fieldEmail
	fieldStart
	fieldEnd
	fieldPurpose
	fieldCount
)

// formModel is the booking form for a single piece of equipment.
type formModel struct {
	deps        Deps
	theme       theme
	equipmentID int

	eq     model.Equipment
	loaded bool

	inputs [fieldCount]textinput.Model
	focus  int
	busy   bool
	errMsg string
}

func newFormModel(deps Deps, th theme, id string) *formModel {
	eqID, _ := strconv.Atoi(id)
	m := &formModel{deps: deps, theme: th, equipmentID: eqID}

	labels := [fieldCount]string{
		i18n.T("form.name"),
		i18n.T("form.department"),
		i18n.T("form.contact"),
		i18n.T("form.email"),
		i18n.T("form.start"),
		i18n.T("form.end"),
		i18n.T("form.purpose"),
	}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 128
		in.Width = 36
		m.inputs[i] = in
	}
	now := time.Now()
	m.inputs[fieldStart].Placeholder = now.Format(formTimeLayout)
	m.inputs[fieldEnd].Placeholder = now.Add(2 * time.Hour).Format(formTimeLayout)
	m.inputs[fieldName].Focus()
	return m
}

func (m *formModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadCmd())
}

func (m *formModel) loadCmd() tea.Cmd {
	c, id := m.deps.API, m.equipmentID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		eq, err := c.GetEquipment(ctx, id)
		return formEquipmentMsg{eq: eq, err: err}
	}
}

func (m *formModel) submitCmd() tea.Cmd {
	req := api.CreateReservationRequest{
		EquipmentID:    m.equipmentID,
		UserName:       m.inputs[fieldName].Value(),
		UserDepartment: m.inputs[fieldDepartment].Value(),
		UserContact:    m.inputs[fieldContact].Value(),
		UserEmail:      m.inputs[fieldEmail].Value(),
		Purpose:        m.inputs[fieldPurpose].Value(),
		// The backend keys notification templates by underscore codes.
		Lang: strings.ReplaceAll(i18n.Active(), "-", "_"),
	}
	start, err1 := time.ParseInLocation(formTimeLayout, m.inputs[fieldStart].Value(), time.Local)
	end, err2 := time.ParseInLocation(formTimeLayout, m.inputs[fieldEnd].Value(), time.Local)
	if err1 != nil || err2 != nil {
		m.errMsg = i18n.T("form.bad_time")
		return nil
	}
	if !end.After(start) {
		m.errMsg = i18n.T("form.end_before_start")
		return nil
	}
	req.StartDatetime = start.Format("2006-01-02T15:04:05")
	req.EndDatetime = end.Format("2006-01-02T15:04:05")

	m.busy = true
	m.errMsg = ""
	c := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		res, err := c.CreateReservation(ctx, req)
		return formResultMsg{res: res, err: err}
	}
}

// validate checks the required fields before the time columns are even
// parsed, so the first complaint the user sees is about the field they
// skipped.
func (m *formModel) validate() bool {
	for _, f := range []int{fieldName, fieldContact, fieldStart, fieldEnd} {
		if m.inputs[f].Value() == "" {
			m.errMsg = i18n.T("form.required")
			m.focus = f
			return false
		}
	}
	return true
}

func (m *formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formEquipmentMsg:
		if msg.err == nil {
			m.eq = msg.eq
			m.loaded = true
		}
		return m, nil
	case formResultMsg:
		m.busy = false
		if msg.err != nil {
			return m, nil
		}
		if !msg.res.Success && msg.res.Message != "" {
			m.errMsg = msg.res.Message
			return m, nil
		}
		return m, Navigate("/reservation/" + msg.res.Data.ReservationCode)
	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, Navigate("/equipment/" + strconv.Itoa(m.equipmentID))
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if m.focus < fieldCount-1 {
				return m, m.setFocus(m.focus + 1)
			}
			prev := m.focus
			if !m.validate() {
				m.inputs[prev].Blur()
				return m, m.inputs[m.focus].Focus()
			}
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *formModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *formModel) View() string {
	var rows []string
	if m.loaded {
		rows = append(rows, m.theme.PaneTitle.Render(m.eq.Name), "")
	} else {
		rows = append(rows, m.theme.Help.Render(i18n.T("common.loading")), "")
	}
	for i := range m.inputs {
		rows = append(rows, m.inputs[i].View())
	}
	switch {
	case m.busy:
		rows = append(rows, "", m.theme.Help.Render(i18n.T("common.loading")))
	case m.errMsg != "":
		rows = append(rows, "", m.theme.Error.Render(m.errMsg))
	}
	rows = append(rows, "", m.theme.Help.Render("enter: "+i18n.T("common.confirm")+"  esc: "+i18n.T("common.back")))
	return m.theme.Pane.Width(54).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
