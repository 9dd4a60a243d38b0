// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package tui provides the terminal user interface for Resv.
// This file contains the raw database viewer: pick a backend table,
// then page through its rows with the column layout fetched first.
package tui // import "github.com/resvlab/resv/internal/tui"

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
	"github.com/resvlab/resv/internal/routes"
)

const dbPageSize = 20

// dbViewerState selects between the table list and the row browser.
type dbViewerState int

const (
	dbTablesState dbViewerState = iota
	dbRowsState
)

// dbTablesMsg delivers the table names.
type dbTablesMsg struct {
	tables []string
}

// dbRowsMsg delivers one page of one table.
type dbRowsMsg struct {
	columns []model.DBColumn
	rows    model.DBRows
}

// dbViewerModel browses backend tables read-only.
type dbViewerModel struct {
	deps  Deps
	theme theme
	state dbViewerState

	tables []string
	cursor int

	table   string
	columns []model.DBColumn
	rows    model.DBRows
	page    int

	width int
}

func newDBViewerModel(deps Deps, th theme) *dbViewerModel {
	return &dbViewerModel{deps: deps, theme: th}
}

func (m *dbViewerModel) Init() tea.Cmd {
	c := m.deps.API
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		tables, err := c.DBTables(ctx)
		if err != nil {
			tables = nil
		}
		return dbTablesMsg{tables: tables}
	}
}

func (m *dbViewerModel) fetchRowsCmd() tea.Cmd {
	c := m.deps.API
	table, page := m.table, m.page
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		cols, err := c.DBTableColumns(ctx, table)
		if err != nil {
			cols = nil
		}
		rows, err := c.DBTableRows(ctx, table, page+1, dbPageSize)
		if err != nil {
			rows = model.DBRows{}
		}
		return dbRowsMsg{columns: cols, rows: rows}
	}
}

func (m *dbViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case dbTablesMsg:
		m.tables = msg.tables
		if m.cursor >= len(m.tables) {
			m.cursor = 0
		}
		return m, nil
	case dbRowsMsg:
		m.columns = msg.columns
		m.rows = msg.rows
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			if m.state == dbRowsState {
				m.state = dbTablesState
				m.page = 0
				return m, nil
			}
			return m, Navigate(routes.DashboardPath)
		case "up", "k":
			if m.state == dbTablesState && m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.state == dbTablesState && m.cursor < len(m.tables)-1 {
				m.cursor++
			}
		case "left", "h":
			if m.state == dbRowsState && m.page > 0 {
				m.page--
				return m, m.fetchRowsCmd()
			}
		case "right", "l":
			if m.state == dbRowsState && (m.page+1)*dbPageSize < m.rows.Total {
				m.page++
				return m, m.fetchRowsCmd()
			}
		case "enter":
			if m.state == dbTablesState && m.cursor < len(m.tables) {
				m.state = dbRowsState
				m.table = m.tables[m.cursor]
				m.page = 0
				return m, m.fetchRowsCmd()
			}
		}
	}
	return m, nil
}

func (m *dbViewerModel) View() string {
	if m.state == dbRowsState {
		return m.rowsView()
	}
	var items []string
	items = append(items, m.theme.PaneTitle.Render(i18n.T("route.admin_db_viewer")), "")
	for i, t := range m.tables {
		if m.cursor == i {
			items = append(items, m.theme.Selected.Render("▸ "+t))
		} else {
			items = append(items, "  "+t)
		}
	}
	if len(m.tables) == 0 {
		items = append(items, m.theme.Help.Render("—"))
	}
	return m.theme.Pane.Width(50).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}

func (m *dbViewerModel) rowsView() string {
	var lines []string
	lines = append(lines, m.theme.PaneTitle.Render(m.table), "")

	var header []string
	for _, c := range m.columns {
		header = append(header, fmt.Sprintf("%-16s", truncate(c.Name, 16)))
	}
	lines = append(lines, m.theme.Selected.Render(strings.Join(header, " ")))

	for _, row := range m.rows.Rows {
		var cells []string
		for _, c := range m.columns {
			cells = append(cells, fmt.Sprintf("%-16s", truncate(fmt.Sprintf("%v", row[c.Name]), 16)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}

	pages := (m.rows.Total + dbPageSize - 1) / dbPageSize
	lines = append(lines, "", m.theme.Help.Render(fmt.Sprintf(
		"%s: %d  %d/%d", i18n.T("common.total"), m.rows.Total, m.page+1, max(pages, 1))))
	return m.theme.Pane.Width(paneWidth(m.width)).Render(strings.Join(lines, "\n"))
}
