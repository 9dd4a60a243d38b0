// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/resvlab/resv/internal/i18n"
)

// langChoice pairs a language code with its native display name.
type langChoice struct {
	code  string
	label string
}

// languageModel is the overlay for picking the UI language.
type languageModel struct {
	choices []langChoice
	cursor  int
}

var langLabels = map[string]string{
	"zh-CN": "简体中文",
	"en":    "English",
}

func newLanguageModel() languageModel {
	m := languageModel{}
	for _, code := range i18n.Supported {
		label := langLabels[code]
		if label == "" {
			label = code
		}
		m.choices = append(m.choices, langChoice{code: code, label: label})
		if code == i18n.Active() {
			m.cursor = len(m.choices) - 1
		}
	}
	return m
}

func (m languageModel) View(th theme) string {
	var items []string
	items = append(items, th.PaneTitle.Render(i18n.T("menu.language")), "")
	for i, c := range m.choices {
		if m.cursor == i {
			items = append(items, th.Selected.Render("▸ "+c.label))
		} else {
			items = append(items, th.Item.Render("  "+c.label))
		}
	}
	return th.Pane.Width(40).Render(lipgloss.JoinVertical(lipgloss.Left, items...))
}
