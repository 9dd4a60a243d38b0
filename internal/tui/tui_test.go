// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/routes"
	"github.com/resvlab/resv/internal/session"
)

func testDeps() Deps {
	sess := session.New(context.Background(), nil)
	client := api.New(api.Config{BaseURL: "http://localhost:1"}, api.WithTokenSource(sess))
	sess.AttachClient(client)
	return Deps{API: client, Session: sess, Routes: routes.Default}
}

func TestNavigationGoesThroughGuard(t *testing.T) {
	m := newMainModel(testDeps())

	// Logged out, a locked route must land on the login view.
	nm, _ := m.Update(navigateMsg{path: "/admin/reservation"})
	m = nm.(mainModel)
	if m.route.Name != routes.NameAdminLogin {
		t.Fatalf("locked route landed on %q, want login", m.route.Name)
	}
	if m.login == nil {
		t.Fatal("login model not constructed")
	}
	if m.login.redirect != "/admin/reservation" {
		t.Errorf("redirect target = %q", m.login.redirect)
	}

	// Open routes pass through untouched.
	nm, _ = m.Update(navigateMsg{path: "/equipment"})
	m = nm.(mainModel)
	if m.route.Name != routes.NameEquipmentList {
		t.Fatalf("open route landed on %q", m.route.Name)
	}
}

func TestAuthExpiredRedirectsOnce(t *testing.T) {
	m := newMainModel(testDeps())
	nm, _ := m.Update(navigateMsg{path: "/equipment"})
	m = nm.(mainModel)

	nm, cmd := m.Update(authExpiredMsg{})
	m = nm.(mainModel)
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	msg := cmd()
	nav, ok := msg.(navigateMsg)
	if !ok {
		t.Fatalf("expected navigateMsg, got %T", msg)
	}
	if !strings.HasPrefix(nav.path, routes.LoginPath) {
		t.Errorf("auth expiry navigated to %q", nav.path)
	}

	// Already on the login view, expiry must not navigate again.
	nm2, _ := m.Update(nav)
	m = nm2.(mainModel)
	_, cmd = m.Update(authExpiredMsg{})
	if cmd != nil {
		t.Error("expiry on the login view should be a no-op")
	}
}

func TestLookupRoutesByShape(t *testing.T) {
	deps := testDeps()
	m := newLookupModel(deps, themeFor(false))

	m.input.SetValue("RN-20240101-001")
	nm, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_ = nm
	if cmd == nil {
		t.Fatal("enter should navigate")
	}
	if nav := cmd().(navigateMsg); nav.path != "/reservation/number/RN-20240101-001" {
		t.Errorf("number lookup path = %q", nav.path)
	}

	m = newLookupModel(deps, themeFor(false))
	m.input.SetValue("abc123")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav := cmd().(navigateMsg); nav.path != "/reservation/abc123" {
		t.Errorf("code lookup path = %q", nav.path)
	}
}

func TestAlignFooter(t *testing.T) {
	got := AlignFooter("left", "right", 20)
	if len([]rune(got)) != 20 {
		t.Errorf("width = %d, want 20: %q", len([]rune(got)), got)
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("alignment broken: %q", got)
	}

	// Too narrow: tokens still separated by one space.
	got = AlignFooter("left", "right", 5)
	if got != "left right" {
		t.Errorf("narrow footer = %q", got)
	}
}

func TestQueryParam(t *testing.T) {
	tests := []struct {
		path, key, want string
	}{
		{"/admin/login?redirect=/admin/reservation", "redirect", "/admin/reservation"},
		{"/admin/login?a=1&redirect=/x", "redirect", "/x"},
		{"/admin/login", "redirect", ""},
		{"/admin/login?other=1", "redirect", ""},
	}
	for _, tt := range tests {
		if got := queryParam(tt.path, tt.key); got != tt.want {
			t.Errorf("queryParam(%q, %q) = %q, want %q", tt.path, tt.key, got, tt.want)
		}
	}
}

func TestPathFor(t *testing.T) {
	r, params := routes.Default.Match("/equipment/42")
	if got := pathFor(r, params); got != "/equipment/42" {
		t.Errorf("pathFor = %q", got)
	}
	home, _ := routes.Default.Match("/")
	if got := pathFor(home, nil); got != "/" {
		t.Errorf("pathFor(home) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	got := truncate("a very long string indeed", 10)
	if len([]rune(got)) != 10 || !strings.HasSuffix(got, "…") {
		t.Errorf("truncate long = %q", got)
	}
}

func TestBookingFormValidation(t *testing.T) {
	i18n.Init("en")
	m := newFormModel(testDeps(), themeFor(false), "7")

	if m.validate() {
		t.Fatal("validate passed with empty required fields")
	}
	if m.focus != fieldName {
		t.Errorf("focus = %d, want %d (first empty required field)", m.focus, fieldName)
	}

	m.inputs[fieldName].SetValue("Li Lei")
	m.inputs[fieldContact].SetValue("13800000000")
	m.inputs[fieldStart].SetValue("2026-09-01 09:00")
	m.inputs[fieldEnd].SetValue("2026-09-01 08:00")
	if !m.validate() {
		t.Fatal("validate refused with required fields filled")
	}
	if cmd := m.submitCmd(); cmd != nil {
		t.Error("submitCmd produced a request with end before start")
	}
	if m.errMsg == "" {
		t.Error("no error message for inverted time range")
	}

	m.inputs[fieldEnd].SetValue("2026-09-01 11:00")
	m.errMsg = ""
	if cmd := m.submitCmd(); cmd == nil {
		t.Errorf("submitCmd refused a valid form: %s", m.errMsg)
	}
}
