// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package routes

import (
	"strings"
	"testing"

	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		path       string
		wantName   string
		wantParams map[string]string
	}{
		{"/", NameHome, nil},
		{"/equipment", NameEquipmentList, nil},
		{"/equipment/42", NameEquipmentDetail, map[string]string{"id": "42"}},
		{"/equipment/42/reserve", NameReservationForm, map[string]string{"id": "42"}},
		{"/equipment/42/recurring-reserve", NameRecurringForm, map[string]string{"id": "42"}},
		{"/reservation/query", NameReservationQuery, nil},
		{"/reservation/number/RN-20240101-001", NameReservationByNumber, map[string]string{"number": "RN-20240101-001"}},
		{"/reservation/ABC123", NameReservationDetail, map[string]string{"code": "ABC123"}},
		{"/recurring-reservation/9", NameRecurringDetail, map[string]string{"id": "9"}},
		{"/admin/login", NameAdminLogin, nil},
		{"/admin/dashboard", NameAdminDashboard, nil},
		{"/admin/reservation/ABC123", NameAdminReservationDetail, map[string]string{"code": "ABC123"}},
		{"/admin/email/templates", NameAdminEmailTemplates, nil},
		{"/admin/db-viewer", NameAdminDBViewer, nil},
		{"/no/such/route/here", NameNotFound, nil},
		{"/reservation/query?foo=1", NameReservationQuery, nil},
	}
	for _, tt := range tests {
		route, params := Default.Match(tt.path)
		if route.Name != tt.wantName {
			t.Errorf("Match(%q) = %q, want %q", tt.path, route.Name, tt.wantName)
			continue
		}
		for k, v := range tt.wantParams {
			if params[k] != v {
				t.Errorf("Match(%q) params[%q] = %q, want %q", tt.path, k, params[k], v)
			}
		}
	}
}

func TestLegacyRecurringRewrite(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/recurring-reservation/7", "/recurring-reservation/7"},
		{"/recurring-reservation/detail/7", "/recurring-reservation/7"},
		{"/recurring-reservation/old/deep/7", "/recurring-reservation/7"},
		{"/reservation/7", "/reservation/7"},
	}
	for _, tt := range tests {
		if got := Rewrite(tt.in); got != tt.want {
			t.Errorf("Rewrite(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	route, params := Default.Match("/recurring-reservation/detail/7")
	if route.Name != NameRecurringDetail || params["id"] != "7" {
		t.Errorf("legacy path matched %q with id %q", route.Name, params["id"])
	}
}

func TestGuard(t *testing.T) {
	anon := model.Session{}
	admin := model.Session{Token: "tok", User: model.User{Role: model.RoleAdmin}}

	tests := []struct {
		name     string
		sess     model.Session
		target   string
		wantName string
		wantTo   string
	}{
		{"open route passes", anon, "/equipment", NameEquipmentList, ""},
		{"locked route redirects to login", anon, "/admin/reservation", NameAdminLogin, "/admin/login?redirect=/admin/reservation"},
		{"login while logged in goes to dashboard", admin, "/admin/login", NameAdminDashboard, "/admin/dashboard"},
		{"locked route passes with session", admin, "/admin/settings", NameAdminSettings, ""},
		{"login while anonymous passes", anon, "/admin/login", NameAdminLogin, ""},
		{"unknown path falls through to not-found", anon, "/bogus", NameNotFound, ""},
	}
	for _, tt := range tests {
		d := Default.Guard(tt.sess, tt.target)
		if d.Route.Name != tt.wantName {
			t.Errorf("%s: landed on %q, want %q", tt.name, d.Route.Name, tt.wantName)
		}
		if d.RedirectedTo != tt.wantTo {
			t.Errorf("%s: redirect = %q, want %q", tt.name, d.RedirectedTo, tt.wantTo)
		}
	}
}

func TestGuardPreservesRedirectTarget(t *testing.T) {
	d := Default.Guard(model.Session{}, "/admin/db-viewer")
	if !strings.HasSuffix(d.RedirectedTo, "redirect=/admin/db-viewer") {
		t.Fatalf("redirect query lost: %q", d.RedirectedTo)
	}
}

func TestTitle(t *testing.T) {
	i18n.Init("en")
	defer i18n.Init("zh-CN")

	route, _ := Default.Match("/equipment")
	got := Title(route)
	if !strings.HasPrefix(got, "Equipment") || !strings.Contains(got, " - ") {
		t.Errorf("Title = %q", got)
	}

	if got := Title(Route{}); got != i18n.T("common.full_app_name") {
		t.Errorf("untitled route = %q", got)
	}

	// A literal title passes through untranslated.
	if got := Title(Route{Title: "Raw"}); !strings.HasPrefix(got, "Raw - ") {
		t.Errorf("literal title = %q", got)
	}
}
