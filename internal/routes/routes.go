// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

// package routes declares the navigable view tree and the guard that
// gates every transition. The table is data, the guard is a pure
// function of (session, target path); the TUI owns the side effects of
// actually switching views and repainting the header title.
package routes // import "github.com/resvlab/resv/internal/routes"

import (
	"strings"

	"github.com/resvlab/resv/internal/i18n"
	"github.com/resvlab/resv/internal/model"
)

// Route names in the table. Navigation code addresses routes by name,
// never by raw path.
const (
	NameHome                   = "home"
	NameCalendar               = "calendar"
	NameEquipmentList          = "equipment-list"
	NameEquipmentDetail        = "equipment-detail"
	NameReservationForm        = "reservation-form"
	NameRecurringForm          = "recurring-reservation-form"
	NameReservationQuery       = "reservation-query"
	NameReservationByNumber    = "reservation-detail-by-number"
	NameReservationDetail      = "reservation-detail"
	NameRecurringDetail        = "recurring-reservation-detail"
	NameAdminLogin             = "admin-login"
	NameAdminDashboard         = "admin-dashboard"
	NameAdminEquipment         = "admin-equipment"
	NameAdminCategory          = "admin-category"
	NameAdminReservation       = "admin-reservation"
	NameAdminReservationDetail = "admin-reservation-detail"
	NameAdminSettings          = "admin-settings"
	NameAdminAnnouncement      = "admin-announcement"
	NameAdminEmailSettings     = "admin-email-settings"
	NameAdminEmailTemplates    = "admin-email-templates"
	NameAdminEmailLogs         = "admin-email-logs"
	NameAdminDBViewer          = "admin-db-viewer"
	NameNotFound               = "not-found"
)

// Canonical paths used by the guard's redirects.
const (
	LoginPath     = "/admin/login"
	DashboardPath = "/admin/dashboard"
)

// Route is one entry of the view tree. Title is either a literal or,
// when it contains a dot, a translation key resolved at display time.
type Route struct {
	Path         string
	Name         string
	Title        string
	RequiresAuth bool
}

// Table is the ordered route list; order matters because matching
// picks the first pattern that fits, so literal paths must be
// declared before the :param patterns that would shadow them.
type Table []Route

// Default is the full view tree.
var Default = Table{
	{Path: "/", Name: NameHome, Title: "route.home"},
	{Path: "/calendar", Name: NameCalendar, Title: "route.calendar"},
	{Path: "/equipment", Name: NameEquipmentList, Title: "route.equipment_list"},
	{Path: "/equipment/:id", Name: NameEquipmentDetail, Title: "route.equipment_detail"},
	{Path: "/equipment/:id/reserve", Name: NameReservationForm, Title: "route.reservation_form"},
	{Path: "/equipment/:id/recurring-reserve", Name: NameRecurringForm, Title: "route.recurring_form"},
	{Path: "/reservation/query", Name: NameReservationQuery, Title: "route.reservation_query"},
	{Path: "/reservation/number/:number", Name: NameReservationByNumber, Title: "route.reservation_detail"},
	{Path: "/reservation/:code", Name: NameReservationDetail, Title: "route.reservation_detail"},
	{Path: "/recurring-reservation/:id", Name: NameRecurringDetail, Title: "route.recurring_detail"},
	{Path: LoginPath, Name: NameAdminLogin, Title: "route.admin_login"},
	{Path: DashboardPath, Name: NameAdminDashboard, Title: "route.admin_dashboard", RequiresAuth: true},
	{Path: "/admin/equipment", Name: NameAdminEquipment, Title: "route.admin_equipment", RequiresAuth: true},
	{Path: "/admin/category", Name: NameAdminCategory, Title: "route.admin_category", RequiresAuth: true},
	{Path: "/admin/reservation", Name: NameAdminReservation, Title: "route.admin_reservation", RequiresAuth: true},
	{Path: "/admin/reservation/:code", Name: NameAdminReservationDetail, Title: "route.admin_reservation_detail", RequiresAuth: true},
	{Path: "/admin/settings", Name: NameAdminSettings, Title: "route.admin_settings", RequiresAuth: true},
	{Path: "/admin/announcement", Name: NameAdminAnnouncement, Title: "route.admin_announcement", RequiresAuth: true},
	{Path: "/admin/email/settings", Name: NameAdminEmailSettings, Title: "route.admin_email_settings", RequiresAuth: true},
	{Path: "/admin/email/templates", Name: NameAdminEmailTemplates, Title: "route.admin_email_templates", RequiresAuth: true},
	{Path: "/admin/email/logs", Name: NameAdminEmailLogs, Title: "route.admin_email_logs", RequiresAuth: true},
	{Path: "/admin/db-viewer", Name: NameAdminDBViewer, Title: "route.admin_db_viewer", RequiresAuth: true},
}

// notFound is the fallback route for unmatched paths.
var notFound = Route{Path: "/404", Name: NameNotFound, Title: "route.not_found"}

// Rewrite normalizes legacy path shapes before matching. Old links to
// recurring reservation details carried extra segments; strip them
// down to the trailing id.
func Rewrite(path string) string {
	const prefix = "/recurring-reservation/"
	if strings.HasPrefix(path, prefix) {
		rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
		if i := strings.LastIndexByte(rest, '/'); i >= 0 {
			rest = rest[i+1:]
		}
		if rest != "" {
			return prefix + rest
		}
	}
	return path
}

// Match resolves a path to a route and its parameters. Unmatched paths
// resolve to the not-found route, never an error.
func (t Table) Match(path string) (Route, map[string]string) {
	path = Rewrite(path)
	if q := strings.IndexByte(path, '?'); q >= 0 {
		path = path[:q]
	}
	segs := splitPath(path)
	for _, r := range t {
		if params, ok := matchPattern(splitPath(r.Path), segs); ok {
			return r, params
		}
	}
	return notFound, nil
}

// ByName looks a route up by its name.
func (t Table) ByName(name string) (Route, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}
	if name == NameNotFound {
		return notFound, true
	}
	return Route{}, false
}

// Decision is the guard's verdict on a navigation attempt.
type Decision struct {
	// Route is the resolved target after any redirect.
	Route Route
	// Params are the path parameters of the resolved target.
	Params map[string]string
	// RedirectedTo is non-empty when the guard diverted the navigation,
	// carrying the full replacement path (possibly with a redirect
	// query for the login view).
	RedirectedTo string
}

// Guard evaluates one navigation attempt against the session. The
// rules, in order: a logged-in session asking for the login view lands
// on the dashboard; a locked route without a session lands on the
// login view carrying the original target as its redirect query,
// unless the attempt already targets the login view (loop guard);
// everything else passes through. Legacy paths are rewritten before
// any rule runs.
func (t Table) Guard(sess model.Session, target string) Decision {
	target = Rewrite(target)
	route, params := t.Match(target)

	if route.Name == NameAdminLogin && sess.IsLoggedIn() {
		dash, _ := t.Match(DashboardPath)
		return Decision{Route: dash, RedirectedTo: DashboardPath}
	}

	if route.RequiresAuth && !sess.IsLoggedIn() {
		if pathOnly(target) == LoginPath {
			return Decision{Route: route, Params: params}
		}
		to := LoginPath + "?redirect=" + pathOnly(target)
		login, _ := t.Match(LoginPath)
		return Decision{Route: login, RedirectedTo: to}
	}

	return Decision{Route: route, Params: params}
}

// Title renders a route's display title: translation keys (anything
// with a dot) go through the message catalog, then the application
// name is appended. An untitled route shows the bare application name.
func Title(r Route) string {
	appName := i18n.T("common.full_app_name")
	title := r.Title
	if strings.Contains(title, ".") {
		title = i18n.T(title)
	}
	if title == "" {
		return appName
	}
	return title + " - " + appName
}

func pathOnly(p string) string {
	if q := strings.IndexByte(p, '?'); q >= 0 {
		return p[:q]
	}
	return p
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// matchPattern matches segments against a pattern where ":name"
// captures one segment.
func matchPattern(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[p[1:]] = segs[i]
			continue
		}
		if p != segs[i] {
			return nil, false
		}
	}
	return params, true
}
