// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/resvlab/resv/internal/api"
	"github.com/resvlab/resv/internal/store"
)

func newTestPersist(t *testing.T, name string) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:session_%s?mode=memory&cache=shared", name)
	p, err := store.New("sqlite", dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func newTestStore(t *testing.T, name string, handler http.Handler) (*Store, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := New(context.Background(), newTestPersist(t, name))
	c := api.New(api.Config{BaseURL: srv.URL}, api.WithTokenSource(s))
	s.AttachClient(c)
	return s, srv
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, "login", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/admin/login" {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("login content type = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-xyz",
			"token_type":   "bearer",
			"admin_id":     7,
			"username":     "ops",
			"name":         "Ops",
			"role":         "admin",
		})
	}))

	if s.IsLoggedIn() {
		t.Fatal("logged in before login")
	}
	if !s.Login(ctx, "ops", "secret") {
		t.Fatal("login returned false")
	}
	if !s.IsLoggedIn() {
		t.Fatal("not logged in after login")
	}
	if got := s.Token(); got != "tok-xyz" {
		t.Errorf("token = %q", got)
	}
	if got := s.Session().User.Username; got != "ops" {
		t.Errorf("username = %q", got)
	}

	// A fresh store over the same persisted state resumes the session.
	resumed := New(ctx, newTestPersist(t, "login"))
	if !resumed.IsLoggedIn() {
		t.Fatal("persisted session not resumed")
	}

	s.Logout(ctx)
	if s.IsLoggedIn() {
		t.Fatal("still logged in after logout")
	}
	s.Logout(ctx) // idempotent

	cleared := New(ctx, newTestPersist(t, "login"))
	if cleared.IsLoggedIn() {
		t.Fatal("persisted session survived logout")
	}
}

func TestLoginFailureReturnsFalse(t *testing.T) {
	s, _ := newTestStore(t, "loginfail", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"bad credentials"}`, http.StatusUnauthorized)
	}))
	if s.Login(context.Background(), "ops", "wrong") {
		t.Fatal("login succeeded against 401")
	}
	if s.IsLoggedIn() {
		t.Fatal("session set after failed login")
	}
}

func TestFetchEquipmentsCaches(t *testing.T) {
	s, _ := newTestStore(t, "equip", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"id": 1, "name": "Projector"}},
			"total": 13,
		})
	}))
	list := s.FetchEquipments(context.Background(), api.EquipmentQuery{Limit: 10})
	if len(list.Items) != 1 || list.Total != 13 {
		t.Fatalf("fetch = %d items / total %d", len(list.Items), list.Total)
	}
	cached, total := s.Equipments()
	if len(cached) != 1 || total != 13 {
		t.Fatalf("cache = %d items / total %d", len(cached), total)
	}
	if s.IsLoading(ResourceEquipment) {
		t.Error("loading flag stuck after settle")
	}
}

func TestFetchFailureLeavesCache(t *testing.T) {
	fail := false
	s, _ := newTestStore(t, "equipfail", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			http.Error(w, `{"detail":"boom"}`, http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{"id": 1, "name": "Projector"}},
			"total": 1,
		})
	}))
	ctx := context.Background()
	s.FetchEquipments(ctx, api.EquipmentQuery{})

	fail = true
	s.FetchEquipments(ctx, api.EquipmentQuery{})
	cached, total := s.Equipments()
	if len(cached) != 1 || total != 1 {
		t.Fatalf("failed fetch clobbered cache: %d items / total %d", len(cached), total)
	}
	if s.IsLoading(ResourceEquipment) {
		t.Error("loading flag stuck after failure")
	}
}

// A fetch that settles after a newer one began must not write state or
// clear the newer fetch's loading flag.
func TestStaleFetchDiscarded(t *testing.T) {
	s := New(context.Background(), nil)

	first := s.beginFetch(ResourceReservations)
	second := s.beginFetch(ResourceReservations)

	if !s.IsLoading(ResourceReservations) {
		t.Fatal("loading flag not set")
	}
	if s.settleFetch(ResourceReservations, first) {
		t.Fatal("stale fetch allowed to settle")
	}
	if !s.IsLoading(ResourceReservations) {
		t.Fatal("stale settle cleared the active fetch's loading flag")
	}
	if !s.settleFetch(ResourceReservations, second) {
		t.Fatal("latest fetch refused to settle")
	}
	if s.IsLoading(ResourceReservations) {
		t.Fatal("loading flag stuck after latest settle")
	}
}

func TestLanguageAndThemePersist(t *testing.T) {
	ctx := context.Background()
	p := newTestPersist(t, "prefs")
	s := New(ctx, p)

	if got := s.Language(); got != "zh-CN" {
		t.Errorf("default language = %q", got)
	}
	s.SetLanguage(ctx, "en")
	if !s.ToggleDarkMode(ctx) {
		t.Fatal("toggle should flip to true")
	}

	resumed := New(ctx, newTestPersist(t, "prefs"))
	if got := resumed.Language(); got != "en" {
		t.Errorf("persisted language = %q", got)
	}
	if !resumed.DarkMode() {
		t.Error("persisted dark mode lost")
	}
}
