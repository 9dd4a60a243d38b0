// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

// newTestClient points a Client at a scripted backend and records the
// boundary side effects.
func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *hookRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := &hookRecorder{}
	base := []Option{
		WithTokenSource(TokenFunc(func() string { return rec.token })),
		WithHooks(Hooks{
			Notify:      func(e *Error) { rec.notified = append(rec.notified, e) },
			AuthExpired: func() { rec.token = ""; rec.authExpired++ },
		}),
	}
	c := New(Config{BaseURL: srv.URL}, append(base, opts...)...)
	return c, rec
}

type hookRecorder struct {
	token       string
	notified    []*Error
	authExpired int
}

func TestAuthHeaderAttachment(t *testing.T) {
	var gotAuth string
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}, "total": 0})
	})

	// Without a token the header must be absent, not empty-Bearer.
	if _, err := c.ListEquipment(context.Background(), EquipmentQuery{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}

	rec.token = "tok-123"
	if _, err := c.ListEquipment(context.Background(), EquipmentQuery{}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
}

func TestRequestIDAttached(t *testing.T) {
	seen := map[string]bool{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			t.Error("missing X-Request-ID")
		}
		seen[id] = true
		w.Write([]byte(`{}`))
	})
	for i := 0; i < 3; i++ {
		if _, err := c.GetSettings(context.Background()); err != nil {
			t.Fatalf("request %d failed: %v", i, err)
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct request ids, got %d", len(seen))
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		status   int
		wantKind Kind
	}{
		{400, KindValidation},
		{401, KindAuthExpired},
		{403, KindForbidden},
		{404, KindNotFound},
		{500, KindServer},
		{418, KindTransport},
	}
	for _, tc := range tests {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				json.NewEncoder(w).Encode(map[string]string{"detail": "server says no"})
			})
			_, err := c.GetEquipment(context.Background(), 1)
			e, ok := AsError(err)
			if !ok {
				t.Fatalf("expected classified error, got %v", err)
			}
			if e.Kind != tc.wantKind {
				t.Errorf("kind = %v, want %v", e.Kind, tc.wantKind)
			}
			// Every classified failure is re-surfaced to the caller and
			// notified exactly once at the boundary.
			if len(rec.notified) != 1 {
				t.Errorf("notified %d times, want 1", len(rec.notified))
			}
		})
	}
}

func TestValidationErrorCarriesDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(400)
		json.NewEncoder(w).Encode(map[string]string{"detail": "end before start"})
	})
	_, err := c.GetEquipment(context.Background(), 1)
	e, ok := AsError(err)
	if !ok || e.Detail != "end before start" {
		t.Fatalf("expected server detail surfaced, got %v", err)
	}
}

func TestSilenced401(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	})
	rec.token = "stale"

	// A 401 from the statistics poller must not notify, must not clear
	// the session, and must still fail the call.
	err := c.get(context.Background(), "/api/statistics/summary", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsSilenced(err) {
		t.Error("statistics 401 should be silenced")
	}
	if len(rec.notified) != 0 {
		t.Errorf("silenced error was notified %d times", len(rec.notified))
	}
	if rec.authExpired != 0 || rec.token != "stale" {
		t.Error("silenced 401 must not force a logout")
	}

	// The same 401 against an admin resource clears the session.
	_, err = c.ListEquipment(context.Background(), EquipmentQuery{})
	if err == nil {
		t.Fatal("expected error")
	}
	if IsSilenced(err) {
		t.Error("admin 401 must not be silenced")
	}
	if len(rec.notified) != 1 {
		t.Errorf("notified %d times, want 1", len(rec.notified))
	}
	if rec.authExpired != 1 || rec.token != "" {
		t.Errorf("expected forced logout, authExpired=%d token=%q", rec.authExpired, rec.token)
	}
}

func TestNetworkErrorClassified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens any more

	rec := &hookRecorder{}
	c := New(Config{BaseURL: srv.URL, Timeout: time.Second},
		WithHooks(Hooks{Notify: func(e *Error) { rec.notified = append(rec.notified, e) }}))
	_, err := c.GetSettings(context.Background())
	e, ok := AsError(err)
	if !ok || e.Kind != KindNetwork {
		t.Fatalf("expected network error, got %v", err)
	}
	if len(rec.notified) != 1 {
		t.Errorf("notified %d times, want 1", len(rec.notified))
	}
}

func TestCacheBusterMonotonic(t *testing.T) {
	c := New(Config{BaseURL: "http://unused"})
	prev := int64(0)
	for i := 0; i < 100; i++ {
		v, err := strconv.ParseInt(c.cacheBuster(), 10, 64)
		if err != nil {
			t.Fatalf("non-numeric buster: %v", err)
		}
		if v <= prev {
			t.Fatalf("buster not strictly increasing: %d then %d", prev, v)
		}
		prev = v
	}
}

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit base wins", Config{BaseURL: "https://resv.example.org/", Host: "x", Port: 9}, "https://resv.example.org"},
		{"same-origin convention", Config{Host: "lab-01", Port: 8000}, "http://lab-01:8000"},
		{"defaults", Config{}, "http://localhost:8000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.resolveBaseURL(); got != tc.want {
				t.Errorf("resolveBaseURL = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestFormEncodedLogin(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("login content type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "root" || r.PostForm.Get("password") != "hunter2" {
			t.Errorf("unexpected form %v", r.PostForm)
		}
		json.NewEncoder(w).Encode(LoginResponse{AccessToken: "tok", AdminID: 1, Username: "root", Role: "admin"})
	})
	resp, err := c.AdminLogin(context.Background(), "root", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.AccessToken != "tok" {
		t.Errorf("token = %q", resp.AccessToken)
	}
}

func TestExportReturnsBlob(t *testing.T) {
	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0x01} // xlsx magic
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reservation/export" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(payload)
	})
	blob, err := c.ExportReservations(context.Background(), ExportRequest{ExportFormat: "excel", ExportScope: "all"})
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if string(blob) != string(payload) {
		t.Errorf("blob mangled: % x", blob)
	}
}
