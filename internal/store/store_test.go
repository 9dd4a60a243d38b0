// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package store

import (
	"context"
	"testing"

	"github.com/resvlab/resv/internal/model"
)

func newTestStore(t *testing.T) *BunStore {
	t.Helper()
	s, err := New("sqlite", "file:store_"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	s := newTestStore(t)
	v, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "" {
		t.Errorf("missing key returned %q", v)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, KeyLanguage, "en"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, KeyLanguage, "zh-CN"); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	v, err := s.Get(ctx, KeyLanguage)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "zh-CN" {
		t.Errorf("language = %q, want zh-CN", v)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, KeyToken, "tok"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, KeyToken); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if v, _ := s.Get(ctx, KeyToken); v != "" {
		t.Errorf("token still present: %q", v)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := model.Session{
		Token: "tok-abc",
		User:  model.User{ID: 3, Username: "root", Name: "Root", Role: model.RoleSuperAdmin},
	}
	if err := SaveSession(ctx, s, in); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	out, err := LoadSession(ctx, s)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v vs %+v", out, in)
	}

	if err := ClearSession(ctx, s); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	out, err = LoadSession(ctx, s)
	if err != nil {
		t.Fatalf("LoadSession after clear: %v", err)
	}
	if out.IsLoggedIn() {
		t.Errorf("session should be cleared, got %+v", out)
	}
}

func TestCorruptUserJSONDegrades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if err := s.Set(ctx, KeyToken, "tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, KeyUser, "{not json"); err != nil {
		t.Fatal(err)
	}
	sess, err := LoadSession(ctx, s)
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if sess.Token != "tok" {
		t.Errorf("token lost: %+v", sess)
	}
	if sess.User != (model.User{}) {
		t.Errorf("corrupt user should decode to zero, got %+v", sess.User)
	}
}

func TestUnsupportedStoreType(t *testing.T) {
	if _, err := New("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported store type")
	}
}
