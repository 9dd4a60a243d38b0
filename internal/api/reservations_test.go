// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
)

func TestGetReservationByCode_QueryShape(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(ReservationResult{Success: true})
	})

	// With a valid number the parameter is present.
	ref := NumberFromValue(map[string]any{"reservation_number": "RN-123"})
	if _, err := c.GetReservationByCode(context.Background(), "abc", ref); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got := gotQuery.Get("reservation_number"); got != "RN-123" {
		t.Errorf("reservation_number = %q, want RN-123", got)
	}
	if gotQuery.Get("_t") == "" {
		t.Error("reservation read must carry the _t cache buster")
	}

	// With an unrelated object the parameter is omitted entirely.
	ref = NumberFromValue(map[string]any{"foo": 1})
	if _, err := c.GetReservationByCode(context.Background(), "abc", ref); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if _, present := gotQuery["reservation_number"]; present {
		t.Errorf("reservation_number must be absent, query was %v", gotQuery)
	}
}

func TestGetReservationByNumber_RejectsMalformed(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for a malformed number")
	})
	if _, err := c.GetReservationByNumber(context.Background(), "not a number!"); err == nil {
		t.Fatal("expected error for malformed reservation number")
	}
}

func TestCancelReservation_BodyShape(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/reservation/cancel/code/abc" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotBody = map[string]any{}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(ReservationResult{Success: true})
	})

	if _, err := c.CancelReservation(context.Background(), "abc", ByNumber("RN-77")); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if gotBody["reservation_number"] != "RN-77" {
		t.Errorf("body = %v, want reservation_number RN-77", gotBody)
	}
	if _, ok := gotBody["_t"]; !ok {
		t.Error("cancel must carry the _t cache buster")
	}

	// Cancelling without a number omits the field (cancels all children
	// behind the code).
	if _, err := c.CancelReservation(context.Background(), "abc", Ref{}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, ok := gotBody["reservation_number"]; ok {
		t.Errorf("body must omit reservation_number, got %v", gotBody)
	}
}

func TestRecurringUpdate_FutureOnlyFlag(t *testing.T) {
	var got url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(RecurringResult{Success: true})
	})

	if _, err := c.UpdateRecurringReservation(context.Background(), 5, UpdateRecurringRequest{}, true); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Get("update_future_only") != "1" {
		t.Errorf("update_future_only = %q, want 1", got.Get("update_future_only"))
	}

	if _, err := c.UpdateRecurringReservation(context.Background(), 5, UpdateRecurringRequest{}, false); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Get("update_future_only") != "0" {
		t.Errorf("update_future_only = %q, want 0", got.Get("update_future_only"))
	}
}

func TestCancelRecurring_DefaultLang(t *testing.T) {
	var got url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		json.NewEncoder(w).Encode(RecurringResult{Success: true})
	})

	if _, err := c.CancelRecurringReservation(context.Background(), 9, CancelRecurringOptions{}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got.Get("lang") != "zh_CN" {
		t.Errorf("lang = %q, want zh_CN default", got.Get("lang"))
	}
	if _, ok := got["user_email"]; ok {
		t.Error("user_email must be omitted when not provided")
	}

	if _, err := c.CancelRecurringReservation(context.Background(), 9, CancelRecurringOptions{UserEmail: "a@b.c", Lang: "en"}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got.Get("user_email") != "a@b.c" || got.Get("lang") != "en" {
		t.Errorf("query = %v", got)
	}
}
