// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/resvlab/resv/internal/model"
)

// ReservationQuery filters the admin reservation listing.
type ReservationQuery struct {
	Skip        int
	Limit       int
	EquipmentID int
	UserName    string
	Status      string
	FromDate    string
	ToDate      string
}

func (q ReservationQuery) values() url.Values {
	v := url.Values{}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.EquipmentID > 0 {
		v.Set("equipment_id", strconv.Itoa(q.EquipmentID))
	}
	if q.UserName != "" {
		v.Set("user_name", q.UserName)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.FromDate != "" {
		v.Set("from_date", q.FromDate)
	}
	if q.ToDate != "" {
		v.Set("to_date", q.ToDate)
	}
	return v
}

// CreateReservationRequest is the booking form payload.
type CreateReservationRequest struct {
	EquipmentID    int    `json:"equipment_id"`
	UserName       string `json:"user_name"`
	UserDepartment string `json:"user_department"`
	UserContact    string `json:"user_contact"`
	UserEmail      string `json:"user_email,omitempty"`
	StartDatetime  string `json:"start_datetime"`
	EndDatetime    string `json:"end_datetime"`
	Purpose        string `json:"purpose,omitempty"`
	Lang           string `json:"lang,omitempty"`
	SkipEmail      bool   `json:"skip_email,omitempty"`
}

// UpdateReservationRequest carries the editable reservation fields;
// empty fields are left untouched by the backend.
type UpdateReservationRequest struct {
	StartDatetime string `json:"start_datetime,omitempty"`
	EndDatetime   string `json:"end_datetime,omitempty"`
	Purpose       string `json:"purpose,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	Status        string `json:"status,omitempty"` // admin only
	Lang          string `json:"lang,omitempty"`
}

// ReservationResult is the success/message envelope some reservation
// endpoints wrap their payloads in.
type ReservationResult struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    model.Reservation `json:"data"`
}

// ExportRequest drives the binary export endpoint.
type ExportRequest struct {
	ExportFormat    string           `json:"export_format"` // "excel" or "csv"
	ExportScope     string           `json:"export_scope"`  // "current" or "all"
	SelectedFields  []string         `json:"selected_fields,omitempty"`
	CurrentData     []map[string]any `json:"current_data,omitempty"`
	ReservationCode string           `json:"reservation_code,omitempty"`
	UserName        string           `json:"user_name,omitempty"`
	Status          string           `json:"status,omitempty"`
	FromDate        string           `json:"from_date,omitempty"`
	ToDate          string           `json:"to_date,omitempty"`
}

// CreateReservation books a device.
func (c *Client) CreateReservation(ctx context.Context, req CreateReservationRequest) (ReservationResult, error) {
	var out ReservationResult
	err := c.post(ctx, "/api/reservation/", nil, req, &out)
	return out, err
}

// ListReservations fetches a page of reservations (admin).
func (c *Client) ListReservations(ctx context.Context, q ReservationQuery) (model.ReservationList, error) {
	var out model.ReservationList
	err := c.get(ctx, "/api/reservation", q.values(), &out)
	return out, err
}

// GetReservation fetches a reservation by its bare identifier path.
// Reservation status must always be read fresh, so the request carries
// a cache-busting timestamp.
func (c *Client) GetReservation(ctx context.Context, code string) (model.Reservation, error) {
	v := url.Values{}
	v.Set("_t", c.cacheBuster())
	var out model.Reservation
	err := c.get(ctx, "/api/reservation/"+url.PathEscape(code), v, &out)
	return out, err
}

// GetReservationByCode fetches a reservation by code, optionally
// narrowed by a reservation number when one code covers several
// recurring children. A zero or non-number Ref omits the parameter
// entirely; it is never serialized blindly into the query string.
func (c *Client) GetReservationByCode(ctx context.Context, code string, number Ref) (ReservationResult, error) {
	v := url.Values{}
	v.Set("_t", c.cacheBuster())
	if number.Kind() == RefNumber {
		v.Set("reservation_number", number.Value())
	}
	var out ReservationResult
	err := c.get(ctx, "/api/reservation/code/"+url.PathEscape(code), v, &out)
	return out, err
}

// GetReservationByNumber fetches a reservation by its "RN-..." number.
func (c *Client) GetReservationByNumber(ctx context.Context, number string) (ReservationResult, error) {
	ref := ByNumber(number)
	if ref.IsZero() {
		return ReservationResult{}, fmt.Errorf("invalid reservation number %q", number)
	}
	v := url.Values{}
	v.Set("_t", c.cacheBuster())
	var out ReservationResult
	err := c.get(ctx, "/api/reservation/number/"+url.PathEscape(ref.Value()), v, &out)
	return out, err
}

// UpdateReservation edits a reservation addressed by code.
func (c *Client) UpdateReservation(ctx context.Context, code string, req UpdateReservationRequest) (ReservationResult, error) {
	var out ReservationResult
	err := c.put(ctx, "/api/reservation/code/"+url.PathEscape(code), nil, req, &out)
	return out, err
}

// CancelReservation cancels the reservation(s) behind a code. Without a
// reservation number every reservation sharing the code is cancelled;
// with one, only that occurrence.
func (c *Client) CancelReservation(ctx context.Context, code string, number Ref) (ReservationResult, error) {
	body := map[string]any{"_t": c.cacheBuster()}
	if number.Kind() == RefNumber {
		body["reservation_number"] = number.Value()
	}
	var out ReservationResult
	err := c.post(ctx, "/api/reservation/cancel/code/"+url.PathEscape(code), nil, body, &out)
	return out, err
}

// GetReservationQRCode returns the check-in QR payload for a code.
func (c *Client) GetReservationQRCode(ctx context.Context, code string) (string, error) {
	var out struct {
		QRCodeURL string `json:"qrcode_url"`
	}
	err := c.get(ctx, "/api/reservation/qrcode/"+url.PathEscape(code), nil, &out)
	return out.QRCodeURL, err
}

// GetReservationHistory lists a reservation's audit trail, optionally
// narrowed by reservation number.
func (c *Client) GetReservationHistory(ctx context.Context, code string, number Ref) ([]model.HistoryEntry, error) {
	v := url.Values{}
	v.Set("_t", c.cacheBuster())
	if number.Kind() == RefNumber {
		v.Set("reservation_number", number.Value())
	}
	var out []model.HistoryEntry
	err := c.get(ctx, "/api/reservation/code/"+url.PathEscape(code)+"/history", v, &out)
	return out, err
}

// ExportReservations downloads the reservation export as a binary blob
// (xlsx or csv), to be written to a file by the caller.
func (c *Client) ExportReservations(ctx context.Context, req ExportRequest) ([]byte, error) {
	var blob []byte
	err := c.post(ctx, "/api/reservation/export", nil, req, &blob)
	return blob, err
}
