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

// CreateRecurringRequest is the recurring booking payload. PatternType
// is one of daily, weekly, monthly or custom; DaysOfWeek uses 0 for
// Sunday.
type CreateRecurringRequest struct {
	EquipmentID    int    `json:"equipment_id"`
	PatternType    string `json:"pattern_type"`
	DaysOfWeek     []int  `json:"days_of_week,omitempty"`
	DaysOfMonth    []int  `json:"days_of_month,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	UserName       string `json:"user_name"`
	UserDepartment string `json:"user_department"`
	UserContact    string `json:"user_contact"`
	UserEmail      string `json:"user_email"`
	Purpose        string `json:"purpose,omitempty"`
	Lang           string `json:"lang,omitempty"`
}

// UpdateRecurringRequest carries the editable recurring fields.
type UpdateRecurringRequest struct {
	PatternType string `json:"pattern_type,omitempty"`
	DaysOfWeek  []int  `json:"days_of_week,omitempty"`
	DaysOfMonth []int  `json:"days_of_month,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	UserEmail   string `json:"user_email,omitempty"`
	Status      string `json:"status,omitempty"`
	Lang        string `json:"lang,omitempty"`
}

// RecurringResult is the success/message envelope for recurring
// operations.
type RecurringResult struct {
	Success bool                       `json:"success"`
	Message string                     `json:"message"`
	Data    model.RecurringReservation `json:"data"`
}

// CancelRecurringOptions tunes the cancellation notification. Lang
// defaults to zh_CN, the backend's notification default.
type CancelRecurringOptions struct {
	UserEmail string
	Lang      string
}

// CreateRecurringReservation books a repeating reservation; the
// response reports how many children were planned and created, and any
// conflicting dates that were skipped.
func (c *Client) CreateRecurringReservation(ctx context.Context, req CreateRecurringRequest) (RecurringResult, error) {
	var out RecurringResult
	err := c.post(ctx, "/api/recurring-reservation", nil, req, &out)
	return out, err
}

// ListRecurringReservations fetches a page of recurring reservations.
func (c *Client) ListRecurringReservations(ctx context.Context, skip, limit int) (model.RecurringReservationList, error) {
	v := url.Values{}
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out model.RecurringReservationList
	err := c.get(ctx, "/api/recurring-reservation", v, &out)
	return out, err
}

// GetRecurringReservation fetches one recurring reservation by id.
func (c *Client) GetRecurringReservation(ctx context.Context, id int) (model.RecurringReservation, error) {
	var out model.RecurringReservation
	err := c.get(ctx, fmt.Sprintf("/api/recurring-reservation/%d", id), nil, &out)
	return out, err
}

// GetRecurringReservationByCode fetches a recurring reservation by its
// reservation code.
func (c *Client) GetRecurringReservationByCode(ctx context.Context, code string) (model.RecurringReservation, error) {
	var out model.RecurringReservation
	err := c.get(ctx, "/api/recurring-reservation/code/"+url.PathEscape(code), nil, &out)
	return out, err
}

// UpdateRecurringReservation edits a recurring reservation. When
// futureOnly is true (the default everywhere in the UI) only
// occurrences that have not started yet are rewritten; past children
// keep their state.
func (c *Client) UpdateRecurringReservation(ctx context.Context, id int, req UpdateRecurringRequest, futureOnly bool) (RecurringResult, error) {
	v := url.Values{}
	if futureOnly {
		v.Set("update_future_only", "1")
	} else {
		v.Set("update_future_only", "0")
	}
	var out RecurringResult
	err := c.put(ctx, fmt.Sprintf("/api/recurring-reservation/%d", id), v, req, &out)
	return out, err
}

// CancelRecurringReservation cancels a recurring reservation and its
// future children, optionally notifying the given address.
func (c *Client) CancelRecurringReservation(ctx context.Context, id int, opts CancelRecurringOptions) (RecurringResult, error) {
	v := url.Values{}
	if opts.UserEmail != "" {
		v.Set("user_email", opts.UserEmail)
	}
	lang := opts.Lang
	if lang == "" {
		lang = "zh_CN"
	}
	v.Set("lang", lang)
	var out RecurringResult
	err := c.post(ctx, fmt.Sprintf("/api/recurring-reservation/cancel/%d", id), v, nil, &out)
	return out, err
}

// GetChildReservations lists the child reservations generated by a
// recurring reservation. includePast keeps occurrences that already
// ended; the default view hides them.
func (c *Client) GetChildReservations(ctx context.Context, id int, includePast bool) ([]model.Reservation, error) {
	v := url.Values{}
	if includePast {
		v.Set("include_past", "1")
	} else {
		v.Set("include_past", "0")
	}
	var out []model.Reservation
	err := c.get(ctx, fmt.Sprintf("/api/recurring-reservation/%d/reservations", id), v, &out)
	return out, err
}
