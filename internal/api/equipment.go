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

// EquipmentQuery filters the equipment listing. Zero fields are
// omitted from the query string.
type EquipmentQuery struct {
	Skip     int
	Limit    int
	Category string
	Status   string
	Search   string
}

func (q EquipmentQuery) values() url.Values {
	v := url.Values{}
	if q.Skip > 0 {
		v.Set("skip", strconv.Itoa(q.Skip))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// ListEquipment fetches a page of devices.
func (c *Client) ListEquipment(ctx context.Context, q EquipmentQuery) (model.EquipmentList, error) {
	var out model.EquipmentList
	err := c.get(ctx, "/api/equipment", q.values(), &out)
	return out, err
}

// GetEquipment fetches one device.
func (c *Client) GetEquipment(ctx context.Context, id int) (model.Equipment, error) {
	var out model.Equipment
	err := c.get(ctx, fmt.Sprintf("/api/equipment/%d", id), nil, &out)
	return out, err
}

// GetEquipmentCategoryNames returns the distinct category names devices
// are filed under (the lightweight variant used by the browse filter).
func (c *Client) GetEquipmentCategoryNames(ctx context.Context) ([]string, error) {
	var out struct {
		Categories []string `json:"categories"`
	}
	err := c.get(ctx, "/api/equipment/categories", nil, &out)
	return out.Categories, err
}

// GetAvailability fetches a device's free/busy windows for a date range.
func (c *Client) GetAvailability(ctx context.Context, id int, startDate, endDate string) (model.Availability, error) {
	v := url.Values{}
	v.Set("start_date", startDate)
	v.Set("end_date", endDate)
	var out model.Availability
	err := c.get(ctx, fmt.Sprintf("/api/equipment/%d/availability", id), v, &out)
	return out, err
}

// CreateEquipment creates a device (admin).
func (c *Client) CreateEquipment(ctx context.Context, eq model.Equipment) (model.Equipment, error) {
	var out model.Equipment
	err := c.post(ctx, "/api/equipment", nil, eq, &out)
	return out, err
}

// UpdateEquipment updates a device (admin).
func (c *Client) UpdateEquipment(ctx context.Context, id int, eq model.Equipment) (model.Equipment, error) {
	var out model.Equipment
	err := c.put(ctx, fmt.Sprintf("/api/equipment/%d", id), nil, eq, &out)
	return out, err
}

// DeleteEquipment removes a device (admin).
func (c *Client) DeleteEquipment(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/api/equipment/%d", id), nil)
}
