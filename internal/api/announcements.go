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

// ListAnnouncements fetches the active announcements shown on the
// dashboard.
func (c *Client) ListAnnouncements(ctx context.Context, skip, limit int) ([]model.Announcement, error) {
	var out []model.Announcement
	err := c.get(ctx, "/api/announcements/", pageValues(skip, limit), &out)
	return out, err
}

// AllAnnouncements fetches every announcement including inactive ones
// (admin).
func (c *Client) AllAnnouncements(ctx context.Context, skip, limit int) ([]model.Announcement, error) {
	var out []model.Announcement
	err := c.get(ctx, "/api/announcements/all", pageValues(skip, limit), &out)
	return out, err
}

// GetAnnouncement fetches one announcement.
func (c *Client) GetAnnouncement(ctx context.Context, id int) (model.Announcement, error) {
	var out model.Announcement
	err := c.get(ctx, fmt.Sprintf("/api/announcements/%d", id), nil, &out)
	return out, err
}

// CreateAnnouncement publishes an announcement (admin).
func (c *Client) CreateAnnouncement(ctx context.Context, a model.Announcement) (model.Announcement, error) {
	var out model.Announcement
	err := c.post(ctx, "/api/announcements/", nil, a, &out)
	return out, err
}

// UpdateAnnouncement edits an announcement (admin).
func (c *Client) UpdateAnnouncement(ctx context.Context, id int, a model.Announcement) (model.Announcement, error) {
	var out model.Announcement
	err := c.put(ctx, fmt.Sprintf("/api/announcements/%d", id), nil, a, &out)
	return out, err
}

// DeleteAnnouncement removes an announcement (admin).
func (c *Client) DeleteAnnouncement(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/api/announcements/%d", id), nil)
}

func pageValues(skip, limit int) url.Values {
	v := url.Values{}
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}
