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

// ListCategories fetches a page of equipment categories.
func (c *Client) ListCategories(ctx context.Context, skip, limit int) (model.CategoryList, error) {
	v := url.Values{}
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out model.CategoryList
	err := c.get(ctx, "/api/equipment-categories", v, &out)
	return out, err
}

// AllCategories fetches every category, unpaged.
func (c *Client) AllCategories(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	err := c.get(ctx, "/api/equipment-categories/all", nil, &out)
	return out, err
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, id int) (model.Category, error) {
	var out model.Category
	err := c.get(ctx, fmt.Sprintf("/api/equipment-categories/%d", id), nil, &out)
	return out, err
}

// CreateCategory creates a category (admin).
func (c *Client) CreateCategory(ctx context.Context, cat model.Category) (model.Category, error) {
	var out model.Category
	err := c.post(ctx, "/api/equipment-categories", nil, cat, &out)
	return out, err
}

// UpdateCategory updates a category (admin).
func (c *Client) UpdateCategory(ctx context.Context, id int, cat model.Category) (model.Category, error) {
	var out model.Category
	err := c.put(ctx, fmt.Sprintf("/api/equipment-categories/%d", id), nil, cat, &out)
	return out, err
}

// DeleteCategory removes a category (admin).
func (c *Client) DeleteCategory(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/api/equipment-categories/%d", id), nil)
}
