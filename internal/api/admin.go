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

// LoginResponse is the auth endpoint's token grant.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	AdminID     int    `json:"admin_id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

// AdminLogin exchanges credentials for a bearer token. The auth
// endpoint expects OAuth2 password-grant form encoding, not JSON.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (LoginResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	var out LoginResponse
	err := c.post(ctx, "/api/admin/login", nil, form, &out)
	return out, err
}

// ListAdmins fetches administrator accounts (superadmin).
func (c *Client) ListAdmins(ctx context.Context, skip, limit int) (model.AdminList, error) {
	v := url.Values{}
	if skip > 0 {
		v.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	var out model.AdminList
	err := c.get(ctx, "/api/admin", v, &out)
	return out, err
}

// CreateAdmin creates an administrator (superadmin). The payload is a
// free map because the password field must never end up in a reusable
// struct that views might log or render.
func (c *Client) CreateAdmin(ctx context.Context, req map[string]any) (model.Admin, error) {
	var out model.Admin
	err := c.post(ctx, "/api/admin", nil, req, &out)
	return out, err
}

// UpdateAdmin updates an administrator account.
func (c *Client) UpdateAdmin(ctx context.Context, id int, req map[string]any) (model.Admin, error) {
	var out model.Admin
	err := c.put(ctx, fmt.Sprintf("/api/admin/%d", id), nil, req, &out)
	return out, err
}

// DeleteAdmin removes an administrator (superadmin).
func (c *Client) DeleteAdmin(ctx context.Context, id int) error {
	return c.del(ctx, fmt.Sprintf("/api/admin/%d", id), nil)
}

// GetSettings fetches the system settings document.
func (c *Client) GetSettings(ctx context.Context) (model.Settings, error) {
	var out model.Settings
	err := c.get(ctx, "/api/admin/settings", nil, &out)
	return out, err
}

// UpdateSettings replaces the system settings document.
func (c *Client) UpdateSettings(ctx context.Context, s model.Settings) (model.Settings, error) {
	var out model.Settings
	err := c.put(ctx, "/api/admin/settings", nil, s, &out)
	return out, err
}
