// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"

	"github.com/resvlab/resv/internal/model"
)

// UserCredentials is the non-admin login payload (JSON, unlike the
// admin form-encoded grant).
type UserCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserLogin authenticates a regular user.
func (c *Client) UserLogin(ctx context.Context, creds UserCredentials) (LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, "/api/user/login", nil, creds, &out)
	return out, err
}

// GetProfile fetches the authenticated user's profile.
func (c *Client) GetProfile(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.get(ctx, "/api/user/profile", nil, &out)
	return out, err
}
