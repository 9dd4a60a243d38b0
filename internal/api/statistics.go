// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import "context"

// Statistics is the dashboard summary document. The backend returns a
// loose bag of counters; unknown keys are preserved.
type Statistics map[string]any

// Count reads one counter, tolerating the float64 that JSON numbers
// decode to.
func (s Statistics) Count(key string) int {
	switch v := s[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// GetStatistics fetches the dashboard summary. The path is on the
// silent list: a 401 while logged out settles quietly so the home view
// can poll without spamming the user.
func (c *Client) GetStatistics(ctx context.Context) (Statistics, error) {
	var out Statistics
	if err := c.get(ctx, "/api/statistics/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
