// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/resvlab/resv/internal/model"
)

// The raw database viewer is a thin admin diagnostic: table names,
// column shapes and paged rows straight from the backend, rendered
// without interpretation.

// DBTables lists the backend's table names.
func (c *Client) DBTables(ctx context.Context) ([]string, error) {
	var out struct {
		Tables []string `json:"tables"`
	}
	err := c.get(ctx, "/api/db/tables", nil, &out)
	return out.Tables, err
}

// DBTableColumns describes one table's columns.
func (c *Client) DBTableColumns(ctx context.Context, table string) ([]model.DBColumn, error) {
	var out struct {
		Columns []model.DBColumn `json:"columns"`
	}
	err := c.get(ctx, "/api/db/table/"+url.PathEscape(table)+"/columns", nil, &out)
	return out.Columns, err
}

// DBTableRows fetches one page of raw rows from a table.
func (c *Client) DBTableRows(ctx context.Context, table string, page, pageSize int) (model.DBRows, error) {
	v := url.Values{}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		v.Set("page_size", strconv.Itoa(pageSize))
	}
	var out model.DBRows
	err := c.get(ctx, "/api/db/table/"+url.PathEscape(table)+"/rows", v, &out)
	return out, err
}
