// Copyright (c) 2025 Resv Team
// Resv - equipment reservation console
// This source code is licensed under the MIT license found in the LICENSE file.

package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/resvlab/resv/internal/model"
)

// The backend proxies Unsplash so the client never needs an API key;
// these calls go through the same pipeline as everything else.

// SearchPhotos queries the image proxy.
func (c *Client) SearchPhotos(ctx context.Context, query string, page, perPage int) (model.UnsplashSearchResult, error) {
	v := url.Values{}
	v.Set("query", query)
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		v.Set("per_page", strconv.Itoa(perPage))
	}
	var out model.UnsplashSearchResult
	err := c.get(ctx, "/api/unsplash/search", v, &out)
	return out, err
}

// RandomPhoto fetches one random photo for a keyword.
func (c *Client) RandomPhoto(ctx context.Context, query string) (model.UnsplashPhoto, error) {
	v := url.Values{}
	v.Set("query", query)
	var out model.UnsplashPhoto
	err := c.get(ctx, "/api/unsplash/random", v, &out)
	return out, err
}

// equipmentKeywords maps device categories to search keywords that
// return presentable stock photos.
var equipmentKeywords = map[string]string{
	"laptop":    "laptop computer",
	"projector": "projector device",
	"camera":    "digital camera",
	"audio":     "audio equipment",
	"printer":   "office printer",
	"tablet":    "tablet device",
	"other":     "technology equipment",
}

// EquipmentPhoto fetches a category-appropriate stock photo for a
// device without an uploaded image.
func (c *Client) EquipmentPhoto(ctx context.Context, category string) (model.UnsplashPhoto, error) {
	keyword, ok := equipmentKeywords[strings.ToLower(category)]
	if !ok {
		keyword = equipmentKeywords["other"]
	}
	return c.RandomPhoto(ctx, keyword)
}
