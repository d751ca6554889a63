// Copyright (c) 2026 Vidora. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidora-app/vidora/pkg/pagination"
)

/*
TestFromRequest verifies query parsing and clamping behavior.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/videos", 1, 10},
		{"explicit", "/videos?page=3&limit=25", 3, 25},
		{"zero_page", "/videos?page=0", 1, 10},
		{"negative_page", "/videos?page=-2", 1, 10},
		{"excessive_limit", "/videos?limit=5000", 1, 10},
		{"garbage", "/videos?page=abc&limit=xyz", 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			p := pagination.FromRequest(r)

			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

/*
TestOffset verifies the skip math: skip = (page-1) * limit.
*/
func TestOffset(t *testing.T) {
	tests := []struct {
		page   int
		limit  int
		offset int
	}{
		{1, 10, 0},
		{2, 10, 10},
		{5, 20, 80},
		{0, 10, 0},
	}

	for _, tt := range tests {
		p := pagination.Params{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.offset, p.Offset())
	}
}
