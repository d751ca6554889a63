// Copyright (c) 2026 Vidora. All rights reserved.

package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidora-app/vidora/internal/media"
)

/*
TestAssetIDFromURL verifies the id derivation contract: trailing path
segment, directory stripped, extension stripped.
*/
func TestAssetIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "https://cdn.vidora.app/0192ab34-cd56-7890-abcd-ef0123456789.mp4", "0192ab34-cd56-7890-abcd-ef0123456789"},
		{"nested_path", "https://cdn.vidora.app/media/thumbs/abc123.webp", "abc123"},
		{"no_extension", "https://cdn.vidora.app/abc123", "abc123"},
		{"multiple_dots", "https://cdn.vidora.app/video.final.mp4", "video.final"},
		{"empty", "", ""},
		{"bare_filename", "avatar.png", "avatar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, media.AssetIDFromURL(tt.url))
		})
	}
}

/*
TestExtension verifies extension extraction used for object key naming.
*/
func TestExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"lowercase", "clip.mp4", ".mp4"},
		{"uppercase_normalized", "PHOTO.JPG", ".jpg"},
		{"no_extension", "README", ""},
		{"hidden_file", ".env", ""},
		{"trailing_dot", "weird.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, media.Extension(tt.filename))
		})
	}
}
