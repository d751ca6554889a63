// Copyright (c) 2026 Vidora. All rights reserved.

/*
Package media defines the external object-storage boundary for binary assets
(avatars, cover images, thumbnails, video files).

Controllers never touch storage SDKs directly: they depend on the [Store]
interface and reference assets only by their public URL.

# Asset Identity

The store does not persist a structured asset id. The id of an asset is
derived from the trailing path segment of its public URL, stripped of the
directory path and the file extension. This derivation is a hard contract
with the asset store's URL shape and must be preserved exactly.
*/
package media

import (
	"context"
	"io"
	"strings"
	"time"
)

// Upload is an inbound binary stream handed from a multipart form to [Store].
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// Asset describes a stored binary object, referenced by public URL.
type Asset struct {
	// URL is the public location of the asset. Its trailing path segment
	// (minus extension) doubles as the asset id for removal.
	URL string `json:"url"`

	// ContentType is the MIME type reported at upload time.
	ContentType string `json:"contentType"`

	// Size is the stored object size in bytes.
	Size int64 `json:"size"`

	// UploadedAt is when the object finished uploading.
	UploadedAt time.Time `json:"uploadedAt"`
}

// Store is the media delegate consumed by resource controllers.
type Store interface {

	/*
		Store uploads a binary stream and returns the resulting [Asset].

		Parameters:
		  - ctx: context.Context
		  - filename: the client-supplied file name (used for the extension)
		  - contentType: MIME type of the stream
		  - body: the asset bytes

		Returns:
		  - *Asset: URL and derived metadata of the stored object
		  - error: upload failures
	*/
	Store(ctx context.Context, filename, contentType string, body io.Reader) (*Asset, error)

	/*
		Remove deletes a previously stored asset by its derived id.

		Parameters:
		  - ctx: context.Context
		  - assetID: value produced by [AssetIDFromURL]

		Returns:
		  - error: deletion failures
	*/
	Remove(ctx context.Context, assetID string) error
}

// AssetIDFromURL derives the asset id from a stored public URL.
//
// The derivation strips the directory path and the file extension:
//
//	https://cdn.vidora.app/media/0192ab-thumb.webp  ->  0192ab-thumb
//
// An empty URL yields an empty id; callers treat that as "nothing to remove".
func AssetIDFromURL(url string) string {
	if url == "" {
		return ""
	}

	// Strip the directory path.
	filename := url
	if idx := strings.LastIndex(filename, "/"); idx >= 0 {
		filename = filename[idx+1:]
	}

	// Strip the extension.
	if idx := strings.LastIndex(filename, "."); idx > 0 {
		filename = filename[:idx]
	}

	return filename
}

// Extension returns the lowercase file extension of a name, dot included.
// Returns "" when the name carries no extension.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx:])
}
