// Copyright (c) 2026 Vidora. All rights reserved.

package sec

import "time"

// Principal is the authenticated account identity attached to every protected
// request by the authentication middleware.
//
// # Security
//
// It deliberately carries no credential material: the password hash and the
// stored refresh token never leave the storage layer. A Principal is safe to
// serialize directly into API responses.
type Principal struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
