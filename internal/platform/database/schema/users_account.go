// Copyright (c) 2026 Vidora. All rights reserved.

// Package schema centralizes table and column identifiers so that SQL built
// in the repository layer never contains free-floating string literals.
package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table         string
	ID            string
	Username      string
	Email         string
	FullName      string
	Password      string
	AvatarURL     string
	CoverImageURL string
	RefreshToken  string
	CreatedAt     string
	UpdatedAt     string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:         "users.account",
	ID:            "id",
	Username:      "username",
	Email:         "email",
	FullName:      "fullname",
	Password:      "passwordhash",
	AvatarURL:     "avatarurl",
	CoverImageURL: "coverimageurl",
	RefreshToken:  "refreshtoken",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.FullName, t.Password, t.AvatarURL, t.CoverImageURL, t.RefreshToken, t.CreatedAt, t.UpdatedAt}
}
