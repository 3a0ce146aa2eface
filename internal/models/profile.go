package models

import "time"

// Profile is the authenticated user's account record.
type Profile struct {
	ID              int       `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"full_name"`
	ProfileImage    string    `json:"profile_image,omitempty"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProfileUpdate carries the two editable profile fields.
type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
