package domain

import "errors"

var (
	ErrInvalidToken = errors.New("invalid identity token")
	ErrMissingToken = errors.New("missing identity token")
)

// User is the identity the provider vouches for.
// Firebase UID is the primary identifier.
type User struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}
