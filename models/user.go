package models

// User mirrors the identity provider's account record. It is never persisted
// locally; profile reads fetch it from the provider on demand.
type User struct {
	UserID        string `json:"userId"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}
