package models

import "time"

// Role determines which permissions a user holds. The role set is fixed;
// there are no per-user overrides.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// User represents an authenticated account.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthState is the persisted session record. Token is an opaque session
// marker, not a verified credential. Sessions never expire; they exist until
// logout removes the record.
type AuthState struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	User            *User  `json:"user"`
	Token           string `json:"token"`
}
