package models

import "time"

const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

type User struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HasRole reports whether the user holds any of the given roles.
func (u User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Session is an authenticated upstream session. It is passed explicitly to
// anything that talks to the inventory API.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginRequest is the credential payload accepted by the gateway.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned to gateway clients after a successful login.
type LoginResponse struct {
	SessionID string    `json:"session_id"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}
