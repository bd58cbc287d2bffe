package models

// Role constants
const (
	RoleAdmin = "admin"
)

// SessionUser is the authenticated user object kept under SessionKey
type SessionUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// AdminUser is the single operator account
func AdminUser() SessionUser {
	return SessionUser{ID: "admin", Username: "Administrator", Role: RoleAdmin}
}

// IsAdmin returns true if the user has the admin role
func (u SessionUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
