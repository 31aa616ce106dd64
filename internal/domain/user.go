package domain

import "time"

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// ParseRole coerces arbitrary input to a supported role. Anything other than
// an exact "admin" becomes a regular user.
func ParseRole(s string) UserRole {
	if s == string(UserRoleAdmin) {
		return UserRoleAdmin
	}
	return UserRoleUser
}

// User represents a registered account. PasswordHash is a bcrypt hash and
// never leaves the server; public projections use PublicUser.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// PublicUser is the projection of a user safe to return to clients.
type PublicUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Role     UserRole `json:"role"`
}

// Public returns the client-safe projection of the user.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Role: u.Role}
}
