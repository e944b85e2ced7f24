package domain

import "fmt"

// Role is the caller's access level as reported by the identity
// collaborator. A tagged variant instead of raw string comparison.
type Role int

const (
	// RoleUser is an attendee: books, cancels, leaves feedback.
	RoleUser Role = iota
	// RoleAdmin is an organizer: owns events, locations and categories.
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	default:
		return "User"
	}
}

// ParseRole maps the identity collaborator's role string to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Admin", "admin":
		return RoleAdmin, nil
	case "User", "user":
		return RoleUser, nil
	default:
		return RoleUser, fmt.Errorf("unknown role %q", s)
	}
}

// Session is the explicit identity value passed into every operation that
// needs the acting user. The core never reads ambient auth state.
type Session struct {
	UserID int64
	Role   Role
}
