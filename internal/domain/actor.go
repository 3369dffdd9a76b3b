package domain

// Role represents the side of the scheduling relationship an actor belongs to
type Role string

const (
	RoleStudent  Role = "student"
	RoleProvider Role = "provider"
)

// IsValidRole reports whether s is a known role
func IsValidRole(s string) bool {
	return Role(s) == RoleStudent || Role(s) == RoleProvider
}

// Actor is the caller identity injected by the external authentication collaborator
type Actor struct {
	UserID int64
	Role   Role
}
