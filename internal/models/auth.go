package models

import "github.com/golang-jwt/jwt/v5"

// Role represents the available roles for the RBAC system.
type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleViewer  Role = "VIEWER"
)

// ValidRole reports whether the raw value names a known role.
func ValidRole(raw string) bool {
	switch Role(raw) {
	case RoleTeacher, RoleViewer:
		return true
	}
	return false
}

// CanEdit reports whether the role is allowed to mutate the gradebook.
func (r Role) CanEdit() bool {
	return r == RoleTeacher
}

// RoleClaims is the payload carried by a role token. There are no user
// accounts; the token transports nothing but the active role.
type RoleClaims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// RoleTokenResponse returns the issued token to the client.
type RoleTokenResponse struct {
	Token     string `json:"token"`
	Role      Role   `json:"role"`
	ExpiresIn int64  `json:"expires_in"`
}
