package user

import "errors"

var ErrInvalidRole = errors.New("invalid user role")

// Role is deliberately an open string set: resource restrictions treat
// roles as extensible configuration, not a closed enum. The constants
// below are the roles the campus currently provisions.
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	if s == "" {
		return "", ErrInvalidRole
	}
	return Role(s), nil
}
