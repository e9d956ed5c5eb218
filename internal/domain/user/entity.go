package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Read-only in this service: account provisioning lives in
// the campus identity system, we only authenticate and read role/department
// for booking entitlement checks.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	firstName    string
	lastName     string
	role         Role
	department   string
	isActive     bool
	createdAt    time.Time
}

func Reconstruct(
	id uuid.UUID,
	email, passwordHash, firstName, lastName string,
	role Role,
	department string,
	isActive bool,
	createdAt time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		firstName:    firstName,
		lastName:     lastName,
		role:         role,
		department:   department,
		isActive:     isActive,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) FirstName() string    { return u.firstName }
func (u *User) LastName() string     { return u.lastName }
func (u *User) Role() Role           { return u.role }
func (u *User) Department() string   { return u.department }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }
