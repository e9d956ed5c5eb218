//go:build unit || e2e

package builder

import (
	"time"

	domuser "campus-booking/internal/domain/user"
	"campus-booking/internal/pkg/password"

	"github.com/google/uuid"
)

// DefaultPassword is the plaintext behind every built user's hash.
const DefaultPassword = "password123"

var defaultHash = func() string {
	h, err := password.HashPassword(DefaultPassword)
	if err != nil {
		panic(err)
	}
	return h
}()

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         domuser.Role
	Department   string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "student@campus.example",
		PasswordHash: defaultHash,
		FirstName:    "Alex",
		LastName:     "Kim",
		Role:         domuser.RoleStudent,
		Department:   "Computer Science",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

func (u *UserBuilder) WithRole(role domuser.Role) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) Build() *domuser.User {
	return domuser.Reconstruct(
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName,
		u.Role, u.Department, u.IsActive, time.Now(),
	)
}
