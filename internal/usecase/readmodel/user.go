package readmodel

import "github.com/google/uuid"

type UserRM struct {
	ID         uuid.UUID
	Email      string
	FirstName  string
	LastName   string
	Role       string
	Department string
}
