package response

import (
	"campus-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	Department string    `json:"department,omitempty"`
}

func FromUserRM(rm *readmodel.UserRM) *UserResponse {
	return &UserResponse{
		ID:         rm.ID,
		Email:      rm.Email,
		FirstName:  rm.FirstName,
		LastName:   rm.LastName,
		Role:       rm.Role,
		Department: rm.Department,
	}
}
