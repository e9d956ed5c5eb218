package readmodel

import (
	"time"

	"campus-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingRM is the denormalized booking read model: resource and user
// details are joined in by the repository, never by core logic.
type BookingRM struct {
	ID                 uuid.UUID
	ResourceID         uuid.UUID
	ResourceName       string
	ResourceType       string
	UserID             uuid.UUID
	UserName           string
	UserEmail          string
	StartTime          time.Time
	EndTime            time.Time
	Purpose            string
	AttendeeCount      int
	Status             string
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	CancellationReason *string
	Feedback           *booking.Feedback
	Notifications      []booking.NotificationEntry
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type BookingListRM struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	ResourceName string
	StartTime    time.Time
	EndTime      time.Time
	Purpose      string
	Status       string
	CreatedAt    time.Time
}
