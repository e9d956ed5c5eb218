//go:build unit || e2e

package builder

import (
	"time"

	dombooking "campus-booking/internal/domain/booking"
	reqdto "campus-booking/internal/handler/dto/request"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	ResourceID    uuid.UUID
	UserID        uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
	AttendeeCount int
	Status        dombooking.Status
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	CancelReason  string
	Feedback      *dombooking.Feedback
	CreatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:            uuid.New(),
		ResourceID:    uuid.New(),
		UserID:        uuid.New(),
		StartTime:     start,
		EndTime:       start.Add(time.Hour),
		Purpose:       "Group study session",
		AttendeeCount: 3,
		Status:        dombooking.StatusConfirmed,
		CreatedAt:     start.Add(-24 * time.Hour),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithCheckIn(at time.Time) *BookingBuilder {
	b.CheckInTime = &at
	return b
}

func (b *BookingBuilder) Build() *dombooking.Booking {
	return dombooking.Reconstruct(
		b.ID, b.ResourceID, b.UserID,
		dombooking.ReconstructTimeSlot(b.StartTime, b.EndTime),
		dombooking.ReconstructPurpose(b.Purpose),
		dombooking.Attendees{Count: b.AttendeeCount},
		b.Status,
		b.CheckInTime, b.CheckOutTime,
		b.CancelReason,
		b.Feedback,
		nil,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID:    b.ResourceID,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Purpose:       b.Purpose,
		AttendeeCount: b.AttendeeCount,
	}
}
