package request

import (
	"strings"
	"time"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/usecase"

	"github.com/google/uuid"
)

type AttendeeRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

type CreateBookingRequest struct {
	ResourceID    uuid.UUID         `json:"resource_id" binding:"required"`
	StartTime     time.Time         `json:"start_time" binding:"required"`
	EndTime       time.Time         `json:"end_time" binding:"required"`
	Purpose       string            `json:"purpose" binding:"required"`
	AttendeeCount int               `json:"attendee_count" binding:"omitempty,min=1"`
	Attendees     []AttendeeRequest `json:"attendees,omitempty"`
}

func (r CreateBookingRequest) ToParams() usecase.CreateBookingParams {
	return usecase.CreateBookingParams{
		ResourceID:    r.ResourceID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Purpose:       strings.TrimSpace(r.Purpose),
		AttendeeCount: r.AttendeeCount,
		Attendees:     toAttendees(r.Attendees),
	}
}

type UpdateBookingRequest struct {
	StartTime     *time.Time `json:"start_time,omitempty"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Purpose       *string    `json:"purpose,omitempty"`
	AttendeeCount *int       `json:"attendee_count,omitempty" binding:"omitempty,min=1"`
}

func (r UpdateBookingRequest) ToParams() usecase.UpdateBookingParams {
	p := usecase.UpdateBookingParams{
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		AttendeeCount: r.AttendeeCount,
	}
	if r.Purpose != nil {
		trimmed := strings.TrimSpace(*r.Purpose)
		p.Purpose = &trimmed
	}
	return p
}

func (r UpdateBookingRequest) IsEmpty() bool {
	return r.StartTime == nil && r.EndTime == nil && r.Purpose == nil && r.AttendeeCount == nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty" binding:"omitempty,max=500"`
}

func toAttendees(in []AttendeeRequest) []booking.Attendee {
	if len(in) == 0 {
		return nil
	}
	out := make([]booking.Attendee, len(in))
	for i, a := range in {
		out[i] = booking.Attendee{Name: strings.TrimSpace(a.Name), Email: strings.TrimSpace(a.Email)}
	}
	return out
}
