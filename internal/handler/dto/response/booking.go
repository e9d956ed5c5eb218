package response

import (
	"time"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	ResourceID         uuid.UUID                   `json:"resource_id"`
	ResourceName       string                      `json:"resource_name"`
	ResourceType       string                      `json:"resource_type"`
	UserID             uuid.UUID                   `json:"user_id"`
	UserName           string                      `json:"user_name"`
	UserEmail          string                      `json:"user_email"`
	StartTime          time.Time                   `json:"start_time"`
	EndTime            time.Time                   `json:"end_time"`
	Purpose            string                      `json:"purpose"`
	AttendeeCount      int                         `json:"attendee_count"`
	Status             string                      `json:"status"`
	CheckInTime        *time.Time                  `json:"check_in_time,omitempty"`
	CheckOutTime       *time.Time                  `json:"check_out_time,omitempty"`
	CancellationReason *string                     `json:"cancellation_reason,omitempty"`
	Feedback           *booking.Feedback           `json:"feedback,omitempty"`
	Notifications      []booking.NotificationEntry `json:"notifications_sent,omitempty"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Purpose      string    `json:"purpose"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromBookingRM(rm *readmodel.BookingRM) *BookingResponse {
	return &BookingResponse{
		ID:                 rm.ID,
		ResourceID:         rm.ResourceID,
		ResourceName:       rm.ResourceName,
		ResourceType:       rm.ResourceType,
		UserID:             rm.UserID,
		UserName:           rm.UserName,
		UserEmail:          rm.UserEmail,
		StartTime:          rm.StartTime,
		EndTime:            rm.EndTime,
		Purpose:            rm.Purpose,
		AttendeeCount:      rm.AttendeeCount,
		Status:             rm.Status,
		CheckInTime:        rm.CheckInTime,
		CheckOutTime:       rm.CheckOutTime,
		CancellationReason: rm.CancellationReason,
		Feedback:           rm.Feedback,
		Notifications:      rm.Notifications,
		CreatedAt:          rm.CreatedAt,
		UpdatedAt:          rm.UpdatedAt,
	}
}

func FromBookingListRM(rm *readmodel.BookingListRM) *BookingListResponse {
	return &BookingListResponse{
		ID:           rm.ID,
		ResourceID:   rm.ResourceID,
		ResourceName: rm.ResourceName,
		StartTime:    rm.StartTime,
		EndTime:      rm.EndTime,
		Purpose:      rm.Purpose,
		Status:       rm.Status,
		CreatedAt:    rm.CreatedAt,
	}
}
