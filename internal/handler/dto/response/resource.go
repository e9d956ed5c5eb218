package response

import (
	"time"

	"campus-booking/internal/domain/resource"
	"campus-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	Type           string                 `json:"type"`
	Location       resource.Location      `json:"location"`
	Capacity       *int                   `json:"capacity,omitempty"`
	Hours          resource.OperatingHours `json:"operating_hours"`
	MaxDurationMin int                    `json:"max_booking_duration"`
	IntervalMin    int                    `json:"booking_interval"`
	Restrictions   resource.Restrictions  `json:"restrictions"`
	IsActive       bool                   `json:"is_active"`
	CreatedAt      time.Time              `json:"created_at"`
}

func FromResource(r *resource.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:             r.ID(),
		Name:           r.Name(),
		Description:    r.Description(),
		Type:           r.Type().String(),
		Location:       r.Location(),
		Capacity:       r.Capacity(),
		Hours:          r.Hours(),
		MaxDurationMin: r.MaxDurationMin(),
		IntervalMin:    r.IntervalMin(),
		Restrictions:   r.Restrictions(),
		IsActive:       r.IsActive(),
		CreatedAt:      r.CreatedAt(),
	}
}

type SlotResponse struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
}

type AvailabilityResponse struct {
	ResourceID uuid.UUID           `json:"resource_id"`
	Date       string              `json:"date"`
	Open       bool                `json:"open"`
	Hours      *resource.HoursSpec `json:"operating_hours,omitempty"`
	Slots      []SlotResponse      `json:"slots"`
}

func FromAvailabilityRM(rm *readmodel.AvailabilityRM) *AvailabilityResponse {
	slots := make([]SlotResponse, len(rm.Slots))
	for i, s := range rm.Slots {
		slots[i] = SlotResponse{StartTime: s.Start, EndTime: s.End, IsAvailable: s.IsAvailable}
	}
	return &AvailabilityResponse{
		ResourceID: rm.ResourceID,
		Date:       rm.Date,
		Open:       rm.Open,
		Hours:      rm.Hours,
		Slots:      slots,
	}
}
