package readmodel

import (
	"campus-booking/internal/domain/resource"

	"github.com/google/uuid"
)

// AvailabilityRM is a resource's slot grid for one calendar day.
type AvailabilityRM struct {
	ResourceID uuid.UUID
	Date       string // YYYY-MM-DD in the campus time zone
	Open       bool
	Hours      *resource.HoursSpec
	Slots      []resource.TimeSlot
}
