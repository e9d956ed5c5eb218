//go:build unit || e2e

package builder

import (
	"time"

	domresource "campus-booking/internal/domain/resource"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID             uuid.UUID
	Name           string
	Description    string
	Type           domresource.Type
	Location       domresource.Location
	Capacity       *int
	Hours          domresource.OperatingHours
	MaxDurationMin int
	IntervalMin    int
	Restrictions   domresource.Restrictions
}

func NewResourceBuilder() *ResourceBuilder {
	capacity := 8
	return &ResourceBuilder{
		ID:          uuid.New(),
		Name:        "Study Room 101",
		Description: "Small group study room",
		Type:        domresource.TypeStudyRoom,
		Location: domresource.Location{
			Building:   "Main Library",
			Floor:      1,
			RoomNumber: "101",
		},
		Capacity: &capacity,
		Hours: domresource.OperatingHours{
			Weekdays: domresource.HoursSpec{Start: "08:00", End: "20:00"},
			Weekends: domresource.HoursSpec{Start: "10:00", End: "16:00"},
		},
		MaxDurationMin: 120,
		IntervalMin:    30,
	}
}

func (r *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(r)
	return r
}

func (r *ResourceBuilder) WithHours(hours domresource.OperatingHours) *ResourceBuilder {
	r.Hours = hours
	return r
}

func (r *ResourceBuilder) WithInterval(minutes int) *ResourceBuilder {
	r.IntervalMin = minutes
	return r
}

func (r *ResourceBuilder) WithRestrictions(restrictions domresource.Restrictions) *ResourceBuilder {
	r.Restrictions = restrictions
	return r
}

func (r *ResourceBuilder) WithException(exc domresource.DateException) *ResourceBuilder {
	r.Hours.Exceptions = append(r.Hours.Exceptions, exc)
	return r
}

func (r *ResourceBuilder) BuildDomain() (*domresource.Resource, error) {
	return domresource.NewResource(
		r.ID, r.Name, r.Description, r.Type, r.Location, r.Capacity,
		r.Hours, r.MaxDurationMin, r.IntervalMin, r.Restrictions,
	)
}

// Build skips constructor validation; for tests exercising behavior on
// already-persisted state.
func (r *ResourceBuilder) Build() *domresource.Resource {
	now := time.Now()
	return domresource.Reconstruct(
		r.ID, r.Name, r.Description, r.Type, r.Location, r.Capacity,
		r.Hours, r.MaxDurationMin, r.IntervalMin, r.Restrictions,
		true, now, now,
	)
}
