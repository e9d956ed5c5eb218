package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName  = errors.New("resource name cannot be empty")
	ErrInvalidType        = errors.New("invalid resource type")
	ErrCapacityRequired   = errors.New("capacity is required for this resource type")
	ErrInvalidCapacity    = errors.New("capacity must be positive")
	ErrInvalidMaxDuration = errors.New("max booking duration must be at least 15 minutes")
	ErrInvalidInterval    = errors.New("booking interval must be 15, 30 or 60 minutes")
)

const MinBookingDurationMin = 15

type Resource struct {
	id             uuid.UUID
	name           string
	description    string
	rtype          Type
	location       Location
	capacity       *int
	hours          OperatingHours
	maxDurationMin int
	intervalMin    int
	restrictions   Restrictions
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewResource(
	id uuid.UUID,
	name, description string,
	rtype Type,
	location Location,
	capacity *int,
	hours OperatingHours,
	maxDurationMin, intervalMin int,
	restrictions Restrictions,
) (*Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyResourceName
	}
	if !rtype.IsValid() {
		return nil, ErrInvalidType
	}
	if rtype.RequiresCapacity() && capacity == nil {
		return nil, ErrCapacityRequired
	}
	if capacity != nil && *capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if maxDurationMin < MinBookingDurationMin {
		return nil, ErrInvalidMaxDuration
	}
	switch intervalMin {
	case 15, 30, 60:
	default:
		return nil, ErrInvalidInterval
	}

	return &Resource{
		id:             id,
		name:           name,
		description:    description,
		rtype:          rtype,
		location:       location,
		capacity:       capacity,
		hours:          hours,
		maxDurationMin: maxDurationMin,
		intervalMin:    intervalMin,
		restrictions:   restrictions,
		isActive:       true,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name, description string,
	rtype Type,
	location Location,
	capacity *int,
	hours OperatingHours,
	maxDurationMin, intervalMin int,
	restrictions Restrictions,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:             id,
		name:           name,
		description:    description,
		rtype:          rtype,
		location:       location,
		capacity:       capacity,
		hours:          hours,
		maxDurationMin: maxDurationMin,
		intervalMin:    intervalMin,
		restrictions:   restrictions,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// CanBeBookedBy runs the open-set membership tests for the requester's
// role and department. Both must pass; empty restriction lists allow all.
func (r *Resource) CanBeBookedBy(role, department string) bool {
	return r.restrictions.AllowsRole(role) && r.restrictions.AllowsDepartment(department)
}

func (r *Resource) ID() uuid.UUID              { return r.id }
func (r *Resource) Name() string               { return r.name }
func (r *Resource) Description() string        { return r.description }
func (r *Resource) Type() Type                 { return r.rtype }
func (r *Resource) Location() Location         { return r.location }
func (r *Resource) Capacity() *int             { return r.capacity }
func (r *Resource) Hours() OperatingHours      { return r.hours }
func (r *Resource) MaxDurationMin() int        { return r.maxDurationMin }
func (r *Resource) IntervalMin() int           { return r.intervalMin }
func (r *Resource) Restrictions() Restrictions { return r.restrictions }
func (r *Resource) IsActive() bool             { return r.isActive }
func (r *Resource) CreatedAt() time.Time       { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time       { return r.updatedAt }
