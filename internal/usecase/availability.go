package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campus-booking/internal/domain/resource"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrInvalidDate = errors.New("invalid availability date")

type ResourceUseCase interface {
	GetResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	GetAvailability(ctx context.Context, resourceID uuid.UUID, date string) (*readmodel.AvailabilityRM, error)
}

type resourceUseCaseImpl struct {
	resources ResourceRepository
	bookings  BookingRepository
	clock     clock.Clock
	loc       *time.Location
}

func NewResourceUseCase(resources ResourceRepository, bookings BookingRepository, clk clock.Clock, policy BookingPolicy) ResourceUseCase {
	return &resourceUseCaseImpl{
		resources: resources,
		bookings:  bookings,
		clock:     clk,
		loc:       policy.Location,
	}
}

func (u *resourceUseCaseImpl) GetResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return findResource(ctx, u.resources, id)
}

// GetAvailability computes the slot grid for one calendar day in the
// campus time zone. date is "YYYY-MM-DD"; empty means today. A resource
// whose stored hours fail to parse is reported closed rather than
// erroring out: availability must never overpromise.
func (u *resourceUseCaseImpl) GetAvailability(ctx context.Context, resourceID uuid.UUID, date string) (*readmodel.AvailabilityRM, error) {
	res, err := findResource(ctx, u.resources, resourceID)
	if err != nil {
		return nil, err
	}

	day, err := u.resolveDay(date)
	if err != nil {
		return nil, err
	}
	dayEnd := day.AddDate(0, 0, 1)

	busy, err := u.bookings.FindBusyIntervals(ctx, resourceID, day, dayEnd)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	schedule, err := res.ScheduleFor(day, busy)
	if err != nil {
		// Fail closed on corrupt operating-hours data.
		slog.Error("unusable operating hours, reporting resource closed",
			"resource_id", resourceID, "date", day.Format(time.DateOnly), "error", err)
		schedule = resource.DaySchedule{Date: day, Open: false}
	}

	rm := &readmodel.AvailabilityRM{
		ResourceID: resourceID,
		Date:       schedule.Date.Format(time.DateOnly),
		Open:       schedule.Open,
		Slots:      schedule.Slots,
	}
	if schedule.Open {
		hours := schedule.Hours
		rm.Hours = &hours
	}
	return rm, nil
}

func (u *resourceUseCaseImpl) resolveDay(date string) (time.Time, error) {
	if date == "" {
		now := u.clock.Now().In(u.loc)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, u.loc), nil
	}
	day, err := time.ParseInLocation(time.DateOnly, date, u.loc)
	if err != nil {
		return time.Time{}, errs.Mark(err, ErrInvalidDate)
	}
	return day, nil
}
