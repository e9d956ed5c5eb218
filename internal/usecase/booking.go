package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/resource"
	"campus-booking/internal/domain/user"
	"campus-booking/internal/events"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/repository"
	"campus-booking/internal/notify"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/pkg/patch"
	"campus-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrInvalidTimeRange = errors.New("invalid booking time range")
	ErrDurationExceeded = errors.New("booking duration exceeds resource maximum")
	ErrSlotConflict     = errors.New("time slot conflicts with an existing booking")
	ErrForbidden        = errors.New("not authorized for this booking operation")
	ErrInvalidState     = errors.New("operation not allowed in current booking state")
	ErrInvalidInput     = errors.New("invalid input")

	// Error marker for categorization
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindViewByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error)
	HasOverlap(ctx context.Context, resourceID uuid.UUID, slot booking.TimeSlot, excludeID uuid.UUID) (bool, error)
	FindBusyIntervals(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]resource.BusyInterval, error)
	MarkNoShows(ctx context.Context, cutoff time.Time) ([]repository.NoShowRecord, error)
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// Actor is the authenticated caller, as carried by the JWT.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// BookingPolicy carries campus-wide admission knobs resolved from config.
type BookingPolicy struct {
	CheckInGrace time.Duration
	Location     *time.Location
}

type CreateBookingParams struct {
	ResourceID    uuid.UUID
	StartTime     time.Time
	EndTime       time.Time
	Purpose       string
	AttendeeCount int
	Attendees     []booking.Attendee
}

type UpdateBookingParams struct {
	StartTime     *time.Time
	EndTime       *time.Time
	Purpose       *string
	AttendeeCount *int
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, actor Actor, p CreateBookingParams) (*readmodel.BookingRM, error)
	GetBooking(ctx context.Context, actor Actor, id uuid.UUID) (*readmodel.BookingRM, error)
	ListBookings(ctx context.Context, actor Actor) ([]*readmodel.BookingListRM, error)
	UpdateBooking(ctx context.Context, actor Actor, id uuid.UUID, p UpdateBookingParams) (*readmodel.BookingRM, error)
	CancelBooking(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*readmodel.BookingRM, error)
	CheckIn(ctx context.Context, actor Actor, id uuid.UUID) (*readmodel.BookingRM, error)
	CheckOut(ctx context.Context, actor Actor, id uuid.UUID) (*readmodel.BookingRM, error)
	SubmitFeedback(ctx context.Context, actor Actor, id uuid.UUID, rating int, comment string) (*readmodel.BookingRM, error)
}

type bookingUseCaseImpl struct {
	bookings  BookingRepository
	resources ResourceRepository
	users     UserRepository
	sink      events.Sink
	notifier  notify.Notifier
	clock     clock.Clock
	policy    BookingPolicy
}

func NewBookingUseCase(
	bookings BookingRepository,
	resources ResourceRepository,
	users UserRepository,
	sink events.Sink,
	notifier notify.Notifier,
	clk clock.Clock,
	policy BookingPolicy,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookings:  bookings,
		resources: resources,
		users:     users,
		sink:      sink,
		notifier:  notifier,
		clock:     clk,
		policy:    policy,
	}
}

// CreateBooking runs the admission pipeline in order: resource exists,
// time range sane, duration within policy, no conflict, restrictions.
// First failing check wins. The overlap pre-check is an early exit with
// a precise error; the bookings exclusion constraint remains the atomic
// guarantee, so a constraint violation on write is mapped back to a
// slot conflict rather than treated as fatal.
func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, actor Actor, p CreateBookingParams) (*readmodel.BookingRM, error) {
	res, err := findResource(ctx, u.resources, p.ResourceID)
	if err != nil {
		return nil, err
	}

	slot, err := u.validateSlot(ctx, res, p.StartTime, p.EndTime, uuid.Nil)
	if err != nil {
		return nil, err
	}

	if err := u.checkRestrictions(ctx, res, actor); err != nil {
		return nil, err
	}

	purpose, err := booking.NewPurpose(p.Purpose)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}
	count := p.AttendeeCount
	if count == 0 {
		count = 1
	}
	attendees, err := booking.NewAttendees(count, p.Attendees)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidInput)
	}

	b := booking.NewBooking(res.ID(), actor.ID, slot, purpose, attendees)
	b.RecordNotification(booking.NotificationConfirmation, u.clock.Now(), true)

	if err := u.bookings.Create(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrSlotConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	view, err := u.bookings.FindViewByID(ctx, b.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.sendBestEffort(ctx, u.notifier.SendConfirmation, view)
	u.publish(ctx, events.BookingCreated, map[string]any{
		"resource_id": res.ID(),
		"booking": map[string]any{
			"id":    b.ID(),
			"start": slot.Start(),
			"end":   slot.End(),
		},
	})

	return view, nil
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, actor Actor, id uuid.UUID) (*readmodel.BookingRM, error) {
	view, err := u.bookings.FindViewByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if view.UserID != actor.ID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return view, nil
}

func (u *bookingUseCaseImpl) ListBookings(ctx context.Context, actor Actor) ([]*readmodel.BookingListRM, error) {
	userID := actor.ID
	if actor.IsAdmin() {
		userID = uuid.Nil // admins see every booking
	}
	list, err := u.bookings.FindByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return list, nil
}

// UpdateBooking reschedules and/or patches details. Time re-validation
// (including the conflict check, excluding the booking's own interval)
// runs only when a time field actually changes.
func (u *bookingUseCaseImpl) UpdateBooking(ctx context.Context, actor Actor, id uuid.UUID, p UpdateBookingParams) (*readmodel.BookingRM, error) {
	b, err := u.getOwnedBooking(ctx, actor, id, true)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	timeChanged := p.StartTime != nil || p.EndTime != nil
	if timeChanged {
		res, err := findResource(ctx, u.resources, b.ResourceID())
		if err != nil {
			return nil, err
		}
		newStart := patch.Coalesce(p.StartTime, b.Slot().Start())
		newEnd := patch.Coalesce(p.EndTime, b.Slot().End())
		slot, err := u.validateSlot(ctx, res, newStart, newEnd, b.ID())
		if err != nil {
			return nil, err
		}
		if err := b.Reschedule(slot, now); err != nil {
			return nil, errs.Mark(err, ErrInvalidState)
		}
	}

	if p.Purpose != nil || p.AttendeeCount != nil {
		var purpose *booking.Purpose
		if p.Purpose != nil {
			pp, err := booking.NewPurpose(*p.Purpose)
			if err != nil {
				return nil, errs.Mark(err, ErrInvalidInput)
			}
			purpose = &pp
		}
		var attendees *booking.Attendees
		if p.AttendeeCount != nil {
			aa, err := booking.NewAttendees(*p.AttendeeCount, b.Attendees().List)
			if err != nil {
				return nil, errs.Mark(err, ErrInvalidInput)
			}
			attendees = &aa
		}
		if err := b.UpdateDetails(purpose, attendees, now); err != nil {
			return nil, errs.Mark(err, ErrInvalidState)
		}
	}

	view, err := u.persistAndLoad(ctx, b)
	if err != nil {
		return nil, err
	}

	u.sendBestEffort(ctx, u.notifier.SendUpdate, view)
	u.publish(ctx, events.BookingUpdated, map[string]any{
		"resource_id": b.ResourceID(),
		"booking": map[string]any{
			"id":     b.ID(),
			"start":  b.Slot().Start(),
			"end":    b.Slot().End(),
			"status": b.Status().String(),
		},
	})

	return view, nil
}

// CancelBooking is a soft transition: the row survives as an audit
// record with the reason attached.
func (u *bookingUseCaseImpl) CancelBooking(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*readmodel.BookingRM, error) {
	b, err := u.getOwnedBooking(ctx, actor, id, true)
	if err != nil {
		return nil, err
	}

	if err := b.Cancel(reason, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidState)
	}

	view, err := u.persistAndLoad(ctx, b)
	if err != nil {
		return nil, err
	}

	u.sendBestEffort(ctx, u.notifier.SendCancellation, view)
	u.publish(ctx, events.BookingCancelled, map[string]any{
		"resource_id": b.ResourceID(),
		"booking_id":  b.ID(),
	})

	return view, nil
}

// CheckIn is owner-only: an admin cannot check in on a user's behalf.
func (u *bookingUseCaseImpl) CheckIn(ctx context.Context, actor Actor, id uuid.UUID) (*readmodel.BookingRM, error) {
	b, err := u.getOwnedBooking(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}

	if err := b.CheckIn(u.clock.Now(), u.policy.CheckInGrace); err != nil {
		return nil, errs.Mark(err, ErrInvalidState)
	}

	view, err := u.persistAndLoad(ctx, b)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, events.BookingCheckedIn, map[string]any{
		"resource_id":   b.ResourceID(),
		"booking_id":    b.ID(),
		"check_in_time": b.CheckInTime(),
	})

	return view, nil
}

func (u *bookingUseCaseImpl) CheckOut(ctx context.Context, actor Actor, id uuid.UUID) (*readmodel.BookingRM, error) {
	b, err := u.getOwnedBooking(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}

	if err := b.CheckOut(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidState)
	}

	view, err := u.persistAndLoad(ctx, b)
	if err != nil {
		return nil, err
	}

	u.publish(ctx, events.BookingCheckedOut, map[string]any{
		"resource_id":    b.ResourceID(),
		"booking_id":     b.ID(),
		"check_out_time": b.CheckOutTime(),
	})

	return view, nil
}

func (u *bookingUseCaseImpl) SubmitFeedback(ctx context.Context, actor Actor, id uuid.UUID, rating int, comment string) (*readmodel.BookingRM, error) {
	b, err := u.getOwnedBooking(ctx, actor, id, false)
	if err != nil {
		return nil, err
	}

	if err := b.AttachFeedback(rating, comment, u.clock.Now()); err != nil {
		if errors.Is(err, booking.ErrInvalidRating) {
			return nil, errs.Mark(err, ErrInvalidInput)
		}
		return nil, errs.Mark(err, ErrInvalidState)
	}

	return u.persistAndLoad(ctx, b)
}

// validateSlot runs the time-based admission checks shared by create
// and reschedule: start not in the past, end after start, duration
// within the resource maximum, and no overlap with another active
// booking (excludeID skips the booking's own prior interval).
func (u *bookingUseCaseImpl) validateSlot(ctx context.Context, res *resource.Resource, start, end time.Time, excludeID uuid.UUID) (booking.TimeSlot, error) {
	if start.Before(u.clock.Now()) {
		return booking.TimeSlot{}, errs.Mark(errs.New("start time is in the past"), ErrInvalidTimeRange)
	}

	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return booking.TimeSlot{}, errs.Mark(err, ErrInvalidTimeRange)
	}

	if slot.DurationMinutes() > res.MaxDurationMin() {
		return booking.TimeSlot{}, ErrDurationExceeded
	}

	conflict, err := u.bookings.HasOverlap(ctx, res.ID(), slot, excludeID)
	if err != nil {
		return booking.TimeSlot{}, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflict {
		return booking.TimeSlot{}, ErrSlotConflict
	}

	return slot, nil
}

// checkRestrictions enforces the resource's role and department
// entitlements. The department lives on the user record, not in the
// token, so it is loaded only when actually needed.
func (u *bookingUseCaseImpl) checkRestrictions(ctx context.Context, res *resource.Resource, actor Actor) error {
	if !res.Restrictions().AllowsRole(actor.Role.String()) {
		return ErrForbidden
	}
	if len(res.Restrictions().Departments) == 0 {
		return nil
	}

	usr, err := u.users.FindByID(ctx, actor.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !res.Restrictions().AllowsDepartment(usr.Department()) {
		return ErrForbidden
	}
	return nil
}

func findResource(ctx context.Context, repo ResourceRepository, id uuid.UUID) (*resource.Resource, error) {
	res, err := repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (u *bookingUseCaseImpl) getOwnedBooking(ctx context.Context, actor Actor, id uuid.UUID, adminOverride bool) (*booking.Booking, error) {
	b, err := u.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !b.IsOwnedBy(actor.ID) && !(adminOverride && actor.IsAdmin()) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (u *bookingUseCaseImpl) persistAndLoad(ctx context.Context, b *booking.Booking) (*readmodel.BookingRM, error) {
	if err := u.bookings.Update(ctx, b); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrSlotConflict
		}
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	view, err := u.bookings.FindViewByID(ctx, b.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// publish is fire-and-forget: the booking transition is already
// committed, a sink failure only loses a downstream signal.
func (u *bookingUseCaseImpl) publish(ctx context.Context, key string, payload any) {
	if err := u.sink.Publish(ctx, key, payload); err != nil {
		slog.Warn("failed to publish booking event", "key", key, "error", err)
	}
}

func (u *bookingUseCaseImpl) sendBestEffort(ctx context.Context, send func(context.Context, *readmodel.BookingRM) error, view *readmodel.BookingRM) {
	if err := send(ctx, view); err != nil {
		slog.Warn("notification delivery failed", "booking_id", view.ID, "error", err)
	}
}
