//go:build unit

package usecase_test

import (
	"context"
	"testing"
	"time"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/resource"
	"campus-booking/internal/domain/user"
	"campus-booking/internal/events"
	"campus-booking/internal/infra"
	"campus-booking/internal/infra/repository"
	"campus-booking/internal/notify"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/usecase"
	"campus-booking/internal/usecase/readmodel"
	"campus-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes -----------------------------------------------------------------

type fakeBookingRepo struct {
	bookings   map[uuid.UUID]*booking.Booking
	overlap    bool
	overlapErr error
	createErr  error
	updateErr  error

	created    *booking.Booking
	overlapReq struct {
		resourceID uuid.UUID
		slot       booking.TimeSlot
		excludeID  uuid.UUID
	}
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*booking.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *booking.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = b
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeBookingRepo) FindViewByID(_ context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return &readmodel.BookingRM{
		ID:         b.ID(),
		ResourceID: b.ResourceID(),
		UserID:     b.UserID(),
		StartTime:  b.Slot().Start(),
		EndTime:    b.Slot().End(),
		Status:     b.Status().String(),
	}, nil
}

func (f *fakeBookingRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	var out []*readmodel.BookingListRM
	for _, b := range f.bookings {
		if userID != uuid.Nil && b.UserID() != userID {
			continue
		}
		out = append(out, &readmodel.BookingListRM{ID: b.ID(), ResourceID: b.ResourceID()})
	}
	return out, nil
}

func (f *fakeBookingRepo) HasOverlap(_ context.Context, resourceID uuid.UUID, slot booking.TimeSlot, excludeID uuid.UUID) (bool, error) {
	f.overlapReq.resourceID = resourceID
	f.overlapReq.slot = slot
	f.overlapReq.excludeID = excludeID
	return f.overlap, f.overlapErr
}

func (f *fakeBookingRepo) FindBusyIntervals(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]resource.BusyInterval, error) {
	return nil, nil
}

func (f *fakeBookingRepo) MarkNoShows(_ context.Context, _ time.Time) ([]repository.NoShowRecord, error) {
	return nil, nil
}

type fakeResourceRepo struct {
	resources map[uuid.UUID]*resource.Resource
}

func (f *fakeResourceRepo) FindByID(_ context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, ok := f.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return res, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

type recordingSink struct {
	keys []string
}

func (s *recordingSink) Publish(_ context.Context, key string, _ any) error {
	s.keys = append(s.keys, key)
	return nil
}

// ---- fixture ---------------------------------------------------------------

type fixture struct {
	uc        usecase.BookingUseCase
	bookings  *fakeBookingRepo
	resources *fakeResourceRepo
	users     *fakeUserRepo
	sink      *recordingSink
	clock     *clock.MockClock
	resource  *resource.Resource
	owner     *user.User
}

var fixtureNow = time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	res := builder.NewResourceBuilder().Build()
	owner := builder.NewUserBuilder().Build()

	f := &fixture{
		bookings:  newFakeBookingRepo(),
		resources: &fakeResourceRepo{resources: map[uuid.UUID]*resource.Resource{res.ID(): res}},
		users:     &fakeUserRepo{users: map[uuid.UUID]*user.User{owner.ID(): owner}},
		sink:      &recordingSink{},
		clock:     clock.NewMockClock(fixtureNow),
		resource:  res,
		owner:     owner,
	}
	f.uc = usecase.NewBookingUseCase(
		f.bookings, f.resources, f.users, f.sink,
		notify.NewLogNotifier(nil), f.clock,
		usecase.BookingPolicy{CheckInGrace: 15 * time.Minute, Location: time.UTC},
	)
	return f
}

func (f *fixture) actor() usecase.Actor {
	return usecase.Actor{ID: f.owner.ID(), Role: f.owner.Role()}
}

func (f *fixture) admin() usecase.Actor {
	return usecase.Actor{ID: uuid.New(), Role: user.RoleAdmin}
}

func (f *fixture) createParams() usecase.CreateBookingParams {
	return usecase.CreateBookingParams{
		ResourceID:    f.resource.ID(),
		StartTime:     fixtureNow.Add(24 * time.Hour),
		EndTime:       fixtureNow.Add(25 * time.Hour),
		Purpose:       "Thesis meeting",
		AttendeeCount: 2,
	}
}

func (f *fixture) seedBooking(t *testing.T) *booking.Booking {
	t.Helper()
	b := builder.NewBookingBuilder().
		With(func(bb *builder.BookingBuilder) {
			bb.ResourceID = f.resource.ID()
			bb.UserID = f.owner.ID()
		}).
		WithSlot(fixtureNow.Add(24*time.Hour), fixtureNow.Add(25*time.Hour)).
		Build()
	f.bookings.bookings[b.ID()] = b
	return b
}

// ---- create ----------------------------------------------------------------

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("admits a clean request and publishes the event", func(t *testing.T) {
		f := newFixture(t)

		view, err := f.uc.CreateBooking(ctx, f.actor(), f.createParams())
		require.NoError(t, err)
		require.NotNil(t, view)

		assert.Equal(t, booking.StatusConfirmed.String(), view.Status)
		assert.Equal(t, []string{events.BookingCreated}, f.sink.keys)

		// Confirmation is logged on the aggregate at admission time.
		require.NotNil(t, f.bookings.created)
		require.Len(t, f.bookings.created.Notifications(), 1)
		assert.Equal(t, booking.NotificationConfirmation, f.bookings.created.Notifications()[0].Type)
	})

	t.Run("unknown resource fails before any time validation", func(t *testing.T) {
		f := newFixture(t)
		p := f.createParams()
		p.ResourceID = uuid.New()
		p.StartTime = fixtureNow.Add(-time.Hour) // also in the past

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrResourceNotFound)
	})

	t.Run("past start time rejected", func(t *testing.T) {
		f := newFixture(t)
		p := f.createParams()
		p.StartTime = fixtureNow.Add(-time.Minute)

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrInvalidTimeRange)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		f := newFixture(t)
		p := f.createParams()
		p.EndTime = p.StartTime.Add(-time.Minute)

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrInvalidTimeRange)
	})

	t.Run("duration above resource maximum rejected", func(t *testing.T) {
		f := newFixture(t)
		p := f.createParams()
		p.EndTime = p.StartTime.Add(3 * time.Hour) // max is 120min

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrDurationExceeded)
	})

	t.Run("overlap pre-check rejects with a conflict", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.overlap = true

		_, err := f.uc.CreateBooking(ctx, f.actor(), f.createParams())
		assert.ErrorIs(t, err, usecase.ErrSlotConflict)
		assert.Equal(t, uuid.Nil, f.bookings.overlapReq.excludeID)
	})

	t.Run("losing the write race still reports a conflict", func(t *testing.T) {
		f := newFixture(t)
		// Pre-check passes, but the exclusion constraint fires on insert.
		f.bookings.createErr = infra.WrapRepoErr("exclusion", nil, infra.KindConflict)

		_, err := f.uc.CreateBooking(ctx, f.actor(), f.createParams())
		assert.ErrorIs(t, err, usecase.ErrSlotConflict)
	})

	t.Run("conflict check runs before restrictions", func(t *testing.T) {
		f := newFixture(t)
		f.bookings.overlap = true
		restricted := builder.NewResourceBuilder().
			WithRestrictions(resource.Restrictions{UserRoles: []string{"faculty"}}).
			Build()
		f.resources.resources[restricted.ID()] = restricted

		p := f.createParams()
		p.ResourceID = restricted.ID()

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrSlotConflict)
	})

	t.Run("role restriction rejects a student", func(t *testing.T) {
		f := newFixture(t)
		restricted := builder.NewResourceBuilder().
			WithRestrictions(resource.Restrictions{UserRoles: []string{"faculty"}}).
			Build()
		f.resources.resources[restricted.ID()] = restricted

		p := f.createParams()
		p.ResourceID = restricted.ID()

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("department restriction checks the user record", func(t *testing.T) {
		f := newFixture(t)
		restricted := builder.NewResourceBuilder().
			WithRestrictions(resource.Restrictions{Departments: []string{"Physics"}}).
			Build()
		f.resources.resources[restricted.ID()] = restricted

		p := f.createParams()
		p.ResourceID = restricted.ID()

		// Owner's department is Computer Science.
		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("empty purpose rejected", func(t *testing.T) {
		f := newFixture(t)
		p := f.createParams()
		p.Purpose = "   "

		_, err := f.uc.CreateBooking(ctx, f.actor(), p)
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})
}

// ---- lifecycle -------------------------------------------------------------

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels with reason", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		view, err := f.uc.CancelBooking(ctx, f.actor(), b.ID(), "Plans changed")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled.String(), view.Status)
		assert.Equal(t, []string{events.BookingCancelled}, f.sink.keys)
	})

	t.Run("admin may cancel another user's booking", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.CancelBooking(ctx, f.admin(), b.ID(), "")
		assert.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.CancelBooking(ctx, usecase.Actor{ID: uuid.New(), Role: user.RoleStudent}, b.ID(), "")
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("started booking maps to invalid state", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)
		f.clock.Set(b.Slot().Start().Add(time.Minute))

		_, err := f.uc.CancelBooking(ctx, f.actor(), b.ID(), "")
		assert.ErrorIs(t, err, usecase.ErrInvalidState)
		assert.ErrorIs(t, err, booking.ErrAlreadyStarted)
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedule excludes the booking's own interval from the conflict check", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		newStart := fixtureNow.Add(48 * time.Hour)
		newEnd := newStart.Add(time.Hour)
		view, err := f.uc.UpdateBooking(ctx, f.actor(), b.ID(), usecase.UpdateBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, b.ID(), f.bookings.overlapReq.excludeID)
		assert.Equal(t, newStart, view.StartTime)
		assert.Equal(t, []string{events.BookingUpdated}, f.sink.keys)
	})

	t.Run("partial time patch keeps the other endpoint", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		newEnd := b.Slot().Start().Add(30 * time.Minute)
		_, err := f.uc.UpdateBooking(ctx, f.actor(), b.ID(), usecase.UpdateBookingParams{EndTime: &newEnd})
		require.NoError(t, err)

		assert.Equal(t, b.Slot().Start(), f.bookings.overlapReq.slot.Start())
		assert.Equal(t, newEnd, f.bookings.overlapReq.slot.End())
	})

	t.Run("reschedule into an occupied slot conflicts", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)
		f.bookings.overlap = true

		newStart := fixtureNow.Add(48 * time.Hour)
		newEnd := newStart.Add(time.Hour)
		_, err := f.uc.UpdateBooking(ctx, f.actor(), b.ID(), usecase.UpdateBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		assert.ErrorIs(t, err, usecase.ErrSlotConflict)
	})

	t.Run("details-only update skips time validation", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)
		f.bookings.overlap = true // would fail if the conflict check ran

		purpose := "Rescoped project sync"
		view, err := f.uc.UpdateBooking(ctx, f.actor(), b.ID(), usecase.UpdateBookingParams{Purpose: &purpose})
		require.NoError(t, err)
		require.NotNil(t, view)
	})
}

func TestCheckInOut(t *testing.T) {
	ctx := context.Background()

	t.Run("check-in within the window then check-out completes", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)
		f.clock.Set(b.Slot().Start().Add(-5 * time.Minute))

		_, err := f.uc.CheckIn(ctx, f.actor(), b.ID())
		require.NoError(t, err)

		f.clock.Set(b.Slot().End().Add(-time.Minute))
		view, err := f.uc.CheckOut(ctx, f.actor(), b.ID())
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCompleted.String(), view.Status)
		assert.Equal(t, []string{events.BookingCheckedIn, events.BookingCheckedOut}, f.sink.keys)
	})

	t.Run("too early and too late surface distinct errors", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		f.clock.Set(b.Slot().Start().Add(-time.Hour))
		_, err := f.uc.CheckIn(ctx, f.actor(), b.ID())
		assert.ErrorIs(t, err, booking.ErrCheckInTooEarly)

		f.clock.Set(b.Slot().End().Add(time.Hour))
		_, err = f.uc.CheckIn(ctx, f.actor(), b.ID())
		assert.ErrorIs(t, err, booking.ErrCheckInTooLate)
	})

	t.Run("admin cannot check in on the owner's behalf", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)
		f.clock.Set(b.Slot().Start())

		_, err := f.uc.CheckIn(ctx, f.admin(), b.ID())
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("check-out without check-in rejected", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.CheckOut(ctx, f.actor(), b.ID())
		assert.ErrorIs(t, err, booking.ErrNotCheckedIn)
	})
}

func TestSubmitFeedback(t *testing.T) {
	ctx := context.Background()

	t.Run("one-shot", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.SubmitFeedback(ctx, f.actor(), b.ID(), 4, "good")
		require.NoError(t, err)

		_, err = f.uc.SubmitFeedback(ctx, f.actor(), b.ID(), 5, "")
		assert.ErrorIs(t, err, booking.ErrFeedbackExists)
	})

	t.Run("rating out of range", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.SubmitFeedback(ctx, f.actor(), b.ID(), 0, "")
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
	})

	t.Run("bad rating wins over the one-shot guard", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.SubmitFeedback(ctx, f.actor(), b.ID(), 4, "good")
		require.NoError(t, err)

		_, err = f.uc.SubmitFeedback(ctx, f.actor(), b.ID(), 6, "")
		assert.ErrorIs(t, err, usecase.ErrInvalidInput)
		assert.NotErrorIs(t, err, usecase.ErrInvalidState)
	})
}

func TestGetAndList(t *testing.T) {
	ctx := context.Background()

	t.Run("owner and admin can read, stranger cannot", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t)

		_, err := f.uc.GetBooking(ctx, f.actor(), b.ID())
		assert.NoError(t, err)

		_, err = f.uc.GetBooking(ctx, f.admin(), b.ID())
		assert.NoError(t, err)

		_, err = f.uc.GetBooking(ctx, usecase.Actor{ID: uuid.New(), Role: user.RoleStudent}, b.ID())
		assert.ErrorIs(t, err, usecase.ErrForbidden)
	})

	t.Run("admin listing sees every booking", func(t *testing.T) {
		f := newFixture(t)
		f.seedBooking(t)
		other := builder.NewBookingBuilder().Build()
		f.bookings.bookings[other.ID()] = other

		mine, err := f.uc.ListBookings(ctx, f.actor())
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		all, err := f.uc.ListBookings(ctx, f.admin())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
