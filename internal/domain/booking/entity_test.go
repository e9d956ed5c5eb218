//go:build unit

package booking_test

import (
	"testing"
	"time"

	"campus-booking/internal/domain/booking"
	"campus-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const grace = 15 * time.Minute

var slotStart = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
var slotEnd = slotStart.Add(time.Hour)

func TestCancel(t *testing.T) {
	t.Run("future confirmed booking cancels with explicit reason", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		now := slotStart.Add(-2 * time.Hour)

		require.NoError(t, b.Cancel("Exam moved", now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.Equal(t, "Exam moved", b.CancellationReason())

		require.Len(t, b.Notifications(), 1)
		assert.Equal(t, booking.NotificationCancellation, b.Notifications()[0].Type)
	})

	t.Run("empty reason falls back to the default", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()

		require.NoError(t, b.Cancel("", slotStart.Add(-time.Hour)))
		assert.Equal(t, booking.DefaultCancellationReason, b.CancellationReason())
	})

	t.Run("started booking cannot be cancelled", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()

		err := b.Cancel("", slotStart)
		assert.ErrorIs(t, err, booking.ErrAlreadyStarted)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("terminal states cannot be cancelled", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.StatusCancelled, booking.StatusCompleted, booking.StatusNoShow,
		} {
			b := builder.NewBookingBuilder().WithStatus(status).Build()
			assert.ErrorIs(t, b.Cancel("", slotStart.Add(-time.Hour)), booking.ErrNotCancellable, "status %s", status)
		}
	})
}

func TestCheckIn(t *testing.T) {
	t.Run("within the grace window", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		now := slotStart.Add(-10 * time.Minute)

		require.NoError(t, b.CheckIn(now, grace))
		require.NotNil(t, b.CheckInTime())
		assert.Equal(t, now, *b.CheckInTime())
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("exactly at the window boundaries", func(t *testing.T) {
		early := builder.NewBookingBuilder().Build()
		require.NoError(t, early.CheckIn(slotStart.Add(-grace), grace))

		late := builder.NewBookingBuilder().Build()
		require.NoError(t, late.CheckIn(slotEnd, grace))
	})

	t.Run("too early", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		err := b.CheckIn(slotStart.Add(-grace-time.Second), grace)
		assert.ErrorIs(t, err, booking.ErrCheckInTooEarly)
	})

	t.Run("too late", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		err := b.CheckIn(slotEnd.Add(time.Second), grace)
		assert.ErrorIs(t, err, booking.ErrCheckInTooLate)
	})

	t.Run("double check-in rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		require.NoError(t, b.CheckIn(slotStart, grace))
		assert.ErrorIs(t, b.CheckIn(slotStart.Add(time.Minute), grace), booking.ErrAlreadyCheckedIn)
	})

	t.Run("non-confirmed booking rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build()
		assert.ErrorIs(t, b.CheckIn(slotStart, grace), booking.ErrNotConfirmed)
	})
}

func TestCheckOut(t *testing.T) {
	t.Run("after check-in completes the booking", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCheckIn(slotStart).Build()
		now := slotStart.Add(50 * time.Minute)

		require.NoError(t, b.CheckOut(now))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		require.NotNil(t, b.CheckOutTime())
		assert.Equal(t, now, *b.CheckOutTime())
	})

	t.Run("without check-in rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		assert.ErrorIs(t, b.CheckOut(slotEnd), booking.ErrNotCheckedIn)
	})

	t.Run("double check-out rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCheckIn(slotStart).Build()
		require.NoError(t, b.CheckOut(slotStart.Add(time.Minute)))
		assert.ErrorIs(t, b.CheckOut(slotStart.Add(2*time.Minute)), booking.ErrAlreadyCheckedOut)
	})
}

func TestReschedule(t *testing.T) {
	t.Run("active booking moves to the new slot", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		newSlot := booking.ReconstructTimeSlot(slotStart.Add(24*time.Hour), slotEnd.Add(24*time.Hour))

		require.NoError(t, b.Reschedule(newSlot, slotStart.Add(-time.Hour)))
		assert.Equal(t, newSlot.Start(), b.Slot().Start())

		require.Len(t, b.Notifications(), 1)
		assert.Equal(t, booking.NotificationUpdate, b.Notifications()[0].Type)
	})

	t.Run("terminal booking cannot move", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCompleted).Build()
		newSlot := booking.ReconstructTimeSlot(slotStart.Add(24*time.Hour), slotEnd.Add(24*time.Hour))

		assert.ErrorIs(t, b.Reschedule(newSlot, slotStart), booking.ErrNotReschedulable)
	})
}

func TestAttachFeedback(t *testing.T) {
	t.Run("one-shot rating", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCompleted).Build()

		require.NoError(t, b.AttachFeedback(4, "Projector was flaky", slotEnd))
		require.NotNil(t, b.Feedback())
		assert.Equal(t, 4, b.Feedback().Rating)

		assert.ErrorIs(t, b.AttachFeedback(5, "", slotEnd), booking.ErrFeedbackExists)
	})

	t.Run("rating bounds", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			b := builder.NewBookingBuilder().Build()
			assert.ErrorIs(t, b.AttachFeedback(rating, "", slotEnd), booking.ErrInvalidRating, "rating %d", rating)
		}
	})

	t.Run("bad rating reported before the one-shot guard", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCompleted).Build()
		require.NoError(t, b.AttachFeedback(4, "", slotEnd))

		assert.ErrorIs(t, b.AttachFeedback(6, "", slotEnd), booking.ErrInvalidRating)
	})

	t.Run("feedback allowed regardless of status", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).Build()
		assert.NoError(t, b.AttachFeedback(2, "", slotEnd))
	})
}

func TestMarkNoShow(t *testing.T) {
	t.Run("confirmed booking past its end with no check-in", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		require.NoError(t, b.MarkNoShow(slotEnd.Add(time.Minute)))
		assert.Equal(t, booking.StatusNoShow, b.Status())
	})

	t.Run("checked-in booking is never a no-show", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithCheckIn(slotStart).Build()
		assert.Error(t, b.MarkNoShow(slotEnd.Add(time.Minute)))
	})

	t.Run("booking still in progress is not swept", func(t *testing.T) {
		b := builder.NewBookingBuilder().Build()
		assert.Error(t, b.MarkNoShow(slotStart.Add(30*time.Minute)))
	})
}

func TestNotificationLogIsAppendOnly(t *testing.T) {
	b := builder.NewBookingBuilder().Build()

	b.RecordNotification(booking.NotificationConfirmation, slotStart.Add(-24*time.Hour), true)
	require.NoError(t, b.CheckIn(slotStart, grace))
	require.NoError(t, b.CheckOut(slotEnd))

	entries := b.Notifications()
	require.Len(t, entries, 3)
	assert.Equal(t, booking.NotificationConfirmation, entries[0].Type)
	assert.Equal(t, booking.NotificationCheckIn, entries[1].Type)
	assert.Equal(t, booking.NotificationCheckOut, entries[2].Type)
}
