package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotCancellable    = errors.New("booking cannot be cancelled in its current state")
	ErrAlreadyStarted    = errors.New("booking has already started")
	ErrNotConfirmed      = errors.New("booking is not confirmed")
	ErrNotReschedulable  = errors.New("booking cannot be rescheduled in its current state")
	ErrAlreadyCheckedIn  = errors.New("already checked in for this booking")
	ErrCheckInTooEarly   = errors.New("too early to check in")
	ErrCheckInTooLate    = errors.New("cannot check in after the booking has ended")
	ErrNotCheckedIn      = errors.New("must check in before checking out")
	ErrAlreadyCheckedOut = errors.New("already checked out from this booking")
	ErrFeedbackExists    = errors.New("feedback already submitted for this booking")
)

const DefaultCancellationReason = "User cancelled"

// Booking is the mutable lifecycle entity. It owns the state machine
// pending/confirmed → cancelled/completed/no_show; admission rules that
// need collaborator state (conflicts, operating hours, restrictions)
// live in the usecase layer.
type Booking struct {
	id            uuid.UUID
	resourceID    uuid.UUID
	userID        uuid.UUID
	slot          TimeSlot
	purpose       Purpose
	attendees     Attendees
	status        Status
	checkInTime   *time.Time
	checkOutTime  *time.Time
	cancelReason  string
	feedback      *Feedback
	notifications []NotificationEntry
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking admits a booking directly into confirmed status: this
// system has no manual approval step active.
func NewBooking(resourceID, userID uuid.UUID, slot TimeSlot, purpose Purpose, attendees Attendees) *Booking {
	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		userID:     userID,
		slot:       slot,
		purpose:    purpose,
		attendees:  attendees,
		status:     StatusConfirmed,
	}
}

func Reconstruct(
	id, resourceID, userID uuid.UUID,
	slot TimeSlot,
	purpose Purpose,
	attendees Attendees,
	status Status,
	checkInTime, checkOutTime *time.Time,
	cancelReason string,
	feedback *Feedback,
	notifications []NotificationEntry,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		resourceID:    resourceID,
		userID:        userID,
		slot:          slot,
		purpose:       purpose,
		attendees:     attendees,
		status:        status,
		checkInTime:   checkInTime,
		checkOutTime:  checkOutTime,
		cancelReason:  cancelReason,
		feedback:      feedback,
		notifications: notifications,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// Cancel soft-deletes: the row is kept as an audit record. Only active
// bookings whose start is still in the future may be cancelled.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if !b.status.IsActive() {
		return ErrNotCancellable
	}
	if !b.slot.Start().After(now) {
		return ErrAlreadyStarted
	}
	if reason == "" {
		reason = DefaultCancellationReason
	}
	b.status = StatusCancelled
	b.cancelReason = reason
	b.RecordNotification(NotificationCancellation, now, true)
	return nil
}

// Reschedule moves an active booking to a new slot. Conflict and policy
// re-validation against the new interval is the caller's responsibility.
func (b *Booking) Reschedule(slot TimeSlot, now time.Time) error {
	if !b.status.IsActive() {
		return ErrNotReschedulable
	}
	b.slot = slot
	b.RecordNotification(NotificationUpdate, now, true)
	return nil
}

// UpdateDetails patches non-time fields; allowed in any non-terminal state.
func (b *Booking) UpdateDetails(purpose *Purpose, attendees *Attendees, now time.Time) error {
	if b.status.IsTerminal() {
		return ErrNotReschedulable
	}
	if purpose != nil {
		b.purpose = *purpose
	}
	if attendees != nil {
		b.attendees = *attendees
	}
	b.RecordNotification(NotificationUpdate, now, true)
	return nil
}

// CheckIn opens `grace` before the slot starts and closes when it ends.
// The status value does not change; the recorded time gates check-out.
func (b *Booking) CheckIn(now time.Time, grace time.Duration) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	if b.checkInTime != nil {
		return ErrAlreadyCheckedIn
	}
	if now.Before(b.slot.Start().Add(-grace)) {
		return ErrCheckInTooEarly
	}
	if now.After(b.slot.End()) {
		return ErrCheckInTooLate
	}
	t := now
	b.checkInTime = &t
	b.RecordNotification(NotificationCheckIn, now, true)
	return nil
}

func (b *Booking) CheckOut(now time.Time) error {
	if b.checkInTime == nil {
		return ErrNotCheckedIn
	}
	if b.checkOutTime != nil {
		return ErrAlreadyCheckedOut
	}
	t := now
	b.checkOutTime = &t
	b.status = StatusCompleted
	b.RecordNotification(NotificationCheckOut, now, true)
	return nil
}

// AttachFeedback records a one-shot rating; submittedAt is set at most
// once. The rating is validated before the one-shot guard, so a bad
// rating reports as invalid input even when feedback already exists.
func (b *Booking) AttachFeedback(rating int, comment string, now time.Time) error {
	fb, err := NewFeedback(rating, comment, now)
	if err != nil {
		return err
	}
	if b.feedback != nil {
		return ErrFeedbackExists
	}
	b.feedback = &fb
	return nil
}

// MarkNoShow flips a confirmed, never-checked-in booking whose slot has
// ended. Used by the scheduled sweep.
func (b *Booking) MarkNoShow(now time.Time) error {
	if b.status != StatusConfirmed || b.checkInTime != nil {
		return ErrNotConfirmed
	}
	if now.Before(b.slot.End()) {
		return ErrNotConfirmed
	}
	b.status = StatusNoShow
	return nil
}

// RecordNotification appends to the audit log; entries are never removed.
func (b *Booking) RecordNotification(ntype NotificationType, at time.Time, success bool) {
	b.notifications = append(b.notifications, NotificationEntry{
		Type:    ntype,
		SentAt:  at,
		Success: success,
	})
}

func (b *Booking) ID() uuid.UUID                      { return b.id }
func (b *Booking) ResourceID() uuid.UUID              { return b.resourceID }
func (b *Booking) UserID() uuid.UUID                  { return b.userID }
func (b *Booking) Slot() TimeSlot                     { return b.slot }
func (b *Booking) Purpose() Purpose                   { return b.purpose }
func (b *Booking) Attendees() Attendees               { return b.attendees }
func (b *Booking) Status() Status                     { return b.status }
func (b *Booking) CheckInTime() *time.Time            { return b.checkInTime }
func (b *Booking) CheckOutTime() *time.Time           { return b.checkOutTime }
func (b *Booking) CancellationReason() string         { return b.cancelReason }
func (b *Booking) Feedback() *Feedback                { return b.feedback }
func (b *Booking) Notifications() []NotificationEntry { return b.notifications }
func (b *Booking) CreatedAt() time.Time               { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time               { return b.updatedAt }
