package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTimeSlot = errors.New("end time must be after start time")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrPurposeRequired = errors.New("booking purpose cannot be empty")
	ErrPurposeTooLong  = errors.New("booking purpose is too long (max 200 characters)")
	ErrInvalidAttendee = errors.New("attendee count must be at least 1")
)

const MaxPurposeLength = 200

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

// ReconstructTimeSlot rebuilds a slot from storage without validation.
func ReconstructTimeSlot(start, end time.Time) TimeSlot {
	return TimeSlot{start: start, end: end}
}

func (ts TimeSlot) Start() time.Time { return ts.start }
func (ts TimeSlot) End() time.Time   { return ts.end }

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

func (ts TimeSlot) DurationMinutes() int {
	return int(ts.Duration() / time.Minute)
}

// Overlaps uses half-open interval semantics: slots that merely touch
// at an endpoint do not conflict.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// ToTstzrange renders the slot as a Postgres half-open tstzrange literal,
// the representation used by the bookings exclusion constraint.
func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

type Purpose struct {
	value string
}

func NewPurpose(value string) (Purpose, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Purpose{}, ErrPurposeRequired
	}
	if len(value) > MaxPurposeLength {
		return Purpose{}, ErrPurposeTooLong
	}
	return Purpose{value: value}, nil
}

// ReconstructPurpose rebuilds a purpose from storage without validation.
func ReconstructPurpose(value string) Purpose {
	return Purpose{value: value}
}

func (p Purpose) String() string {
	return p.value
}

type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Attendees struct {
	Count int        `json:"count"`
	List  []Attendee `json:"list,omitempty"`
}

func NewAttendees(count int, list []Attendee) (Attendees, error) {
	if count < 1 {
		return Attendees{}, ErrInvalidAttendee
	}
	return Attendees{Count: count, List: list}, nil
}

type Feedback struct {
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

func NewFeedback(rating int, comment string, submittedAt time.Time) (Feedback, error) {
	if rating < 1 || rating > 5 {
		return Feedback{}, ErrInvalidRating
	}
	return Feedback{
		Rating:      rating,
		Comment:     strings.TrimSpace(comment),
		SubmittedAt: submittedAt,
	}, nil
}

// NotificationEntry is one line of the append-only audit log of
// notification attempts. Entries are never removed or rewritten.
type NotificationEntry struct {
	Type    NotificationType `json:"type"`
	SentAt  time.Time        `json:"sentAt"`
	Success bool             `json:"success"`
}
