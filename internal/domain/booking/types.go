package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still occupies its slot. Only
// active bookings participate in conflict checks and availability grids.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal reports whether no further lifecycle transition is allowed
// (feedback attachment on completed bookings excepted).
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// NotificationType tags entries of the append-only notification audit log.
type NotificationType string

const (
	NotificationConfirmation NotificationType = "confirmation"
	NotificationReminder     NotificationType = "reminder"
	NotificationCheckIn      NotificationType = "check_in"
	NotificationCheckOut     NotificationType = "check_out"
	NotificationCancellation NotificationType = "cancellation"
	NotificationUpdate       NotificationType = "update"
)
