// Package notify delivers booking notifications to users. Delivery is
// best-effort: a failed send is recorded in the booking's notification
// log with success=false but never rolls back the committed transition.
package notify

import (
	"context"
	"log/slog"

	"campus-booking/internal/usecase/readmodel"
)

type Notifier interface {
	SendConfirmation(ctx context.Context, b *readmodel.BookingRM) error
	SendCancellation(ctx context.Context, b *readmodel.BookingRM) error
	SendUpdate(ctx context.Context, b *readmodel.BookingRM) error
}

// LogNotifier stands in for the campus mail gateway: it records what
// would have been sent. Real SMTP/QR delivery is a separate worker fed
// by the event stream.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendConfirmation(_ context.Context, b *readmodel.BookingRM) error {
	n.log("confirmation", b)
	return nil
}

func (n *LogNotifier) SendCancellation(_ context.Context, b *readmodel.BookingRM) error {
	n.log("cancellation", b)
	return nil
}

func (n *LogNotifier) SendUpdate(_ context.Context, b *readmodel.BookingRM) error {
	n.log("update", b)
	return nil
}

func (n *LogNotifier) log(kind string, b *readmodel.BookingRM) {
	n.logger.Info("notification dispatched",
		"kind", kind,
		"booking_id", b.ID,
		"user_email", b.UserEmail,
		"resource", b.ResourceName,
		"start", b.StartTime,
		"end", b.EndTime,
	)
}
