package jobs

import (
	"context"
	"log/slog"
	"time"

	"campus-booking/internal/events"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/usecase"

	"github.com/robfig/cron/v3"
)

// NoShowSweeper periodically flips confirmed bookings whose window has
// fully passed without a check-in to no_show. The sweep is a single
// UPDATE so concurrent instances cannot double-mark a booking.
type NoShowSweeper struct {
	bookings usecase.BookingRepository
	sink     events.Sink
	clock    clock.Clock
	cron     *cron.Cron
	spec     string
}

func NewNoShowSweeper(bookings usecase.BookingRepository, sink events.Sink, clk clock.Clock, spec string) *NoShowSweeper {
	return &NoShowSweeper{
		bookings: bookings,
		sink:     sink,
		clock:    clk,
		cron:     cron.New(),
		spec:     spec,
	}
}

func (s *NoShowSweeper) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	slog.Info("no-show sweeper started", "spec", s.spec)
	return nil
}

func (s *NoShowSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep runs one pass and reports each marked booking downstream.
func (s *NoShowSweeper) Sweep(ctx context.Context) {
	marked, err := s.bookings.MarkNoShows(ctx, s.clock.Now())
	if err != nil {
		slog.Error("no-show sweep failed", "error", err)
		return
	}
	if len(marked) == 0 {
		return
	}

	slog.Info("no-show sweep marked bookings", "count", len(marked))
	for _, rec := range marked {
		if err := s.sink.Publish(ctx, events.BookingNoShow, map[string]any{
			"booking_id":  rec.BookingID,
			"resource_id": rec.ResourceID,
			"user_id":     rec.UserID,
		}); err != nil {
			slog.Warn("failed to publish no-show event", "booking_id", rec.BookingID, "error", err)
		}
	}
}
