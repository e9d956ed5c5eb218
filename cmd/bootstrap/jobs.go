package bootstrap

import (
	"context"

	"campus-booking/internal/events"
	"campus-booking/internal/jobs"
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/config"
	"campus-booking/internal/usecase"

	"go.uber.org/fx"
)

var JobsModule = fx.Module("jobs",
	fx.Provide(
		NewNoShowSweeper,
	),
	fx.Invoke(StartNoShowSweeper),
)

func NewNoShowSweeper(cfg config.Config, bookings usecase.BookingRepository, sink events.Sink, clk clock.Clock) *jobs.NoShowSweeper {
	return jobs.NewNoShowSweeper(bookings, sink, clk, cfg.Booking.NoShowSweepSpec)
}

func StartNoShowSweeper(lc fx.Lifecycle, sweeper *jobs.NoShowSweeper) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return sweeper.Start()
		},
		OnStop: func(_ context.Context) error {
			sweeper.Stop()
			return nil
		},
	})
}
