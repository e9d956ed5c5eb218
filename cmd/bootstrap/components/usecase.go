package components

import (
	"campus-booking/internal/pkg/clock"
	"campus-booking/internal/pkg/config"
	"campus-booking/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewBookingPolicy,
		usecase.NewTokenValidator,
		usecase.NewAuthUseCase,
		usecase.NewResourceUseCase,
		usecase.NewBookingUseCase,
	),
)

func NewBookingPolicy(cfg config.Config) usecase.BookingPolicy {
	return usecase.BookingPolicy{
		CheckInGrace: cfg.Booking.CheckInGrace,
		Location:     cfg.Booking.Location(),
	}
}
