package components

import (
	repo_impl "campus-booking/internal/infra/repository"
	"campus-booking/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewBookingRepository,
			fx.As(new(usecase.BookingRepository)),
		),
		fx.Annotate(
			repo_impl.NewResourceRepository,
			fx.As(new(usecase.ResourceRepository)),
		),
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
	),
)
