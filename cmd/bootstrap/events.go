package bootstrap

import (
	"context"
	"log/slog"

	"campus-booking/internal/events"
	"campus-booking/internal/notify"
	"campus-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventSink,
		fx.Annotate(
			NewNotifier,
			fx.As(new(notify.Notifier)),
		),
	),
)

// NewEventSink connects to the broker when one is configured and falls
// back to a no-op sink otherwise, so a broker outage at deploy time
// never blocks bookings.
func NewEventSink(lc fx.Lifecycle, cfg config.Config) events.Sink {
	if cfg.Events.AMQPURL == "" {
		slog.Info("no AMQP broker configured, booking events disabled")
		return events.NewNoopSink()
	}

	sink, err := events.NewRabbitSink(cfg.Events.AMQPURL, cfg.Events.Exchange)
	if err != nil {
		slog.Error("failed to connect to AMQP broker, booking events disabled", "error", err)
		return events.NewNoopSink()
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return sink.Close()
		},
	})

	slog.Info("booking event sink connected", "exchange", cfg.Events.Exchange)
	return sink
}

func NewNotifier(logger *slog.Logger) *notify.LogNotifier {
	return notify.NewLogNotifier(logger)
}
