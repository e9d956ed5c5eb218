package events

import "context"

// NoopSink is used when no broker is configured (local dev, tests).
type NoopSink struct{}

func NewNoopSink() *NoopSink {
	return &NoopSink{}
}

func (NoopSink) Publish(context.Context, string, any) error {
	return nil
}
