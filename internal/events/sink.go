// Package events carries booking lifecycle events to downstream
// consumers (real-time UI updates, notification workers). Publishing is
// fire-and-forget: a sink failure is logged and never fails or blocks
// the admission that produced the event.
package events

import "context"

// Event keys, routed per resource so consumers can subscribe to a
// single resource's stream.
const (
	BookingCreated    = "booking.created"
	BookingUpdated    = "booking.updated"
	BookingCancelled  = "booking.cancelled"
	BookingCheckedIn  = "booking.checked_in"
	BookingCheckedOut = "booking.checked_out"
	BookingNoShow     = "booking.no_show"
)

type Sink interface {
	Publish(ctx context.Context, key string, payload any) error
}
