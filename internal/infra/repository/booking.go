package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campus-booking/internal/domain/booking"
	"campus-booking/internal/domain/resource"
	"campus-booking/internal/infra"
	"campus-booking/internal/usecase/readmodel"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

// Create inserts the booking. The bookings_no_overlap exclusion constraint
// is the durable double-booking guard: a violation here means another
// admission won the race after our overlap pre-check, and is surfaced as
// KindConflict for the usecase to map to a slot conflict.
func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	notifications, feedback, attendees, err := marshalBookingJSON(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err)
	}

	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "resource_id", "user_id", "start_time", "end_time",
			"purpose", "attendees", "status", "feedback", "notifications",
			"cancellation_reason",
		).
		Values(
			b.ID(), b.ResourceID(), b.UserID(), b.Slot().Start(), b.Slot().End(),
			b.Purpose().String(), attendees, b.Status().String(), feedback, notifications,
			nullableString(b.CancellationReason()),
		).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build create booking query", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return mapWriteError("failed to create booking", err)
	}
	return nil
}

// Update persists every mutable lifecycle field in one statement; a
// transition is all-or-nothing. Reschedules can trip the exclusion
// constraint just like creates.
func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	notifications, feedback, attendees, err := marshalBookingJSON(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err)
	}

	query, args, err := psql.Update("bookings").
		Set("start_time", b.Slot().Start()).
		Set("end_time", b.Slot().End()).
		Set("purpose", b.Purpose().String()).
		Set("attendees", attendees).
		Set("status", b.Status().String()).
		Set("check_in_time", b.CheckInTime()).
		Set("check_out_time", b.CheckOutTime()).
		Set("cancellation_reason", nullableString(b.CancellationReason())).
		Set("feedback", feedback).
		Set("notifications", notifications).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update booking query", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapWriteError("failed to update booking", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	query, args, err := psql.Select(
		"id", "resource_id", "user_id", "start_time", "end_time",
		"purpose", "attendees", "status", "check_in_time", "check_out_time",
		"cancellation_reason", "feedback", "notifications", "created_at", "updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build get booking query", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)
	return scanBooking(row)
}

// FindViewByID joins resource and user details into the read model.
func (r *BookingRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	query, args, err := psql.Select(
		"b.id", "b.resource_id", "r.name", "r.rtype",
		"b.user_id", "u.first_name || ' ' || u.last_name", "u.email",
		"b.start_time", "b.end_time", "b.purpose", "b.attendees", "b.status",
		"b.check_in_time", "b.check_out_time", "b.cancellation_reason",
		"b.feedback", "b.notifications", "b.created_at", "b.updated_at",
	).
		From("bookings b").
		Join("resources r ON b.resource_id = r.id").
		Join("users u ON b.user_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	var (
		rm            readmodel.BookingRM
		attendeesRaw  []byte
		feedbackRaw   []byte
		notifications []byte
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rm.ID, &rm.ResourceID, &rm.ResourceName, &rm.ResourceType,
		&rm.UserID, &rm.UserName, &rm.UserEmail,
		&rm.StartTime, &rm.EndTime, &rm.Purpose, &attendeesRaw, &rm.Status,
		&rm.CheckInTime, &rm.CheckOutTime, &rm.CancellationReason,
		&feedbackRaw, &notifications, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}

	var attendees booking.Attendees
	if err := json.Unmarshal(attendeesRaw, &attendees); err != nil {
		return nil, infra.WrapRepoErr("failed to decode attendees", err)
	}
	rm.AttendeeCount = attendees.Count

	if len(feedbackRaw) > 0 {
		var fb booking.Feedback
		if err := json.Unmarshal(feedbackRaw, &fb); err != nil {
			return nil, infra.WrapRepoErr("failed to decode feedback", err)
		}
		rm.Feedback = &fb
	}
	if len(notifications) > 0 {
		if err := json.Unmarshal(notifications, &rm.Notifications); err != nil {
			return nil, infra.WrapRepoErr("failed to decode notifications", err)
		}
	}
	return &rm, nil
}

// FindByUser lists a user's bookings newest-start first. A nil userID
// lists all bookings (admin view).
func (r *BookingRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*readmodel.BookingListRM, error) {
	builder := psql.Select(
		"b.id", "b.resource_id", "r.name", "b.start_time", "b.end_time",
		"b.purpose", "b.status", "b.created_at",
	).
		From("bookings b").
		Join("resources r ON b.resource_id = r.id").
		OrderBy("b.start_time DESC")

	if userID != uuid.Nil {
		builder = builder.Where(squirrel.Eq{"b.user_id": userID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build list bookings query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*readmodel.BookingListRM
	for rows.Next() {
		var item readmodel.BookingListRM
		if err := rows.Scan(
			&item.ID, &item.ResourceID, &item.ResourceName,
			&item.StartTime, &item.EndTime, &item.Purpose, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

// HasOverlap is the in-application conflict pre-check: any active
// booking for the resource whose half-open range intersects the slot,
// optionally excluding one booking id (reschedules must not conflict
// with themselves). Same predicate as the bookings_no_overlap exclusion
// constraint, so the pre-check and the durable guard cannot disagree.
func (r *BookingRepository) HasOverlap(ctx context.Context, resourceID uuid.UUID, slot booking.TimeSlot, excludeID uuid.UUID) (bool, error) {
	sub := psql.Select("1").
		From("bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": []string{string(booking.StatusPending), string(booking.StatusConfirmed)}}).
		Where(squirrel.Expr("tstzrange(start_time, end_time) && ?::tstzrange", slot.ToTstzrange()))

	if excludeID != uuid.Nil {
		sub = sub.Where(squirrel.NotEq{"id": excludeID})
	}

	query, args, err := sub.ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build overlap query", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+query+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check overlap", err)
	}
	return exists, nil
}

// FindBusyIntervals returns the active intervals intersecting [from,to)
// for availability computation.
func (r *BookingRepository) FindBusyIntervals(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]resource.BusyInterval, error) {
	query, args, err := psql.Select("start_time", "end_time").
		From("bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.Eq{"status": []string{string(booking.StatusPending), string(booking.StatusConfirmed)}}).
		Where(squirrel.Lt{"start_time": to}).
		Where(squirrel.Gt{"end_time": from}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build busy intervals query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query busy intervals", err)
	}
	defer rows.Close()

	var intervals []resource.BusyInterval
	for rows.Next() {
		var iv resource.BusyInterval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy interval", err)
		}
		intervals = append(intervals, iv)
	}
	return intervals, rows.Err()
}

// NoShowRecord identifies a booking flipped by the sweep, for event fan-out.
type NoShowRecord struct {
	BookingID  uuid.UUID
	ResourceID uuid.UUID
	UserID     uuid.UUID
}

// MarkNoShows flips confirmed, never-checked-in bookings that ended
// before the cutoff to no_show, in one statement.
func (r *BookingRepository) MarkNoShows(ctx context.Context, cutoff time.Time) ([]NoShowRecord, error) {
	query, args, err := psql.Update("bookings").
		Set("status", string(booking.StatusNoShow)).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"status": string(booking.StatusConfirmed)}).
		Where(squirrel.Lt{"end_time": cutoff}).
		Where("check_in_time IS NULL").
		Suffix("RETURNING id, resource_id, user_id").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build no-show sweep query", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sweep no-shows", err)
	}
	defer rows.Close()

	var records []NoShowRecord
	for rows.Next() {
		var rec NoShowRecord
		if err := rows.Scan(&rec.BookingID, &rec.ResourceID, &rec.UserID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan no-show row", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, resourceID, userID     uuid.UUID
		startTime, endTime         time.Time
		purpose                    string
		attendeesRaw               []byte
		status                     string
		checkInTime, checkOutTime  *time.Time
		cancellationReason         *string
		feedbackRaw, notifsRaw     []byte
		createdAt, updatedAt       time.Time
	)
	err := row.Scan(
		&id, &resourceID, &userID, &startTime, &endTime,
		&purpose, &attendeesRaw, &status, &checkInTime, &checkOutTime,
		&cancellationReason, &feedbackRaw, &notifsRaw, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	var attendees booking.Attendees
	if err := json.Unmarshal(attendeesRaw, &attendees); err != nil {
		return nil, infra.WrapRepoErr("failed to decode attendees", err)
	}

	var feedback *booking.Feedback
	if len(feedbackRaw) > 0 {
		var fb booking.Feedback
		if err := json.Unmarshal(feedbackRaw, &fb); err != nil {
			return nil, infra.WrapRepoErr("failed to decode feedback", err)
		}
		feedback = &fb
	}

	var notifications []booking.NotificationEntry
	if len(notifsRaw) > 0 {
		if err := json.Unmarshal(notifsRaw, &notifications); err != nil {
			return nil, infra.WrapRepoErr("failed to decode notifications", err)
		}
	}

	reason := ""
	if cancellationReason != nil {
		reason = *cancellationReason
	}

	return booking.Reconstruct(
		id, resourceID, userID,
		booking.ReconstructTimeSlot(startTime, endTime),
		booking.ReconstructPurpose(purpose),
		attendees,
		booking.Status(status),
		checkInTime, checkOutTime,
		reason,
		feedback,
		notifications,
		createdAt, updatedAt,
	), nil
}

func marshalBookingJSON(b *booking.Booking) (notifications, feedback, attendees []byte, err error) {
	entries := b.Notifications()
	if entries == nil {
		entries = []booking.NotificationEntry{}
	}
	notifications, err = json.Marshal(entries)
	if err != nil {
		return nil, nil, nil, err
	}
	if fb := b.Feedback(); fb != nil {
		feedback, err = json.Marshal(fb)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	attendees, err = json.Marshal(b.Attendees())
	if err != nil {
		return nil, nil, nil, err
	}
	return notifications, feedback, attendees, nil
}

func mapWriteError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ExclusionViolation, pgerrcode.UniqueViolation:
			return infra.WrapRepoErr(msg, err, infra.KindConflict)
		case pgerrcode.ForeignKeyViolation:
			return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
		}
	}
	return infra.WrapRepoErr(msg, err)
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
