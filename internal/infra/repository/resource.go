package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"campus-booking/internal/domain/resource"
	"campus-booking/internal/infra"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	query, args, err := psql.Select(
		"id", "name", "description", "rtype", "building", "floor", "room_number",
		"capacity", "operating_hours", "max_booking_duration", "booking_interval",
		"restrictions", "is_active", "created_at", "updated_at",
	).
		From("resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build get resource query", err)
	}

	var (
		name, description, rtype string
		location                 resource.Location
		capacity                 *int
		hoursRaw                 []byte
		maxDuration, interval    int
		restrictionsRaw          []byte
		isActive                 bool
		createdAt, updatedAt     time.Time
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&id, &name, &description, &rtype,
		&location.Building, &location.Floor, &location.RoomNumber,
		&capacity, &hoursRaw, &maxDuration, &interval,
		&restrictionsRaw, &isActive, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	var hours resource.OperatingHours
	if err := json.Unmarshal(hoursRaw, &hours); err != nil {
		return nil, infra.WrapRepoErr("failed to decode operating hours", err)
	}

	var restrictions resource.Restrictions
	if len(restrictionsRaw) > 0 {
		if err := json.Unmarshal(restrictionsRaw, &restrictions); err != nil {
			return nil, infra.WrapRepoErr("failed to decode restrictions", err)
		}
	}

	return resource.Reconstruct(
		id, name, description,
		resource.Type(rtype),
		location,
		capacity,
		hours,
		maxDuration, interval,
		restrictions,
		isActive,
		createdAt, updatedAt,
	), nil
}
