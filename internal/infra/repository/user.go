package repository

import (
	"context"
	"errors"
	"time"

	"campus-booking/internal/domain/user"
	"campus-booking/internal/infra"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, pred squirrel.Eq) (*user.User, error) {
	query, args, err := psql.Select(
		"id", "email", "password_hash", "first_name", "last_name",
		"role", "department", "is_active", "created_at",
	).
		From("users").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build get user query", err)
	}

	var (
		id                                      uuid.UUID
		email, passwordHash                     string
		firstName, lastName, role, department   string
		isActive                                bool
		createdAt                               time.Time
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&id, &email, &passwordHash, &firstName, &lastName,
		&role, &department, &isActive, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	return user.Reconstruct(
		id, email, passwordHash, firstName, lastName,
		user.Role(role), department, isActive, createdAt,
	), nil
}
