package usecase

import (
	"context"
	"errors"

	"campus-booking/internal/domain/user"
	"campus-booking/internal/infra"
	"campus-booking/internal/pkg/errs"
	"campus-booking/internal/pkg/jwt"
	"campus-booking/internal/pkg/password"
	"campus-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// Invalid email, wrong password, and deactivated account all collapse
// into one error so login probes cannot distinguish them.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (string, *readmodel.UserRM, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.UserRM, error)
}

// TokenValidator is the narrow surface middleware needs; it keeps the
// handler layer off the jwt package directly.
type TokenValidator interface {
	ValidateToken(token string) (uuid.UUID, user.Role, error)
}

type jwtTokenValidator struct {
	jwt *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &jwtTokenValidator{jwt: jwtService}
}

func (v *jwtTokenValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	claims, err := v.jwt.ValidateToken(token)
	if err != nil {
		return uuid.Nil, "", err
	}
	return claims.UserID, user.Role(claims.Role), nil
}

type authUseCaseImpl struct {
	users UserRepository
	jwt   *jwt.Service
}

func NewAuthUseCase(users UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{users: users, jwt: jwtService}
}

func (u *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (string, *readmodel.UserRM, error) {
	usr, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !usr.IsActive() {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(usr.PasswordHash(), plainPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.jwt.GenerateToken(usr.ID(), usr.Role())
	if err != nil {
		return "", nil, errs.Wrap(err, "failed to generate token")
	}
	return token, toUserRM(usr), nil
}

func (u *authUseCaseImpl) CurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.UserRM, error) {
	usr, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return toUserRM(usr), nil
}

func toUserRM(usr *user.User) *readmodel.UserRM {
	return &readmodel.UserRM{
		ID:         usr.ID(),
		Email:      usr.Email(),
		FirstName:  usr.FirstName(),
		LastName:   usr.LastName(),
		Role:       usr.Role().String(),
		Department: usr.Department(),
	}
}
