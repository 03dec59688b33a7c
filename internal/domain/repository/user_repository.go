package repository

import (
	"context"
	"errors"

	"github.com/cityride/cityride-backend/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no user matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Insert when the email is already registered.
	ErrEmailTaken = errors.New("email already taken")
)

// UserRepository is the narrow persistence capability the auth and
// profile flows need. Nothing in the current scope deletes users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
}
