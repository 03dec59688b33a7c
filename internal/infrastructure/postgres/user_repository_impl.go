package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cityride/cityride-backend/internal/domain/entity"
	"github.com/cityride/cityride-backend/internal/domain/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, address, city,
		postal_code, avatar_url, loyalty_points, marketing_consent, push_notifications,
		created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Phone, &u.Address, &u.City, &u.PostalCode, &u.AvatarURL,
		&u.LoyaltyPoints, &u.MarketingConsent, &u.PushNotifications,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, address,
			city, postal_code, avatar_url, loyalty_points, marketing_consent, push_notifications)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Address,
		u.City, u.PostalCode, u.AvatarURL, u.LoyaltyPoints, u.MarketingConsent, u.PushNotifications)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		// 23505 = unique_violation on users.email
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrEmailTaken
		}
		return err
	}
	return nil
}

// Update persists profile fields and refreshes updated_at. Email and
// password_hash are intentionally absent from the SET list: they are
// immutable through the profile path.
func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET first_name = $1, last_name = $2, phone = $3, address = $4, city = $5,
			postal_code = $6, avatar_url = $7, loyalty_points = $8,
			marketing_consent = $9, push_notifications = $10, updated_at = $11
		WHERE id = $12
	`, u.FirstName, u.LastName, u.Phone, u.Address, u.City,
		u.PostalCode, u.AvatarURL, u.LoyaltyPoints,
		u.MarketingConsent, u.PushNotifications, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
