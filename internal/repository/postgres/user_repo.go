package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// UserRepository implements domain.UserRepository using PostgreSQL
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, auth_id, email, name, date_of_birth, occupation, monthly_income, avatar_key, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id            pgtype.UUID
		name          pgtype.Text
		dateOfBirth   pgtype.Date
		occupation    pgtype.Text
		monthlyIncome pgtype.Numeric
		avatarKey     pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
		user          domain.User
	)
	err := row.Scan(&id, &user.AuthID, &user.Email, &name, &dateOfBirth, &occupation, &monthlyIncome, &avatarKey, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	user.ID = uuid.UUID(id.Bytes)
	user.Name = textPtr(name)
	user.DateOfBirth = datePtr(dateOfBirth)
	user.Occupation = textPtr(occupation)
	user.MonthlyIncome = decimalOf(monthlyIncome)
	user.AvatarKey = textPtr(avatarKey)
	user.CreatedAt = timeOf(createdAt)
	user.UpdatedAt = timeOf(updatedAt)
	return &user, nil
}

// GetByID retrieves a user by their UUID
func (r *UserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE id = $1`, pgUUID(id))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByAuthID retrieves a user by their identity provider subject
func (r *UserRepository) GetByAuthID(authID string) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+userColumns+` FROM users WHERE auth_id = $1`, authID)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// CreateOrGetByAuthID inserts the user on first sign-in and returns the
// existing row otherwise. created reports whether an insert happened.
func (r *UserRepository) CreateOrGetByAuthID(authID, email string, name *string) (*domain.User, bool, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO users (auth_id, email, name)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (auth_id) DO UPDATE SET email = EXCLUDED.email
		 RETURNING `+userColumns+`, (xmax = 0) AS inserted`,
		authID, email, pgText(name))

	var (
		id            pgtype.UUID
		pgName        pgtype.Text
		dateOfBirth   pgtype.Date
		occupation    pgtype.Text
		monthlyIncome pgtype.Numeric
		avatarKey     pgtype.Text
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
		inserted      bool
		user          domain.User
	)
	err := row.Scan(&id, &user.AuthID, &user.Email, &pgName, &dateOfBirth, &occupation, &monthlyIncome, &avatarKey, &createdAt, &updatedAt, &inserted)
	if err != nil {
		return nil, false, err
	}
	user.ID = uuid.UUID(id.Bytes)
	user.Name = textPtr(pgName)
	user.DateOfBirth = datePtr(dateOfBirth)
	user.Occupation = textPtr(occupation)
	user.MonthlyIncome = decimalOf(monthlyIncome)
	user.AvatarKey = textPtr(avatarKey)
	user.CreatedAt = timeOf(createdAt)
	user.UpdatedAt = timeOf(updatedAt)
	return &user, inserted, nil
}

// UpdateProfile updates the profile fields of a user
func (r *UserRepository) UpdateProfile(id uuid.UUID, dateOfBirth domain.Date, occupation string, monthlyIncome decimal.Decimal) (*domain.User, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE users
		 SET date_of_birth = $2, occupation = $3, monthly_income = $4, updated_at = now()
		 WHERE id = $1
		 RETURNING `+userColumns,
		pgUUID(id), pgDate(dateOfBirth), occupation, pgNumeric(monthlyIncome))
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateAvatarKey updates the stored avatar object key
func (r *UserRepository) UpdateAvatarKey(id uuid.UUID, key *string) error {
	tag, err := r.pool.Exec(context.Background(),
		`UPDATE users SET avatar_key = $2, updated_at = now() WHERE id = $1`,
		pgUUID(id), pgText(key))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
