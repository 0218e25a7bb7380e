package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// AssetRepository implements domain.AssetRepository using PostgreSQL
type AssetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new AssetRepository
func NewAssetRepository(pool *pgxpool.Pool) *AssetRepository {
	return &AssetRepository{pool: pool}
}

const assetColumns = `id, user_id, type, name, value, monthly_return, created_at`

func scanAsset(row pgx.Row) (*domain.Asset, error) {
	var (
		id            pgtype.UUID
		userID        pgtype.UUID
		value         pgtype.Numeric
		monthlyReturn pgtype.Numeric
		createdAt     pgtype.Timestamptz
		asset         domain.Asset
	)
	err := row.Scan(&id, &userID, &asset.Type, &asset.Name, &value, &monthlyReturn, &createdAt)
	if err != nil {
		return nil, err
	}
	asset.ID = uuid.UUID(id.Bytes)
	asset.UserID = uuid.UUID(userID.Bytes)
	asset.Value = decimalOf(value)
	asset.MonthlyReturn = decimalPtr(monthlyReturn)
	asset.CreatedAt = timeOf(createdAt)
	return &asset, nil
}

// Create stores an asset
func (r *AssetRepository) Create(asset *domain.Asset) (*domain.Asset, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO assets (user_id, type, name, value, monthly_return)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+assetColumns,
		pgUUID(asset.UserID), asset.Type, asset.Name, pgNumeric(asset.Value), pgNumericPtr(asset.MonthlyReturn))
	return scanAsset(row)
}

// GetByUser retrieves a user's assets in insertion order
func (r *AssetRepository) GetByUser(userID uuid.UUID) ([]*domain.Asset, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+assetColumns+` FROM assets WHERE user_id = $1 ORDER BY created_at, id`,
		pgUUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]*domain.Asset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// Delete removes an asset
func (r *AssetRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM assets WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// LiabilityRepository implements domain.LiabilityRepository using PostgreSQL
type LiabilityRepository struct {
	pool *pgxpool.Pool
}

// NewLiabilityRepository creates a new LiabilityRepository
func NewLiabilityRepository(pool *pgxpool.Pool) *LiabilityRepository {
	return &LiabilityRepository{pool: pool}
}

const liabilityColumns = `id, user_id, type, name, amount, monthly_payment, created_at`

func scanLiability(row pgx.Row) (*domain.Liability, error) {
	var (
		id             pgtype.UUID
		userID         pgtype.UUID
		amount         pgtype.Numeric
		monthlyPayment pgtype.Numeric
		createdAt      pgtype.Timestamptz
		liability      domain.Liability
	)
	err := row.Scan(&id, &userID, &liability.Type, &liability.Name, &amount, &monthlyPayment, &createdAt)
	if err != nil {
		return nil, err
	}
	liability.ID = uuid.UUID(id.Bytes)
	liability.UserID = uuid.UUID(userID.Bytes)
	liability.Amount = decimalOf(amount)
	liability.MonthlyPayment = decimalPtr(monthlyPayment)
	liability.CreatedAt = timeOf(createdAt)
	return &liability, nil
}

// Create stores a liability
func (r *LiabilityRepository) Create(liability *domain.Liability) (*domain.Liability, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO liabilities (user_id, type, name, amount, monthly_payment)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+liabilityColumns,
		pgUUID(liability.UserID), liability.Type, liability.Name, pgNumeric(liability.Amount), pgNumericPtr(liability.MonthlyPayment))
	return scanLiability(row)
}

// GetByUser retrieves a user's liabilities in insertion order
func (r *LiabilityRepository) GetByUser(userID uuid.UUID) ([]*domain.Liability, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+liabilityColumns+` FROM liabilities WHERE user_id = $1 ORDER BY created_at, id`,
		pgUUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	liabilities := make([]*domain.Liability, 0)
	for rows.Next() {
		liability, err := scanLiability(rows)
		if err != nil {
			return nil, err
		}
		liabilities = append(liabilities, liability)
	}
	return liabilities, rows.Err()
}

// Delete removes a liability
func (r *LiabilityRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM liabilities WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLiabilityNotFound
	}
	return nil
}
