package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// InsuranceRepository implements domain.InsuranceRepository using PostgreSQL
type InsuranceRepository struct {
	pool *pgxpool.Pool
}

// NewInsuranceRepository creates a new InsuranceRepository
func NewInsuranceRepository(pool *pgxpool.Pool) *InsuranceRepository {
	return &InsuranceRepository{pool: pool}
}

const policyColumns = `id, user_id, type, provider, policy_number, premium, frequency, coverage_amount, start_date, end_date, last_paid_date, notes, created_at, updated_at`

func scanPolicy(row pgx.Row) (*domain.InsurancePolicy, error) {
	var (
		id           pgtype.UUID
		userID       pgtype.UUID
		premium      pgtype.Numeric
		coverage     pgtype.Numeric
		startDate    pgtype.Date
		endDate      pgtype.Date
		lastPaidDate pgtype.Date
		notes        pgtype.Text
		createdAt    pgtype.Timestamptz
		updatedAt    pgtype.Timestamptz
		policy       domain.InsurancePolicy
	)
	err := row.Scan(&id, &userID, &policy.Type, &policy.Provider, &policy.PolicyNumber,
		&premium, &policy.Frequency, &coverage, &startDate, &endDate, &lastPaidDate,
		&notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	policy.ID = uuid.UUID(id.Bytes)
	policy.UserID = uuid.UUID(userID.Bytes)
	policy.Premium = decimalOf(premium)
	policy.CoverageAmount = decimalOf(coverage)
	policy.StartDate = dateOf(startDate)
	policy.EndDate = dateOf(endDate)
	policy.LastPaidDate = datePtr(lastPaidDate)
	policy.Notes = textPtr(notes)
	policy.CreatedAt = timeOf(createdAt)
	policy.UpdatedAt = timeOf(updatedAt)
	return &policy, nil
}

// Create stores a policy
func (r *InsuranceRepository) Create(policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO insurance_policies (user_id, type, provider, policy_number, premium, frequency, coverage_amount, start_date, end_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+policyColumns,
		pgUUID(policy.UserID), policy.Type, policy.Provider, policy.PolicyNumber,
		pgNumeric(policy.Premium), policy.Frequency, pgNumeric(policy.CoverageAmount),
		pgDate(policy.StartDate), pgDate(policy.EndDate), pgText(policy.Notes))
	return scanPolicy(row)
}

// GetByID retrieves a policy scoped to its owner
func (r *InsuranceRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.InsurancePolicy, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+policyColumns+` FROM insurance_policies WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	policy, err := scanPolicy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}
	return policy, nil
}

// GetByUser retrieves a user's policies in insertion order
func (r *InsuranceRepository) GetByUser(userID uuid.UUID) ([]*domain.InsurancePolicy, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+policyColumns+` FROM insurance_policies WHERE user_id = $1 ORDER BY created_at, id`,
		pgUUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	policies := make([]*domain.InsurancePolicy, 0)
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, policy)
	}
	return policies, rows.Err()
}

// Update replaces the stored policy fields
func (r *InsuranceRepository) Update(policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	row := r.pool.QueryRow(context.Background(),
		`UPDATE insurance_policies
		 SET type = $3, provider = $4, policy_number = $5, premium = $6, frequency = $7,
		     coverage_amount = $8, start_date = $9, end_date = $10, last_paid_date = $11,
		     notes = $12, updated_at = now()
		 WHERE user_id = $1 AND id = $2
		 RETURNING `+policyColumns,
		pgUUID(policy.UserID), pgUUID(policy.ID), policy.Type, policy.Provider,
		policy.PolicyNumber, pgNumeric(policy.Premium), policy.Frequency,
		pgNumeric(policy.CoverageAmount), pgDate(policy.StartDate), pgDate(policy.EndDate),
		pgDatePtr(policy.LastPaidDate), pgText(policy.Notes))
	updated, err := scanPolicy(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a policy
func (r *InsuranceRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM insurance_policies WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}
