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

// LoanRepository implements domain.LoanRepository using PostgreSQL
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

const loanColumns = `id, user_id, type, bank, amount, interest_rate, tenure_months, emi, created_at`

func scanLoan(row pgx.Row) (*domain.Loan, error) {
	var (
		id           pgtype.UUID
		userID       pgtype.UUID
		amount       pgtype.Numeric
		interestRate pgtype.Numeric
		emi          pgtype.Numeric
		createdAt    pgtype.Timestamptz
		loan         domain.Loan
	)
	err := row.Scan(&id, &userID, &loan.Type, &loan.Bank, &amount, &interestRate, &loan.TenureMonths, &emi, &createdAt)
	if err != nil {
		return nil, err
	}
	loan.ID = uuid.UUID(id.Bytes)
	loan.UserID = uuid.UUID(userID.Bytes)
	loan.Amount = decimalOf(amount)
	loan.InterestRate = decimalOf(interestRate)
	loan.EMI = decimalOf(emi)
	loan.CreatedAt = timeOf(createdAt)
	return &loan, nil
}

// Create stores a loan
func (r *LoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO loans (user_id, type, bank, amount, interest_rate, tenure_months, emi)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+loanColumns,
		pgUUID(loan.UserID), loan.Type, loan.Bank, pgNumeric(loan.Amount),
		pgNumeric(loan.InterestRate), loan.TenureMonths, pgNumeric(loan.EMI))
	return scanLoan(row)
}

// GetByID retrieves a loan scoped to its owner
func (r *LoanRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Loan, error) {
	row := r.pool.QueryRow(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	loan, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// GetByUser retrieves a user's loans in insertion order
func (r *LoanRepository) GetByUser(userID uuid.UUID) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+loanColumns+` FROM loans WHERE user_id = $1 ORDER BY created_at, id`,
		pgUUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loans := make([]*domain.Loan, 0)
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

// Delete removes a loan
func (r *LoanRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM loans WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLoanNotFound
	}
	return nil
}
