package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionRepository using PostgreSQL
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, user_id, date, description, category, amount, type, created_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		id          pgtype.UUID
		userID      pgtype.UUID
		date        pgtype.Date
		amount      pgtype.Numeric
		createdAt   pgtype.Timestamptz
		transaction domain.Transaction
	)
	err := row.Scan(&id, &userID, &date, &transaction.Description, &transaction.Category, &amount, &transaction.Type, &createdAt)
	if err != nil {
		return nil, err
	}
	transaction.ID = uuid.UUID(id.Bytes)
	transaction.UserID = uuid.UUID(userID.Bytes)
	transaction.Date = dateOf(date)
	transaction.Amount = decimalOf(amount)
	transaction.CreatedAt = timeOf(createdAt)
	return &transaction, nil
}

// Create stores a transaction
func (r *TransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	row := r.pool.QueryRow(context.Background(),
		`INSERT INTO transactions (user_id, date, description, category, amount, type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+transactionColumns,
		pgUUID(transaction.UserID), pgDate(transaction.Date), transaction.Description,
		transaction.Category, pgNumeric(transaction.Amount), transaction.Type)
	return scanTransaction(row)
}

// GetByUser retrieves a user's transactions in insertion order
func (r *TransactionRepository) GetByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions WHERE user_id = $1 ORDER BY created_at, id`,
		pgUUID(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

// GetByUserAndDateRange retrieves a user's transactions dated within [start, end]
func (r *TransactionRepository) GetByUserAndDateRange(userID uuid.UUID, start, end domain.Date) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY created_at, id`,
		pgUUID(userID), pgDate(start), pgDate(end))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	tag, err := r.pool.Exec(context.Background(),
		`DELETE FROM transactions WHERE user_id = $1 AND id = $2`,
		pgUUID(userID), pgUUID(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}
