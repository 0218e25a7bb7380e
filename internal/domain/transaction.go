package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound          = errors.New("transaction not found")
	ErrTransactionDescriptionEmpty  = errors.New("transaction description is required")
	ErrTransactionCategoryEmpty     = errors.New("transaction category is required")
	ErrTransactionTypeInvalid       = errors.New("transaction type must be income or expense")
	ErrTransactionAmountNotPositive = errors.New("transaction amount must be positive")
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type
func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Transaction is a single dated income or expense entry
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (t *Transaction) Validate() error {
	if t.Description == "" {
		return ErrTransactionDescriptionEmpty
	}
	if t.Category == "" {
		return ErrTransactionCategoryEmpty
	}
	if !t.Type.Valid() {
		return ErrTransactionTypeInvalid
	}
	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}
	return nil
}

// TransactionRepository defines persistence for transactions.
// Listings preserve insertion order.
type TransactionRepository interface {
	Create(transaction *Transaction) (*Transaction, error)
	GetByUser(userID uuid.UUID) ([]*Transaction, error)
	GetByUserAndDateRange(userID uuid.UUID, start, end Date) ([]*Transaction, error)
	Delete(userID uuid.UUID, id uuid.UUID) error
}
