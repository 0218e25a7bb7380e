package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"
)

// TransactionService handles transaction business logic
type TransactionService struct {
	transactionRepo domain.TransactionRepository
	eventPublisher  websocket.EventPublisher
}

// NewTransactionService creates a new TransactionService
func NewTransactionService(transactionRepo domain.TransactionRepository) *TransactionService {
	return &TransactionService{transactionRepo: transactionRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *TransactionService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TransactionService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateTransactionInput holds the input for creating a transaction
type CreateTransactionInput struct {
	Date        domain.Date
	Description string
	Category    string
	Amount      decimal.Decimal
	Type        domain.TransactionType
}

// CreateTransaction validates and persists a transaction
func (s *TransactionService) CreateTransaction(userID uuid.UUID, input CreateTransactionInput) (*domain.Transaction, error) {
	transaction := &domain.Transaction{
		UserID:      userID,
		Date:        input.Date,
		Description: strings.TrimSpace(input.Description),
		Category:    strings.TrimSpace(input.Category),
		Amount:      input.Amount,
		Type:        input.Type,
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	created, err := s.transactionRepo.Create(transaction)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeTransaction, created))
	return created, nil
}

// GetTransactions retrieves all transactions for a user in insertion order
func (s *TransactionService) GetTransactions(userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUser(userID)
}

// GetTransactionsInRange retrieves a user's transactions dated within
// [start, end] inclusive, in insertion order
func (s *TransactionService) GetTransactionsInRange(userID uuid.UUID, start, end domain.Date) ([]*domain.Transaction, error) {
	return s.transactionRepo.GetByUserAndDateRange(userID, start, end)
}

// DeleteTransaction removes a transaction
func (s *TransactionService) DeleteTransaction(userID uuid.UUID, id uuid.UUID) error {
	transactions, err := s.transactionRepo.GetByUser(userID)
	if err != nil {
		return err
	}

	var target *domain.Transaction
	for _, t := range transactions {
		if t.ID == id {
			target = t
			break
		}
	}
	if target == nil {
		return domain.ErrTransactionNotFound
	}

	if err := s.transactionRepo.Delete(userID, id); err != nil {
		return err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeTransaction, target))
	return nil
}
