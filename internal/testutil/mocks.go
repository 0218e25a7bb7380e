package testutil

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users    map[string]*domain.User
	ByID     map[uuid.UUID]*domain.User
	CreateFn func(authID, email string, name *string) (*domain.User, bool, error)
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuthID retrieves a user by identity provider subject
func (m *MockUserRepository) GetByAuthID(authID string) (*domain.User, error) {
	if user, ok := m.Users[authID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuthID creates or retrieves a user by identity provider subject
func (m *MockUserRepository) CreateOrGetByAuthID(authID, email string, name *string) (*domain.User, bool, error) {
	if m.CreateFn != nil {
		return m.CreateFn(authID, email, name)
	}
	if user, ok := m.Users[authID]; ok {
		return user, false, nil
	}
	user := &domain.User{
		ID:            uuid.New(),
		AuthID:        authID,
		Email:         email,
		Name:          name,
		MonthlyIncome: decimal.Zero,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	m.Users[authID] = user
	m.ByID[user.ID] = user
	return user, true, nil
}

// UpdateProfile updates the profile fields of a user
func (m *MockUserRepository) UpdateProfile(id uuid.UUID, dateOfBirth domain.Date, occupation string, monthlyIncome decimal.Decimal) (*domain.User, error) {
	user, ok := m.ByID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.DateOfBirth = &dateOfBirth
	user.Occupation = &occupation
	user.MonthlyIncome = monthlyIncome
	user.UpdatedAt = time.Now()
	return user, nil
}

// UpdateAvatarKey updates the stored avatar object key
func (m *MockUserRepository) UpdateAvatarKey(id uuid.UUID, key *string) error {
	user, ok := m.ByID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.AvatarKey = key
	return nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.AuthID] = user
	m.ByID[user.ID] = user
}

// MockTransactionRepository is a mock implementation of domain.TransactionRepository
type MockTransactionRepository struct {
	Transactions []*domain.Transaction
	CreateFn     func(transaction *domain.Transaction) (*domain.Transaction, error)
}

// NewMockTransactionRepository creates a new MockTransactionRepository
func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

// Create stores a transaction
func (m *MockTransactionRepository) Create(transaction *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(transaction)
	}
	transaction.ID = uuid.New()
	transaction.CreatedAt = time.Now()
	m.Transactions = append(m.Transactions, transaction)
	return transaction, nil
}

// GetByUser retrieves a user's transactions in insertion order
func (m *MockTransactionRepository) GetByUser(userID uuid.UUID) ([]*domain.Transaction, error) {
	result := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

// GetByUserAndDateRange retrieves a user's transactions within [start, end]
func (m *MockTransactionRepository) GetByUserAndDateRange(userID uuid.UUID, start, end domain.Date) ([]*domain.Transaction, error) {
	result := make([]*domain.Transaction, 0)
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

// Delete removes a transaction
func (m *MockTransactionRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	for i, t := range m.Transactions {
		if t.UserID == userID && t.ID == id {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return domain.ErrTransactionNotFound
}

// MockLoanRepository is a mock implementation of domain.LoanRepository
type MockLoanRepository struct {
	Loans    []*domain.Loan
	CreateFn func(loan *domain.Loan) (*domain.Loan, error)
}

// NewMockLoanRepository creates a new MockLoanRepository
func NewMockLoanRepository() *MockLoanRepository {
	return &MockLoanRepository{}
}

// Create stores a loan
func (m *MockLoanRepository) Create(loan *domain.Loan) (*domain.Loan, error) {
	if m.CreateFn != nil {
		return m.CreateFn(loan)
	}
	loan.ID = uuid.New()
	loan.CreatedAt = time.Now()
	m.Loans = append(m.Loans, loan)
	return loan, nil
}

// GetByID retrieves a loan by ID
func (m *MockLoanRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.Loan, error) {
	for _, l := range m.Loans {
		if l.UserID == userID && l.ID == id {
			return l, nil
		}
	}
	return nil, domain.ErrLoanNotFound
}

// GetByUser retrieves a user's loans in insertion order
func (m *MockLoanRepository) GetByUser(userID uuid.UUID) ([]*domain.Loan, error) {
	result := make([]*domain.Loan, 0)
	for _, l := range m.Loans {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

// Delete removes a loan
func (m *MockLoanRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	for i, l := range m.Loans {
		if l.UserID == userID && l.ID == id {
			m.Loans = append(m.Loans[:i], m.Loans[i+1:]...)
			return nil
		}
	}
	return domain.ErrLoanNotFound
}

// MockAssetRepository is a mock implementation of domain.AssetRepository
type MockAssetRepository struct {
	Assets []*domain.Asset
}

// NewMockAssetRepository creates a new MockAssetRepository
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{}
}

// Create stores an asset
func (m *MockAssetRepository) Create(asset *domain.Asset) (*domain.Asset, error) {
	asset.ID = uuid.New()
	asset.CreatedAt = time.Now()
	m.Assets = append(m.Assets, asset)
	return asset, nil
}

// GetByUser retrieves a user's assets in insertion order
func (m *MockAssetRepository) GetByUser(userID uuid.UUID) ([]*domain.Asset, error) {
	result := make([]*domain.Asset, 0)
	for _, a := range m.Assets {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	return result, nil
}

// Delete removes an asset
func (m *MockAssetRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	for i, a := range m.Assets {
		if a.UserID == userID && a.ID == id {
			m.Assets = append(m.Assets[:i], m.Assets[i+1:]...)
			return nil
		}
	}
	return domain.ErrAssetNotFound
}

// MockLiabilityRepository is a mock implementation of domain.LiabilityRepository
type MockLiabilityRepository struct {
	Liabilities []*domain.Liability
}

// NewMockLiabilityRepository creates a new MockLiabilityRepository
func NewMockLiabilityRepository() *MockLiabilityRepository {
	return &MockLiabilityRepository{}
}

// Create stores a liability
func (m *MockLiabilityRepository) Create(liability *domain.Liability) (*domain.Liability, error) {
	liability.ID = uuid.New()
	liability.CreatedAt = time.Now()
	m.Liabilities = append(m.Liabilities, liability)
	return liability, nil
}

// GetByUser retrieves a user's liabilities in insertion order
func (m *MockLiabilityRepository) GetByUser(userID uuid.UUID) ([]*domain.Liability, error) {
	result := make([]*domain.Liability, 0)
	for _, l := range m.Liabilities {
		if l.UserID == userID {
			result = append(result, l)
		}
	}
	return result, nil
}

// Delete removes a liability
func (m *MockLiabilityRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	for i, l := range m.Liabilities {
		if l.UserID == userID && l.ID == id {
			m.Liabilities = append(m.Liabilities[:i], m.Liabilities[i+1:]...)
			return nil
		}
	}
	return domain.ErrLiabilityNotFound
}

// MockInsuranceRepository is a mock implementation of domain.InsuranceRepository
type MockInsuranceRepository struct {
	Policies []*domain.InsurancePolicy
	UpdateFn func(policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error)
}

// NewMockInsuranceRepository creates a new MockInsuranceRepository
func NewMockInsuranceRepository() *MockInsuranceRepository {
	return &MockInsuranceRepository{}
}

// Create stores a policy
func (m *MockInsuranceRepository) Create(policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	policy.ID = uuid.New()
	policy.CreatedAt = time.Now()
	m.Policies = append(m.Policies, policy)
	return policy, nil
}

// GetByID retrieves a policy by ID
func (m *MockInsuranceRepository) GetByID(userID uuid.UUID, id uuid.UUID) (*domain.InsurancePolicy, error) {
	for _, p := range m.Policies {
		if p.UserID == userID && p.ID == id {
			return p, nil
		}
	}
	return nil, domain.ErrPolicyNotFound
}

// GetByUser retrieves a user's policies in insertion order
func (m *MockInsuranceRepository) GetByUser(userID uuid.UUID) ([]*domain.InsurancePolicy, error) {
	result := make([]*domain.InsurancePolicy, 0)
	for _, p := range m.Policies {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

// Update replaces a stored policy
func (m *MockInsuranceRepository) Update(policy *domain.InsurancePolicy) (*domain.InsurancePolicy, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(policy)
	}
	for i, p := range m.Policies {
		if p.UserID == policy.UserID && p.ID == policy.ID {
			m.Policies[i] = policy
			return policy, nil
		}
	}
	return nil, domain.ErrPolicyNotFound
}

// Delete removes a policy
func (m *MockInsuranceRepository) Delete(userID uuid.UUID, id uuid.UUID) error {
	for i, p := range m.Policies {
		if p.UserID == userID && p.ID == id {
			m.Policies = append(m.Policies[:i], m.Policies[i+1:]...)
			return nil
		}
	}
	return domain.ErrPolicyNotFound
}

// MockRateCache is an in-memory rate cache for currency tests
type MockRateCache struct {
	mu     sync.Mutex
	rates  map[string]decimal.Decimal
	Gets   int
	Hits   int
	Sets   int
	SetErr error
}

// NewMockRateCache creates a new MockRateCache
func NewMockRateCache() *MockRateCache {
	return &MockRateCache{rates: make(map[string]decimal.Decimal)}
}

// Get returns a cached rate if present
func (m *MockRateCache) Get(from, to string) (decimal.Decimal, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	rate, ok := m.rates[from+":"+to]
	if ok {
		m.Hits++
	}
	return rate, ok
}

// Set stores a rate
func (m *MockRateCache) Set(from, to string, rate decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Sets++
	m.rates[from+":"+to] = rate
	return nil
}

// RecordedEvent pairs a published event with its target user
type RecordedEvent struct {
	UserID uuid.UUID
	Event  websocket.Event
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	Events []RecordedEvent
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// Publish records the event
func (m *MockEventPublisher) Publish(userID uuid.UUID, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, RecordedEvent{UserID: userID, Event: event})
}

// EventCount returns the number of recorded events
func (m *MockEventPublisher) EventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Events)
}

// LastEvent returns the most recently recorded event, or nil
func (m *MockEventPublisher) LastEvent() *RecordedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Events) == 0 {
		return nil
	}
	e := m.Events[len(m.Events)-1]
	return &e
}
