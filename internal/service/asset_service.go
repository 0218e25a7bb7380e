package service

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/websocket"
)

// AssetService handles asset and liability business logic
type AssetService struct {
	assetRepo      domain.AssetRepository
	liabilityRepo  domain.LiabilityRepository
	eventPublisher websocket.EventPublisher
}

// NewAssetService creates a new AssetService
func NewAssetService(assetRepo domain.AssetRepository, liabilityRepo domain.LiabilityRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo, liabilityRepo: liabilityRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *AssetService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *AssetService) publishEvent(userID uuid.UUID, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(userID, event)
	}
}

// CreateAssetInput holds the input for creating an asset
type CreateAssetInput struct {
	Type          string
	Name          string
	Value         decimal.Decimal
	MonthlyReturn *decimal.Decimal
}

// CreateAsset validates and persists an asset
func (s *AssetService) CreateAsset(userID uuid.UUID, input CreateAssetInput) (*domain.Asset, error) {
	asset := &domain.Asset{
		UserID:        userID,
		Type:          strings.TrimSpace(input.Type),
		Name:          strings.TrimSpace(input.Name),
		Value:         input.Value,
		MonthlyReturn: input.MonthlyReturn,
	}
	if err := asset.Validate(); err != nil {
		return nil, err
	}

	created, err := s.assetRepo.Create(asset)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeAsset, created))
	return created, nil
}

// GetAssets retrieves all assets for a user
func (s *AssetService) GetAssets(userID uuid.UUID) ([]*domain.Asset, error) {
	return s.assetRepo.GetByUser(userID)
}

// DeleteAsset removes an asset
func (s *AssetService) DeleteAsset(userID uuid.UUID, id uuid.UUID) error {
	if err := s.assetRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeAsset, map[string]string{"id": id.String()}))
	return nil
}

// CreateLiabilityInput holds the input for creating a liability
type CreateLiabilityInput struct {
	Type           string
	Name           string
	Amount         decimal.Decimal
	MonthlyPayment *decimal.Decimal
}

// CreateLiability validates and persists a liability
func (s *AssetService) CreateLiability(userID uuid.UUID, input CreateLiabilityInput) (*domain.Liability, error) {
	liability := &domain.Liability{
		UserID:         userID,
		Type:           strings.TrimSpace(input.Type),
		Name:           strings.TrimSpace(input.Name),
		Amount:         input.Amount,
		MonthlyPayment: input.MonthlyPayment,
	}
	if err := liability.Validate(); err != nil {
		return nil, err
	}

	created, err := s.liabilityRepo.Create(liability)
	if err != nil {
		return nil, err
	}

	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeLiability, created))
	return created, nil
}

// GetLiabilities retrieves all liabilities for a user
func (s *AssetService) GetLiabilities(userID uuid.UUID) ([]*domain.Liability, error) {
	return s.liabilityRepo.GetByUser(userID)
}

// DeleteLiability removes a liability
func (s *AssetService) DeleteLiability(userID uuid.UUID, id uuid.UUID) error {
	if err := s.liabilityRepo.Delete(userID, id); err != nil {
		return err
	}
	s.publishEvent(userID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeLiability, map[string]string{"id": id.String()}))
	return nil
}

// NetWorth computes total assets minus total liabilities
func (s *AssetService) NetWorth(userID uuid.UUID) (decimal.Decimal, error) {
	assets, err := s.assetRepo.GetByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	liabilities, err := s.liabilityRepo.GetByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.Value)
	}
	for _, l := range liabilities {
		total = total.Sub(l.Amount)
	}
	return total, nil
}

// MonthlyCashflow computes total monthly asset returns minus total monthly
// liability payments. Records without the optional monthly figure count as zero.
func (s *AssetService) MonthlyCashflow(userID uuid.UUID) (decimal.Decimal, error) {
	assets, err := s.assetRepo.GetByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}
	liabilities, err := s.liabilityRepo.GetByUser(userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, a := range assets {
		if a.MonthlyReturn != nil {
			total = total.Add(*a.MonthlyReturn)
		}
	}
	for _, l := range liabilities {
		if l.MonthlyPayment != nil {
			total = total.Sub(*l.MonthlyPayment)
		}
	}
	return total, nil
}
