package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/testutil"
)

func TestCreateAsset_Valid(t *testing.T) {
	assetService := NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())
	userID := uuid.New()

	monthlyReturn := decimal.NewFromInt(5000)
	asset, err := assetService.CreateAsset(userID, CreateAssetInput{
		Type:          "mutual_funds",
		Name:          "Index Fund",
		Value:         decimal.NewFromInt(750000),
		MonthlyReturn: &monthlyReturn,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if asset.ID == uuid.Nil {
		t.Error("Expected assigned asset ID")
	}
}

func TestCreateAsset_Invalid(t *testing.T) {
	assetService := NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())

	_, err := assetService.CreateAsset(uuid.New(), CreateAssetInput{
		Type:  "savings",
		Name:  "   ",
		Value: decimal.NewFromInt(1000),
	})
	if !errors.Is(err, domain.ErrAssetNameEmpty) {
		t.Errorf("Expected ErrAssetNameEmpty, got %v", err)
	}

	_, err = assetService.CreateAsset(uuid.New(), CreateAssetInput{
		Type:  "savings",
		Name:  "Savings",
		Value: decimal.Zero,
	})
	if !errors.Is(err, domain.ErrAssetValueNotPositive) {
		t.Errorf("Expected ErrAssetValueNotPositive, got %v", err)
	}
}

func TestNetWorth(t *testing.T) {
	assetRepo := testutil.NewMockAssetRepository()
	liabilityRepo := testutil.NewMockLiabilityRepository()
	assetService := NewAssetService(assetRepo, liabilityRepo)
	userID := uuid.New()

	assets := []struct {
		name  string
		value int64
	}{
		{"Savings", 300000},
		{"Mutual Funds", 450000},
	}
	for _, a := range assets {
		_, err := assetService.CreateAsset(userID, CreateAssetInput{
			Type:  "savings",
			Name:  a.name,
			Value: decimal.NewFromInt(a.value),
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	_, err := assetService.CreateLiability(userID, CreateLiabilityInput{
		Type:   "credit_card",
		Name:   "Credit Card",
		Amount: decimal.NewFromInt(50000),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	netWorth, err := assetService.NetWorth(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !netWorth.Equal(decimal.NewFromInt(700000)) {
		t.Errorf("Expected net worth 700000, got %s", netWorth.String())
	}
}

func TestNetWorth_EmptyPortfolio(t *testing.T) {
	assetService := NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())

	netWorth, err := assetService.NetWorth(uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !netWorth.IsZero() {
		t.Errorf("Expected zero net worth, got %s", netWorth.String())
	}
}

func TestNetWorth_CanBeNegative(t *testing.T) {
	assetService := NewAssetService(testutil.NewMockAssetRepository(), testutil.NewMockLiabilityRepository())
	userID := uuid.New()

	_, err := assetService.CreateLiability(userID, CreateLiabilityInput{
		Type:   "personal_loan",
		Name:   "Personal Loan",
		Amount: decimal.NewFromInt(200000),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	netWorth, err := assetService.NetWorth(userID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !netWorth.Equal(decimal.NewFromInt(-200000)) {
		t.Errorf("Expected net worth -200000, got %s", netWorth.String())
	}
}
