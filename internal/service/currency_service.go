package service

import (
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/shubhodip/spendmate/spendmate-backend/internal/domain"
)

// RateCache is an optional read-through cache in front of the rate table
// (backed by Redis in production, in-memory in tests). A nil cache or a cache
// failure never affects conversion results.
type RateCache interface {
	Get(from, to string) (decimal.Decimal, bool)
	Set(from, to string, rate decimal.Decimal) error
}

// CurrencyService converts amounts between supported currencies using a
// fixed rate table. It does not model time-varying quotes or spreads.
type CurrencyService struct {
	rates domain.RateTable
	cache RateCache
}

// NewCurrencyService creates a CurrencyService over the given table.
// cache may be nil.
func NewCurrencyService(rates domain.RateTable, cache RateCache) *CurrencyService {
	return &CurrencyService{rates: rates, cache: cache}
}

// Convert converts amount between two currency codes. The identity pair
// short-circuits to rate 1; an unknown pair fails with ErrRateNotFound
// rather than silently assuming parity.
func (s *CurrencyService) Convert(amount decimal.Decimal, from, to string) (*domain.Conversion, error) {
	if !domain.IsSupportedCurrency(from) || !domain.IsSupportedCurrency(to) {
		return nil, domain.ErrCurrencyCodeInvalid
	}

	rate, err := s.lookupRate(from, to)
	if err != nil {
		return nil, err
	}

	return &domain.Conversion{
		Amount:          amount,
		From:            from,
		To:              to,
		Rate:            rate,
		ConvertedAmount: amount.Mul(rate).Round(2),
	}, nil
}

// Currencies returns the supported currency list
func (s *CurrencyService) Currencies() []domain.Currency {
	return domain.SupportedCurrencies
}

func (s *CurrencyService) lookupRate(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if s.cache != nil {
		if rate, ok := s.cache.Get(from, to); ok {
			return rate, nil
		}
	}

	rate, err := s.rates.Lookup(from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(from, to, rate); err != nil {
			log.Warn().Err(err).Str("from", from).Str("to", to).Msg("Failed to cache exchange rate")
		}
	}
	return rate, nil
}
