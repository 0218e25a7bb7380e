package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrRateNotFound        = errors.New("exchange rate not found for currency pair")
	ErrCurrencyCodeInvalid = errors.New("currency code is not supported")
)

// Currency is a supported currency code with its display name
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedCurrencies in display order
var SupportedCurrencies = []Currency{
	{Code: "USD", Name: "US Dollar"},
	{Code: "EUR", Name: "Euro"},
	{Code: "GBP", Name: "British Pound"},
	{Code: "JPY", Name: "Japanese Yen"},
	{Code: "INR", Name: "Indian Rupee"},
	{Code: "CAD", Name: "Canadian Dollar"},
	{Code: "AUD", Name: "Australian Dollar"},
	{Code: "CNY", Name: "Chinese Yuan"},
	{Code: "SGD", Name: "Singapore Dollar"},
	{Code: "CHF", Name: "Swiss Franc"},
}

// IsSupportedCurrency reports whether code is in the supported set
func IsSupportedCurrency(code string) bool {
	for _, c := range SupportedCurrencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// RateTable maps a source currency to its per-target exchange rates
type RateTable map[string]map[string]decimal.Decimal

// Lookup returns the rate for a pair. The identity pair is always 1
// regardless of table contents; a missing pair is an explicit failure,
// never a silent parity assumption.
func (t RateTable) Lookup(from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if targets, ok := t[from]; ok {
		if rate, ok := targets[to]; ok {
			return rate, nil
		}
	}
	return decimal.Decimal{}, ErrRateNotFound
}

// Conversion is the result of converting an amount between currencies
type Conversion struct {
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
}

// StaticRates is the fixed in-memory rate table. Rates are indicative; this
// component does not model time-varying quotes or spreads.
var StaticRates = RateTable{
	"USD": pairs("INR", 83.12, "EUR", 0.85, "GBP", 0.73, "JPY", 110.25, "CAD", 1.25, "AUD", 1.35, "CNY", 6.45, "SGD", 1.35, "CHF", 0.88),
	"EUR": pairs("USD", 1.18, "INR", 97.89, "GBP", 0.86, "JPY", 130.15, "CAD", 1.47, "AUD", 1.59, "CNY", 7.61, "SGD", 1.59, "CHF", 1.04),
	"GBP": pairs("USD", 1.37, "INR", 113.89, "EUR", 1.16, "JPY", 151.24, "CAD", 1.71, "AUD", 1.85, "CNY", 8.84, "SGD", 1.85, "CHF", 1.21),
	"INR": pairs("USD", 0.012, "EUR", 0.010, "GBP", 0.009, "JPY", 1.33, "CAD", 0.015, "AUD", 0.016, "CNY", 0.078, "SGD", 0.016, "CHF", 0.011),
	"JPY": pairs("USD", 0.009, "EUR", 0.008, "GBP", 0.007, "INR", 0.75, "CAD", 0.011, "AUD", 0.012, "CNY", 0.058, "SGD", 0.012, "CHF", 0.008),
	"CAD": pairs("USD", 0.80, "EUR", 0.68, "GBP", 0.58, "INR", 66.50, "JPY", 88.20, "AUD", 1.08, "CNY", 5.16, "SGD", 1.08, "CHF", 0.70),
	"AUD": pairs("USD", 0.74, "EUR", 0.63, "GBP", 0.54, "INR", 61.57, "JPY", 81.67, "CAD", 0.93, "CNY", 4.78, "SGD", 1.00, "CHF", 0.65),
	"CNY": pairs("USD", 0.155, "EUR", 0.131, "GBP", 0.113, "INR", 12.89, "JPY", 17.09, "CAD", 0.194, "AUD", 0.209, "SGD", 0.209, "CHF", 0.136),
	"SGD": pairs("USD", 0.74, "EUR", 0.63, "GBP", 0.54, "INR", 61.57, "JPY", 81.67, "CAD", 0.93, "AUD", 1.00, "CNY", 4.78, "CHF", 0.65),
	"CHF": pairs("USD", 1.14, "EUR", 0.96, "GBP", 0.83, "INR", 94.65, "JPY", 125.28, "CAD", 1.43, "AUD", 1.54, "CNY", 7.35, "SGD", 1.54),
}

func pairs(kv ...interface{}) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		m[kv[i].(string)] = decimal.NewFromFloat(kv[i+1].(float64))
	}
	return m
}
