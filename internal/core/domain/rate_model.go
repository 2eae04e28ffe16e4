package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the last fetched price of a crypto currency in a fiat one.
type ExchangeRate struct {
	Currency  string
	Fiat      string
	Service   string
	Rate      decimal.Decimal
	UpdatedAt time.Time
}

// Key identifies the rate by currency pair.
func (r ExchangeRate) Key() string {
	return RateKey(r.Currency, r.Fiat)
}

// IsZero ...
func (r ExchangeRate) IsZero() bool {
	return r.Rate.IsZero()
}

// RateKey ...
func RateKey(currency, fiat string) string {
	return fmt.Sprintf("%s/%s", currency, fiat)
}

// RateRepository caches the exchange rates.
type RateRepository interface {
	// GetExchangeRate returns ErrExchangeRateNotFound if the pair was never
	// fetched.
	GetExchangeRate(ctx context.Context, currency, fiat string) (*ExchangeRate, error)
	UpsertExchangeRate(ctx context.Context, rate ExchangeRate) error
}
