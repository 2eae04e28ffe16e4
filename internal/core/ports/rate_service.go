package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateService fetches exchange rates from public price sources.
type RateService interface {
	// FetchRate returns the price of 1 coin of the currency in the fiat one.
	FetchRate(
		ctx context.Context, currency, fiat, source string,
	) (decimal.Decimal, error)
	// ListSources returns the list of supported price sources.
	ListSources() []string
}
