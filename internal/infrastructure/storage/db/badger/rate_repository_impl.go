package dbbadger

import (
	"context"
	"errors"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type rateRepositoryImpl struct {
	store *badgerhold.Store
}

// NewRateRepositoryImpl is the factory for a badger implementation of
// domain.RateRepository
func NewRateRepositoryImpl(store *badgerhold.Store) domain.RateRepository {
	return rateRepositoryImpl{store}
}

func (r rateRepositoryImpl) GetExchangeRate(
	_ context.Context, currency, fiat string,
) (*domain.ExchangeRate, error) {
	var rate domain.ExchangeRate
	if err := r.store.Get(domain.RateKey(currency, fiat), &rate); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrExchangeRateNotFound
		}
		return nil, err
	}
	return &rate, nil
}

func (r rateRepositoryImpl) UpsertExchangeRate(
	_ context.Context, rate domain.ExchangeRate,
) error {
	return r.store.Upsert(rate.Key(), rate)
}
