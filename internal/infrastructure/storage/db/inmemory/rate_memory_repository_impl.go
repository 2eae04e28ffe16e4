package inmemory

import (
	"context"
	"sync"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

// RateRepositoryImpl represents an in memory storage
type RateRepositoryImpl struct {
	rates map[string]domain.ExchangeRate

	lock *sync.RWMutex
}

// NewRateRepositoryImpl returns a new empty RateRepositoryImpl
func NewRateRepositoryImpl() *RateRepositoryImpl {
	return &RateRepositoryImpl{
		rates: map[string]domain.ExchangeRate{},
		lock:  &sync.RWMutex{},
	}
}

func (r *RateRepositoryImpl) GetExchangeRate(
	_ context.Context, currency, fiat string,
) (*domain.ExchangeRate, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	rate, ok := r.rates[domain.RateKey(currency, fiat)]
	if !ok {
		return nil, domain.ErrExchangeRateNotFound
	}
	return &rate, nil
}

func (r *RateRepositoryImpl) UpsertExchangeRate(
	_ context.Context, rate domain.ExchangeRate,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.rates[rate.Key()] = rate
	return nil
}
