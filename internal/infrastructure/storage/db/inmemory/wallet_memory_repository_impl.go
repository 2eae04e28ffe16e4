package inmemory

import (
	"context"
	"sort"
	"sync"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

// WalletRepositoryImpl represents an in memory storage
type WalletRepositoryImpl struct {
	wallets map[string]domain.Wallet

	lock *sync.RWMutex
}

// NewWalletRepositoryImpl returns a new empty WalletRepositoryImpl
func NewWalletRepositoryImpl() *WalletRepositoryImpl {
	return &WalletRepositoryImpl{
		wallets: map[string]domain.Wallet{},
		lock:    &sync.RWMutex{},
	}
}

func (r *WalletRepositoryImpl) AddWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.wallets[wallet.ID]; ok {
		return domain.ErrWalletAlreadyExists
	}
	r.wallets[wallet.ID] = *wallet.Copy()
	return nil
}

func (r *WalletRepositoryImpl) GetWallet(
	_ context.Context, walletID string,
) (*domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.getWallet(walletID)
}

func (r *WalletRepositoryImpl) ListWallets(
	_ context.Context,
) ([]domain.Wallet, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	wallets := make([]domain.Wallet, 0, len(r.wallets))
	for _, w := range r.wallets {
		wallets = append(wallets, *w.Copy())
	}
	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].ID < wallets[j].ID
	})
	return wallets, nil
}

// UpdateWallet passes a copy of the stored wallet to the closure, therefore
// nothing is written if it fails.
func (r *WalletRepositoryImpl) UpdateWallet(
	_ context.Context,
	walletID string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	currentWallet, err := r.getWallet(walletID)
	if err != nil {
		return err
	}

	updatedWallet, err := updateFn(currentWallet)
	if err != nil {
		return err
	}

	r.wallets[walletID] = *updatedWallet.Copy()
	return nil
}

func (r *WalletRepositoryImpl) getWallet(walletID string) (*domain.Wallet, error) {
	w, ok := r.wallets[walletID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return w.Copy(), nil
}
