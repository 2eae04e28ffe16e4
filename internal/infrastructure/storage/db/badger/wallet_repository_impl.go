package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type walletRepositoryImpl struct {
	store *badgerhold.Store
}

// NewWalletRepositoryImpl is the factory for a badger implementation of
// domain.WalletRepository
func NewWalletRepositoryImpl(store *badgerhold.Store) domain.WalletRepository {
	return walletRepositoryImpl{store}
}

func (r walletRepositoryImpl) AddWallet(
	_ context.Context, wallet *domain.Wallet,
) error {
	if err := r.store.Insert(wallet.ID, *wallet); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrWalletAlreadyExists
		}
		return err
	}
	return nil
}

func (r walletRepositoryImpl) GetWallet(
	_ context.Context, walletID string,
) (*domain.Wallet, error) {
	var wallet domain.Wallet
	if err := r.store.Get(walletID, &wallet); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, err
	}
	return wallet.Copy(), nil
}

func (r walletRepositoryImpl) ListWallets(
	_ context.Context,
) ([]domain.Wallet, error) {
	var wallets []domain.Wallet
	if err := r.store.Find(&wallets, nil); err != nil {
		return nil, err
	}
	for i, w := range wallets {
		wallets[i] = *w.Copy()
	}
	sort.SliceStable(wallets, func(i, j int) bool {
		return wallets[i].ID < wallets[j].ID
	})
	return wallets, nil
}

// UpdateWallet reads and writes the wallet in the same badger transaction.
// If the closure fails the transaction is discarded.
func (r walletRepositoryImpl) UpdateWallet(
	_ context.Context,
	walletID string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	return withRetry(r.store, func(tx *badger.Txn) error {
		var wallet domain.Wallet
		if err := r.store.TxGet(tx, walletID, &wallet); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return domain.ErrWalletNotFound
			}
			return err
		}

		updatedWallet, err := updateFn(wallet.Copy())
		if err != nil {
			return err
		}
		return r.store.TxUpdate(tx, walletID, *updatedWallet)
	})
}
