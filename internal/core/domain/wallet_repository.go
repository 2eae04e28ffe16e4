package domain

import "context"

// WalletRepository is the abstraction for any kind of database intended to
// persist Wallets.
type WalletRepository interface {
	// AddWallet adds a new wallet to the repository.
	AddWallet(ctx context.Context, wallet *Wallet) error
	// GetWallet returns the wallet with the given identity.
	GetWallet(ctx context.Context, walletID string) (*Wallet, error)
	// ListWallets returns all the stored wallets.
	ListWallets(ctx context.Context) ([]Wallet, error)
	// UpdateWallet updates the state of a wallet. The closure function let's to
	// commit multiple changes to a certain wallet in a transactional way: if it
	// returns an error nothing is written.
	UpdateWallet(
		ctx context.Context,
		walletID string, updateFn func(w *Wallet) (*Wallet, error),
	) error
}
