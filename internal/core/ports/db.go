package ports

import "github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"

// RepoManager interface defines the methods for wallets, settings and
// exchange rates.
type RepoManager interface {
	WalletRepository() domain.WalletRepository
	SettingsRepository() domain.SettingsRepository
	RateRepository() domain.RateRepository

	Close()
}
