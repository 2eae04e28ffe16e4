package inmemory

import (
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
)

type RepoManager struct {
	walletRepository   domain.WalletRepository
	settingsRepository domain.SettingsRepository
	rateRepository     domain.RateRepository
}

func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		walletRepository:   NewWalletRepositoryImpl(),
		settingsRepository: NewSettingsRepositoryImpl(),
		rateRepository:     NewRateRepositoryImpl(),
	}
}

func (d *RepoManager) WalletRepository() domain.WalletRepository {
	return d.walletRepository
}

func (d *RepoManager) SettingsRepository() domain.SettingsRepository {
	return d.settingsRepository
}

func (d *RepoManager) RateRepository() domain.RateRepository {
	return d.rateRepository
}

func (d *RepoManager) Close() {}
