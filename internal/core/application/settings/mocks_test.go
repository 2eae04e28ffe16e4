package settings_test

import (
	"context"
	"errors"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

/*
 * SecretStore
 */
type mockSecretStore struct {
	mock.Mock
}

func (m *mockSecretStore) IsLocked() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockSecretStore) Lock() {
	m.Called()
}

func (m *mockSecretStore) Unlock(password string) error {
	args := m.Called(password)
	return args.Error(0)
}

func (m *mockSecretStore) ChangePassword(oldPwd, newPwd string) error {
	args := m.Called(oldPwd, newPwd)
	return args.Error(0)
}

func (m *mockSecretStore) Get(
	ctx context.Context, key string,
) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockSecretStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockSecretStore) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockSecretStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

/*
 * WalletSyncer
 */
type mockWalletSyncer struct {
	mock.Mock
}

func (m *mockWalletSyncer) Resync(
	ctx context.Context, walletID, currency string,
) error {
	args := m.Called(ctx, walletID, currency)
	return args.Error(0)
}

/*
 * PeerClient
 */
type mockPeerClient struct {
	mock.Mock
}

func (m *mockPeerClient) Start(
	ctx context.Context, currency string, peers, customPeers []domain.Peer,
) (domain.Peer, error) {
	args := m.Called(ctx, currency, peers, customPeers)

	var res domain.Peer
	if a := args.Get(0); a != nil {
		res = a.(domain.Peer)
	}
	return res, args.Error(1)
}

func (m *mockPeerClient) Stop(ctx context.Context, currency string) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

/*
 * RateService
 */
type mockRateService struct {
	mock.Mock
}

func (m *mockRateService) FetchRate(
	ctx context.Context, currency, fiat, source string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, currency, fiat, source)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockRateService) ListSources() []string {
	return []string{domain.RateSourceCoingecko, domain.RateSourceCoincap}
}

/*
 * MnemonicService
 */
type mockMnemonicService struct {
	mock.Mock
}

func (m *mockMnemonicService) GenerateMnemonic() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockMnemonicService) IsMnemonicValid(mnemonic string) bool {
	args := m.Called(mnemonic)
	return args.Bool(0)
}

/*
 * RepoManager
 */
var errCommit = errors.New("failed to commit db transaction")

// failingRepoManager makes the selected writes of the wrapped repo manager
// fail. Wallet updates still run the closure, only the commit fails.
type failingRepoManager struct {
	ports.RepoManager
	failWalletUpdate bool
	failRateUpsert   bool
}

func (m *failingRepoManager) WalletRepository() domain.WalletRepository {
	return failingWalletRepository{m.RepoManager.WalletRepository(), m}
}

func (m *failingRepoManager) RateRepository() domain.RateRepository {
	return failingRateRepository{m.RepoManager.RateRepository(), m}
}

type failingWalletRepository struct {
	domain.WalletRepository
	manager *failingRepoManager
}

func (r failingWalletRepository) UpdateWallet(
	ctx context.Context, walletID string,
	updateFn func(w *domain.Wallet) (*domain.Wallet, error),
) error {
	if !r.manager.failWalletUpdate {
		return r.WalletRepository.UpdateWallet(ctx, walletID, updateFn)
	}
	w, err := r.GetWallet(ctx, walletID)
	if err != nil {
		return err
	}
	if _, err := updateFn(w); err != nil {
		return err
	}
	return errCommit
}

type failingRateRepository struct {
	domain.RateRepository
	manager *failingRepoManager
}

func (r failingRateRepository) UpsertExchangeRate(
	ctx context.Context, rate domain.ExchangeRate,
) error {
	if r.manager.failRateUpsert {
		return errCommit
	}
	return r.RateRepository.UpsertExchangeRate(ctx, rate)
}
