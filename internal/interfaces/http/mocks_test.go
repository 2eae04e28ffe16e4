package httpinterface_test

import (
	"context"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type mockSecretStore struct {
	mock.Mock
}

func (m *mockSecretStore) IsLocked() bool {
	return m.Called().Bool(0)
}

func (m *mockSecretStore) Lock() {
	m.Called()
}

func (m *mockSecretStore) Unlock(password string) error {
	return m.Called(password).Error(0)
}

func (m *mockSecretStore) ChangePassword(oldPwd, newPwd string) error {
	return m.Called(oldPwd, newPwd).Error(0)
}

func (m *mockSecretStore) Get(
	ctx context.Context, key string,
) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockSecretStore) Set(ctx context.Context, key, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockSecretStore) Reset(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockSecretStore) Close() error {
	return m.Called().Error(0)
}

type mockWalletSyncer struct {
	mock.Mock
}

func (m *mockWalletSyncer) Resync(
	ctx context.Context, walletID, currency string,
) error {
	return m.Called(ctx, walletID, currency).Error(0)
}

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
	return m.Called(ctx, currency).Error(0)
}

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

type mockMnemonicService struct {
	mock.Mock
}

func (m *mockMnemonicService) GenerateMnemonic() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockMnemonicService) IsMnemonicValid(mnemonic string) bool {
	return m.Called(mnemonic).Bool(0)
}
