package domain_test

import (
	"testing"
	"time"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewWallet(t *testing.T) {
	t.Parallel()

	w, err := domain.NewWallet("wallet0", domain.SupportedCurrencies)
	require.NoError(t, err)
	for _, currency := range domain.SupportedCurrencies {
		cfg, err := w.Config(currency)
		require.NoError(t, err)
		require.Equal(t, domain.AddressTypeBech32, cfg.AddressType)
		require.Equal(t, domain.DerivationPath84, cfg.KeyDerivationPath)
		require.False(t, cfg.HasPassphrase)
		require.Equal(t, domain.ChainState{}, w.ChainState(currency))
	}
}

func TestFailingNewWallet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		id            string
		currencies    []string
		expectedError error
	}{
		{
			name:          "missing_id",
			id:            " ",
			currencies:    domain.SupportedCurrencies,
			expectedError: domain.ErrMissingWalletID,
		},
		{
			name:          "unsupported_currency",
			id:            "wallet0",
			currencies:    []string{"dogecoin"},
			expectedError: domain.ErrUnsupportedCurrency,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, err := domain.NewWallet(tt.id, tt.currencies)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, w)
		})
	}
}

func TestAddressTypeMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input        string
		expectedType domain.AddressType
		expectedPath domain.DerivationPath
	}{
		{"legacy", domain.AddressTypeLegacy, domain.DerivationPath44},
		{"segwit", domain.AddressTypeSegwit, domain.DerivationPath49},
		{"bech32", domain.AddressTypeBech32, domain.DerivationPath84},
		{"unknown", domain.AddressTypeBech32, domain.DerivationPath84},
		{"", domain.AddressTypeBech32, domain.DerivationPath84},
	}

	for _, tt := range tests {
		addrType := domain.ParseAddressType(tt.input)
		require.Equal(t, tt.expectedType, addrType, tt.input)
		require.Equal(t, tt.expectedPath, addrType.DerivationPath(), tt.input)
	}
}

func TestWithAddressType(t *testing.T) {
	t.Parallel()

	w := newTestWallet(t)
	updated, err := w.WithAddressType(domain.Bitcoin, domain.AddressTypeSegwit)
	require.NoError(t, err)

	cfg, err := updated.Config(domain.Bitcoin)
	require.NoError(t, err)
	require.Equal(t, domain.AddressTypeSegwit, cfg.AddressType)
	require.Equal(t, domain.DerivationPath49, cfg.KeyDerivationPath)

	// The original value is untouched.
	cfg, err = w.Config(domain.Bitcoin)
	require.NoError(t, err)
	require.Equal(t, domain.AddressTypeBech32, cfg.AddressType)

	_, err = w.WithAddressType("dogecoin", domain.AddressTypeLegacy)
	require.ErrorIs(t, err, domain.ErrWalletConfigNotFound)
}

func TestWithKeyDerivationPath(t *testing.T) {
	t.Parallel()

	w := newTestWallet(t)
	w, err := w.WithAddressType(domain.Bitcoin, domain.AddressTypeLegacy)
	require.NoError(t, err)

	updated, err := w.WithKeyDerivationPath(domain.Bitcoin, domain.DerivationPath84)
	require.NoError(t, err)

	cfg, err := updated.Config(domain.Bitcoin)
	require.NoError(t, err)
	require.Equal(t, domain.AddressTypeLegacy, cfg.AddressType)
	require.Equal(t, domain.DerivationPath84, cfg.KeyDerivationPath)

	_, err = w.WithKeyDerivationPath("dogecoin", domain.DerivationPath84)
	require.ErrorIs(t, err, domain.ErrWalletConfigNotFound)
}

func TestResetForPassphrase(t *testing.T) {
	t.Parallel()

	lastUpdated := time.Unix(1700000000, 0)
	backupAt := time.Unix(1600000000, 0)

	w := newTestWallet(t)
	w, err := w.WithAddressType(domain.Bitcoin, domain.AddressTypeLegacy)
	require.NoError(t, err)
	w = w.ApplySync(domain.Bitcoin, newTestChainState(), lastUpdated)
	w = w.MarkBackedUp(backupAt)
	w.BlacklistedUtxos[domain.Bitcoin] = []string{"aa:0"}
	w = w.WithFiatBalance(domain.Bitcoin, decimal.NewFromInt(30000))

	reset := w.ResetForPassphrase(true)
	require.True(t, reset.HasPassphrase)
	require.Equal(t, lastUpdated, reset.LastUpdated)
	require.True(t, reset.HasBackedUpWallet)
	require.Equal(t, backupAt, reset.WalletBackupTimestamp)

	cfg, err := reset.Config(domain.Bitcoin)
	require.NoError(t, err)
	require.Equal(t, domain.AddressTypeLegacy, cfg.AddressType)
	require.Equal(t, domain.DerivationPath44, cfg.KeyDerivationPath)

	require.Equal(t, domain.ChainState{}, reset.ChainState(domain.Bitcoin))
	require.Empty(t, reset.BlacklistedUtxos)
	require.Empty(t, reset.FiatBalance)

	// Source wallet keeps its chain state.
	require.Len(t, w.ChainState(domain.Bitcoin).Utxos, 2)
}

func TestResetChainState(t *testing.T) {
	t.Parallel()

	w := newTestWallet(t)
	w = w.ApplySync(domain.Bitcoin, newTestChainState(), time.Now())
	w = w.ApplySync(domain.Litecoin, newTestChainState(), time.Now())

	reset := w.ResetChainState(domain.Bitcoin)
	require.Equal(t, domain.ChainState{}, reset.ChainState(domain.Bitcoin))
	require.Len(t, reset.ChainState(domain.Litecoin).Utxos, 2)
}

func TestWithFiatBalance(t *testing.T) {
	t.Parallel()

	w := newTestWallet(t)
	w = w.ApplySync(domain.Bitcoin, newTestChainState(), time.Now())
	require.Equal(t, uint64(5000), w.SpendableAmount(domain.Bitcoin))

	w.BlacklistedUtxos[domain.Bitcoin] = []string{
		"bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb:1",
	}
	require.Equal(t, uint64(3000), w.SpendableAmount(domain.Bitcoin))

	updated := w.WithFiatBalance(domain.Bitcoin, decimal.NewFromInt(50000))
	require.Equal(t, "1.5", updated.FiatBalance[domain.Bitcoin].String())
}

func newTestWallet(t *testing.T) *domain.Wallet {
	w, err := domain.NewWallet("wallet0", domain.SupportedCurrencies)
	require.NoError(t, err)
	return w
}

func newTestChainState() domain.ChainState {
	return domain.ChainState{
		AddressIndex:       3,
		ChangeAddressIndex: 1,
		Addresses: []domain.Address{
			{Address: "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", Index: 0},
		},
		Transactions: []domain.Transaction{
			{Txid: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Height: 100},
		},
		Utxos: []domain.Utxo{
			{
				Txid:   "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
				Vout:   0,
				Value:  3000,
				Height: 100,
			},
			{
				Txid:   "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
				Vout:   1,
				Value:  2000,
				Height: 101,
			},
		},
		ConfirmedBalance: 5000,
	}
}
