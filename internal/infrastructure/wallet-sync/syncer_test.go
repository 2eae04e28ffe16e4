package walletsync_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	goelectrum "github.com/checksum0/go-electrum/electrum"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/storage/db/inmemory"
	walletsync "github.com/moonshine-wallet/moonshine-daemon/internal/infrastructure/wallet-sync"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/wallet"
	"github.com/stretchr/testify/require"
)

const (
	testMnemonic = "abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon about"
	gapLimit = 5
)

var ctx = context.Background()

func TestResync(t *testing.T) {
	t.Parallel()

	account := testAccount(t, "", 84, wallet.P2WPKH)
	receive0 := deriveAddress(t, account, wallet.ExternalChain, 0)
	receive3 := deriveAddress(t, account, wallet.ExternalChain, 3)
	change0 := deriveAddress(t, account, wallet.InternalChain, 0)

	electrum := newFakeElectrum()
	electrum.history[receive0.ScriptHash()] = []*goelectrum.GetMempoolResult{
		{Hash: "aa", Height: 100},
	}
	electrum.history[receive3.ScriptHash()] = []*goelectrum.GetMempoolResult{
		{Hash: "aa", Height: 100},
		{Hash: "bb", Height: 120},
	}
	electrum.history[change0.ScriptHash()] = []*goelectrum.GetMempoolResult{
		{Hash: "bb", Height: 120},
		{Hash: "cc", Height: 0},
	}
	electrum.unspents[receive3.ScriptHash()] = []*goelectrum.ListUnspentResult{
		{Hash: "bb", Position: 0, Height: 120, Value: 50000},
	}
	electrum.unspents[change0.ScriptHash()] = []*goelectrum.ListUnspentResult{
		{Hash: "cc", Position: 1, Height: 0, Value: 2000},
	}

	repoManager := newRepoManager(t)
	secretStore := newFakeSecretStore(map[string]string{
		domain.MnemonicSecretKey(domain.DefaultWalletID): testMnemonic,
	})
	syncer, err := walletsync.NewSyncer(repoManager, secretStore, electrum, gapLimit)
	require.NoError(t, err)

	err = syncer.Resync(ctx, domain.DefaultWalletID, domain.Bitcoin)
	require.NoError(t, err)

	w, err := repoManager.WalletRepository().GetWallet(ctx, domain.DefaultWalletID)
	require.NoError(t, err)
	state := w.ChainState(domain.Bitcoin)

	require.Equal(t, uint32(4), state.AddressIndex)
	require.Equal(t, uint32(1), state.ChangeAddressIndex)
	require.Len(t, state.Addresses, 5)
	require.Len(t, state.ChangeAddresses, 2)
	require.Equal(t, "bc1qcr8te4kr609gcawutmrza0j4xv80jy8z306fyu", state.Addresses[0].Address)
	require.Equal(t, "m/84'/0'/0'/0/3", state.Addresses[3].Path)
	require.Equal(t, receive3.Address, state.Addresses[3].Address)

	require.Equal(t, []domain.Transaction{
		{Txid: "aa", Height: 100},
		{Txid: "bb", Height: 120},
		{Txid: "cc", Height: 0},
	}, state.Transactions)

	require.Len(t, state.Utxos, 2)
	require.Equal(t, int64(50000), state.ConfirmedBalance)
	require.Equal(t, int64(2000), state.UnconfirmedBalance)
	require.Equal(t, uint64(52000), w.SpendableAmount(domain.Bitcoin))
	require.False(t, w.LastUpdated.IsZero())
}

func TestResyncDependsOnWalletConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		passphrase  string
		addressType domain.AddressType
		purpose     uint32
		scriptType  wallet.ScriptType
	}{
		{
			name:        "legacy",
			addressType: domain.AddressTypeLegacy,
			purpose:     44,
			scriptType:  wallet.P2PKH,
		},
		{
			name:        "segwit",
			addressType: domain.AddressTypeSegwit,
			purpose:     49,
			scriptType:  wallet.P2SH_P2WPKH,
		},
		{
			name:        "bech32 with passphrase",
			passphrase:  "secret",
			addressType: domain.AddressTypeBech32,
			purpose:     84,
			scriptType:  wallet.P2WPKH,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repoManager := newRepoManager(t)
			err := repoManager.WalletRepository().UpdateWallet(
				ctx, domain.DefaultWalletID,
				func(w *domain.Wallet) (*domain.Wallet, error) {
					return w.WithAddressType(domain.Bitcoin, tt.addressType)
				},
			)
			require.NoError(t, err)

			secrets := map[string]string{
				domain.MnemonicSecretKey(domain.DefaultWalletID): testMnemonic,
			}
			if tt.passphrase != "" {
				secrets[domain.PassphraseSecretKey(domain.DefaultWalletID)] = tt.passphrase
			}

			syncer, err := walletsync.NewSyncer(
				repoManager, newFakeSecretStore(secrets), newFakeElectrum(), gapLimit,
			)
			require.NoError(t, err)
			require.NoError(t, syncer.Resync(ctx, domain.DefaultWalletID, domain.Bitcoin))

			w, err := repoManager.WalletRepository().GetWallet(ctx, domain.DefaultWalletID)
			require.NoError(t, err)
			state := w.ChainState(domain.Bitcoin)

			expected := deriveAddress(
				t, testAccount(t, tt.passphrase, tt.purpose, tt.scriptType),
				wallet.ExternalChain, 0,
			)
			require.Zero(t, state.AddressIndex)
			require.Len(t, state.Addresses, 1)
			require.Equal(t, expected.Address, state.Addresses[0].Address)
			require.Empty(t, state.Utxos)
		})
	}
}

func TestFailingResync(t *testing.T) {
	t.Parallel()

	t.Run("missing mnemonic", func(t *testing.T) {
		t.Parallel()

		syncer, err := walletsync.NewSyncer(
			newRepoManager(t), newFakeSecretStore(map[string]string{}),
			newFakeElectrum(), gapLimit,
		)
		require.NoError(t, err)

		err = syncer.Resync(ctx, domain.DefaultWalletID, domain.Bitcoin)
		require.ErrorIs(t, err, walletsync.ErrMnemonicNotFound)
	})

	t.Run("unknown wallet", func(t *testing.T) {
		t.Parallel()

		syncer, err := walletsync.NewSyncer(
			newRepoManager(t), newFakeSecretStore(map[string]string{}),
			newFakeElectrum(), gapLimit,
		)
		require.NoError(t, err)

		err = syncer.Resync(ctx, "wallet9", domain.Bitcoin)
		require.ErrorIs(t, err, domain.ErrWalletNotFound)
	})

	t.Run("peer failure leaves chain state untouched", func(t *testing.T) {
		t.Parallel()

		repoManager := newRepoManager(t)
		err := repoManager.WalletRepository().UpdateWallet(
			ctx, domain.DefaultWalletID,
			func(w *domain.Wallet) (*domain.Wallet, error) {
				return w.ApplySync(domain.Bitcoin, domain.ChainState{AddressIndex: 7}, w.LastUpdated), nil
			},
		)
		require.NoError(t, err)

		electrum := newFakeElectrum()
		electrum.failWith = errors.New("connection reset")
		syncer, err := walletsync.NewSyncer(
			repoManager,
			newFakeSecretStore(map[string]string{
				domain.MnemonicSecretKey(domain.DefaultWalletID): testMnemonic,
			}),
			electrum, gapLimit,
		)
		require.NoError(t, err)

		err = syncer.Resync(ctx, domain.DefaultWalletID, domain.Bitcoin)
		require.ErrorIs(t, err, electrum.failWith)

		w, err := repoManager.WalletRepository().GetWallet(ctx, domain.DefaultWalletID)
		require.NoError(t, err)
		require.Equal(t, uint32(7), w.ChainState(domain.Bitcoin).AddressIndex)
	})
}

func TestMnemonicService(t *testing.T) {
	t.Parallel()

	svc := walletsync.NewMnemonicService()

	mnemonic, err := svc.GenerateMnemonic()
	require.NoError(t, err)
	require.Len(t, strings.Fields(mnemonic), 12)
	require.True(t, svc.IsMnemonicValid(mnemonic))
	require.True(t, svc.IsMnemonicValid(testMnemonic))
	require.False(t, svc.IsMnemonicValid("abandon abandon abandon"))
}

func newRepoManager(t *testing.T) ports.RepoManager {
	repoManager := inmemory.NewRepoManager()
	w, err := domain.NewWallet(domain.DefaultWalletID, domain.SupportedCurrencies)
	require.NoError(t, err)
	require.NoError(t, repoManager.WalletRepository().AddWallet(ctx, w))
	return repoManager
}

func testAccount(
	t *testing.T, passphrase string, purpose uint32, scriptType wallet.ScriptType,
) *wallet.Account {
	w, err := wallet.NewWalletFromMnemonic(wallet.NewWalletOpts{
		SigningMnemonic: strings.Fields(testMnemonic),
		Passphrase:      passphrase,
		Network:         wallet.BitcoinMainNet,
	})
	require.NoError(t, err)
	account, err := w.Account(wallet.AccountOpts{
		Purpose: purpose, ScriptType: scriptType,
	})
	require.NoError(t, err)
	return account
}

func deriveAddress(
	t *testing.T, account *wallet.Account, chain, index uint32,
) *wallet.Address {
	addr, err := account.DeriveAddress(chain, index)
	require.NoError(t, err)
	return addr
}
