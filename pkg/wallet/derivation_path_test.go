package wallet_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/wallet"
	"github.com/stretchr/testify/require"
)

func TestDerivationPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         wallet.DerivationPath
		expectedPath string
	}{
		{
			name:         "empty",
			path:         wallet.DerivationPath{},
			expectedPath: "",
		},
		{
			name:         "bech32 account",
			path:         wallet.NewAccountPath(84, 0, 0),
			expectedPath: "m/84'/0'/0'",
		},
		{
			name:         "litecoin change address",
			path:         wallet.NewAccountPath(44, 2, 1).Child(1, 7),
			expectedPath: "m/44'/2'/1'/1/7",
		},
		{
			name:         "max hardened index",
			path:         wallet.NewAccountPath(wallet.MaxHardenedValue, 1, 0),
			expectedPath: "m/2147483647'/1'/0'",
		},
		{
			name: "max non hardened index",
			path: wallet.DerivationPath{
				hdkeychain.HardenedKeyStart + 49, hdkeychain.HardenedKeyStart - 1,
			},
			expectedPath: "m/49'/2147483647",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expectedPath, tt.path.String())
		})
	}
}

func TestDerivationPathChild(t *testing.T) {
	t.Parallel()

	account := wallet.NewAccountPath(49, 0, 0)
	receive := account.Child(wallet.ExternalChain, 0)
	change := account.Child(wallet.InternalChain, 0)

	require.Len(t, account, 3)
	require.Equal(t, "m/49'/0'/0'", account.String())
	require.Equal(t, "m/49'/0'/0'/0/0", receive.String())
	require.Equal(t, "m/49'/0'/0'/1/0", change.String())
}
