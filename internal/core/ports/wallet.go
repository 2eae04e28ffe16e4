package ports

import "context"

// WalletSyncer repopulates the chain state of a wallet by querying the peer
// connected for the currency.
type WalletSyncer interface {
	// Resync derives the wallet addresses from scratch and stores the
	// resulting chain state.
	Resync(ctx context.Context, walletID, currency string) error
}

// MnemonicService generates and validates BIP39 recovery phrases.
type MnemonicService interface {
	GenerateMnemonic() (string, error)
	IsMnemonicValid(mnemonic string) bool
}
