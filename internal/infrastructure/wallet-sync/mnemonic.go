package walletsync

import (
	"strings"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/wallet"
)

type mnemonicService struct {
	entropySize int
}

// NewMnemonicService returns a service generating 12 words BIP39 mnemonics.
func NewMnemonicService() ports.MnemonicService {
	return mnemonicService{128}
}

func (m mnemonicService) GenerateMnemonic() (string, error) {
	mnemonic, err := wallet.NewMnemonic(wallet.NewMnemonicOpts{
		EntropySize: m.entropySize,
	})
	if err != nil {
		return "", err
	}
	return strings.Join(mnemonic, " "), nil
}

func (m mnemonicService) IsMnemonicValid(mnemonic string) bool {
	return wallet.IsMnemonicValid(strings.Fields(mnemonic))
}
