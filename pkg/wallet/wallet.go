package wallet

import (
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/vulpemventures/go-bip39"
)

var (
	// ErrNullNetwork ...
	ErrNullNetwork = errors.New("network params are null")
	// ErrNullSigningMnemonic ...
	ErrNullSigningMnemonic = errors.New("signing mnemonic is null")

	// ErrInvalidSigningMnemonic ...
	ErrInvalidSigningMnemonic = errors.New("signing mnemonic is invalid")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidDerivationPath ...
	ErrInvalidDerivationPath = errors.New("invalid derivation path")
	// ErrInvalidScriptType ...
	ErrInvalidScriptType = errors.New("script type not supported")
	// ErrOutOfRangeDerivationPathAccount ...
	ErrOutOfRangeDerivationPathAccount = errors.New(
		"account index must be in hardened range",
	)
)

// Wallet holds the BIP32 master key derived from a BIP39 mnemonic and an
// optional passphrase.
type Wallet struct {
	masterKey *hdkeychain.ExtendedKey
	network   *chaincfg.Params
}

// NewWalletOpts is the struct given to the NewWalletFromMnemonic method
type NewWalletOpts struct {
	SigningMnemonic []string
	Passphrase      string
	Network         *chaincfg.Params
}

func (o NewWalletOpts) validate() error {
	if len(o.SigningMnemonic) <= 0 {
		return ErrNullSigningMnemonic
	}
	if !isMnemonicValid(o.SigningMnemonic) {
		return ErrInvalidSigningMnemonic
	}
	if o.Network == nil {
		return ErrNullNetwork
	}
	return nil
}

// NewWalletFromMnemonic returns a new wallet for the given mnemonic and
// passphrase. Different passphrases lead to unrelated wallets.
func NewWalletFromMnemonic(opts NewWalletOpts) (*Wallet, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	seed, err := bip39.NewSeedWithErrorChecking(
		strings.Join(opts.SigningMnemonic, " "), opts.Passphrase,
	)
	if err != nil {
		return nil, err
	}
	masterKey, err := hdkeychain.NewMaster(seed, opts.Network)
	if err != nil {
		return nil, err
	}

	return &Wallet{masterKey, opts.Network}, nil
}

// AccountOpts is the struct given to the Account method
type AccountOpts struct {
	Purpose    uint32
	CoinType   uint32
	Account    uint32
	ScriptType ScriptType
}

func (o AccountOpts) validate() error {
	if o.Purpose > MaxHardenedValue || o.CoinType > MaxHardenedValue ||
		o.Account > MaxHardenedValue {
		return ErrOutOfRangeDerivationPathAccount
	}
	if !o.ScriptType.IsValid() {
		return ErrInvalidScriptType
	}
	return nil
}

// Account derives the account key at m/purpose'/coinType'/account'.
func (w *Wallet) Account(opts AccountOpts) (*Account, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	path := NewAccountPath(opts.Purpose, opts.CoinType, opts.Account)
	key := w.masterKey
	for _, step := range path {
		var err error
		key, err = key.Derive(step)
		if err != nil {
			return nil, err
		}
	}

	return &Account{key, path, opts.ScriptType, w.network}, nil
}
