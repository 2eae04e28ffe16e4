package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// AddressType is the script type used for the addresses of a wallet.
type AddressType string

const (
	AddressTypeLegacy AddressType = "legacy"
	AddressTypeSegwit AddressType = "segwit"
	AddressTypeBech32 AddressType = "bech32"
)

// ParseAddressType maps any input to a known address type. Unrecognized
// values fall back to bech32.
func ParseAddressType(s string) AddressType {
	switch AddressType(strings.ToLower(strings.TrimSpace(s))) {
	case AddressTypeLegacy:
		return AddressTypeLegacy
	case AddressTypeSegwit:
		return AddressTypeSegwit
	default:
		return AddressTypeBech32
	}
}

// DerivationPath returns the canonical key derivation path (BIP purpose) for
// the address type.
func (t AddressType) DerivationPath() DerivationPath {
	switch t {
	case AddressTypeLegacy:
		return DerivationPath44
	case AddressTypeSegwit:
		return DerivationPath49
	default:
		return DerivationPath84
	}
}

// DerivationPath is the purpose level of the BIP32 path used to derive the
// wallet addresses.
type DerivationPath string

const (
	DerivationPath0  DerivationPath = "0"
	DerivationPath44 DerivationPath = "44"
	DerivationPath49 DerivationPath = "49"
	DerivationPath84 DerivationPath = "84"
)

// ParseDerivationPath ...
func ParseDerivationPath(s string) (DerivationPath, error) {
	switch p := DerivationPath(strings.TrimSpace(s)); p {
	case DerivationPath0, DerivationPath44, DerivationPath49, DerivationPath84:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDerivationPath, s)
	}
}

// Purpose returns the numeric value of the path, to be hardened by the caller.
func (p DerivationPath) Purpose() uint32 {
	switch p {
	case DerivationPath44:
		return 44
	case DerivationPath49:
		return 49
	case DerivationPath84:
		return 84
	default:
		return 0
	}
}

// Template returns the human readable path of the first receiving address for
// the given BIP44 coin type.
func (p DerivationPath) Template(coinType uint32) string {
	return fmt.Sprintf("m/%s'/%d'/0'/0/0", p, coinType)
}

// CurrencyConfig is the persisted crypto configuration of one currency.
type CurrencyConfig struct {
	AddressType       AddressType
	KeyDerivationPath DerivationPath
}

// WalletCryptoConfig is the read model of a wallet's configuration for one
// currency.
type WalletCryptoConfig struct {
	AddressType       AddressType
	KeyDerivationPath DerivationPath
	HasPassphrase     bool
}

// Address is a derived address along with its derivation index.
type Address struct {
	Address string
	Path    string
	Index   uint32
}

// Transaction is a wallet transaction as reported by the peer.
type Transaction struct {
	Txid   string
	Height int64
}

// Utxo is an unspent output owned by the wallet.
type Utxo struct {
	Txid    string
	Vout    uint32
	Value   uint64
	Height  int64
	Address string
}

// Key returns the outpoint in the <txid>:<vout> format.
func (u Utxo) Key() string {
	return fmt.Sprintf("%s:%d", u.Txid, u.Vout)
}

// IsConfirmed ...
func (u Utxo) IsConfirmed() bool {
	return u.Height > 0
}

// ChainState holds the chain data derived for one currency. It's the part of
// the wallet that gets wiped by a rescan.
type ChainState struct {
	AddressIndex       uint32
	ChangeAddressIndex uint32
	Addresses          []Address
	ChangeAddresses    []Address
	Transactions       []Transaction
	Utxos              []Utxo
	ConfirmedBalance   int64
	UnconfirmedBalance int64
}

// Wallet is the state of one wallet identity across all currencies.
type Wallet struct {
	ID                    string
	LastUpdated           time.Time
	HasBackedUpWallet     bool
	WalletBackupTimestamp time.Time
	HasPassphrase         bool

	Configs          map[string]CurrencyConfig
	ChainStates      map[string]ChainState
	BlacklistedUtxos map[string][]string
	FiatBalance      map[string]decimal.Decimal
}

// NewWallet returns a wallet configured with the default bech32 settings for
// every given currency and an empty chain state.
func NewWallet(id string, currencies []string) (*Wallet, error) {
	if len(strings.TrimSpace(id)) <= 0 {
		return nil, ErrMissingWalletID
	}

	w := emptyWallet(id)
	for _, currency := range currencies {
		if !IsSupportedCurrency(currency) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, currency)
		}
		w.Configs[currency] = CurrencyConfig{
			AddressType:       AddressTypeBech32,
			KeyDerivationPath: DerivationPath84,
		}
		w.ChainStates[currency] = ChainState{}
	}
	return w, nil
}

func emptyWallet(id string) *Wallet {
	return &Wallet{
		ID:               id,
		Configs:          map[string]CurrencyConfig{},
		ChainStates:      map[string]ChainState{},
		BlacklistedUtxos: map[string][]string{},
		FiatBalance:      map[string]decimal.Decimal{},
	}
}

// Config returns the crypto config for the given currency.
func (w *Wallet) Config(currency string) (WalletCryptoConfig, error) {
	cfg, ok := w.Configs[currency]
	if !ok {
		return WalletCryptoConfig{}, fmt.Errorf(
			"%w: %s", ErrWalletConfigNotFound, currency,
		)
	}
	return WalletCryptoConfig{
		AddressType:       cfg.AddressType,
		KeyDerivationPath: cfg.KeyDerivationPath,
		HasPassphrase:     w.HasPassphrase,
	}, nil
}

// ChainState returns the chain state of the given currency, zero valued if
// never synced.
func (w *Wallet) ChainState(currency string) ChainState {
	return w.ChainStates[currency]
}
