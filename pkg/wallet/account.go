package wallet

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
)

const (
	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart

	ExternalChain = 0
	InternalChain = 1
)

// ScriptType is the kind of output script an account locks funds to.
type ScriptType int

const (
	P2PKH ScriptType = iota
	P2SH_P2WPKH
	P2WPKH
)

func (t ScriptType) IsValid() bool {
	return t >= P2PKH && t <= P2WPKH
}

func (t ScriptType) String() string {
	switch t {
	case P2PKH:
		return "p2pkh"
	case P2SH_P2WPKH:
		return "p2sh-p2wpkh"
	case P2WPKH:
		return "p2wpkh"
	default:
		return "unknown"
	}
}

// Account is a BIP44-like account key from which receiving (external) and
// change (internal) addresses are derived.
type Account struct {
	key        *hdkeychain.ExtendedKey
	path       DerivationPath
	scriptType ScriptType
	network    *chaincfg.Params
}

// Address is a derived address along with its output script.
type Address struct {
	Address        string
	Script         []byte
	DerivationPath string
	Index          uint32
}

// ScriptHash returns the hash of the output script as used by the Electrum
// protocol, that is the reversed sha256 in hex format.
func (a Address) ScriptHash() string {
	return chainhash.HashH(a.Script).String()
}

// DerivationPath returns the path of the account key.
func (a *Account) DerivationPath() DerivationPath {
	return a.path.Child()
}

// DeriveAddress derives the address at <account path>/chain/index.
func (a *Account) DeriveAddress(chain, index uint32) (*Address, error) {
	if chain != ExternalChain && chain != InternalChain {
		return nil, fmt.Errorf("%w: chain must be 0 or 1", ErrInvalidDerivationPath)
	}
	if index >= hdkeychain.HardenedKeyStart {
		return nil, fmt.Errorf("%w: index must not be hardened", ErrInvalidDerivationPath)
	}

	branch, err := a.key.Derive(chain)
	if err != nil {
		return nil, err
	}
	child, err := branch.Derive(index)
	if err != nil {
		return nil, err
	}
	pubkey, err := child.ECPubKey()
	if err != nil {
		return nil, err
	}

	addr, err := addressFromPubKey(pubkey, a.scriptType, a.network)
	if err != nil {
		return nil, err
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		return nil, err
	}

	path := a.path.Child(chain, index)
	return &Address{
		Address:        addr.EncodeAddress(),
		Script:         script,
		DerivationPath: path.String(),
		Index:          index,
	}, nil
}

func addressFromPubKey(
	pubkey *btcec.PublicKey, scriptType ScriptType, network *chaincfg.Params,
) (btcutil.Address, error) {
	pubkeyHash := btcutil.Hash160(pubkey.SerializeCompressed())

	switch scriptType {
	case P2PKH:
		return btcutil.NewAddressPubKeyHash(pubkeyHash, network)
	case P2SH_P2WPKH:
		witnessAddr, err := btcutil.NewAddressWitnessPubKeyHash(pubkeyHash, network)
		if err != nil {
			return nil, err
		}
		redeemScript, err := txscript.PayToAddrScript(witnessAddr)
		if err != nil {
			return nil, err
		}
		return btcutil.NewAddressScriptHash(redeemScript, network)
	case P2WPKH:
		return btcutil.NewAddressWitnessPubKeyHash(pubkeyHash, network)
	default:
		return nil, ErrInvalidScriptType
	}
}
