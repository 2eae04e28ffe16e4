package wallet

import (
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is a BIP32 path. Indexes starting from
// hdkeychain.HardenedKeyStart are hardened.
type DerivationPath []uint32

// NewAccountPath returns the path m/purpose'/coinType'/account'.
func NewAccountPath(purpose, coinType, account uint32) DerivationPath {
	return DerivationPath{
		hdkeychain.HardenedKeyStart + purpose,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + account,
	}
}

// Child returns a copy of the path extended with the given indexes.
func (p DerivationPath) Child(indexes ...uint32) DerivationPath {
	child := make(DerivationPath, 0, len(p)+len(indexes))
	child = append(child, p...)
	return append(child, indexes...)
}

// String returns the path in the m/84'/0'/0'/0/5 notation, or an empty string
// for an empty path.
func (p DerivationPath) String() string {
	if len(p) <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("m")
	for _, index := range p {
		b.WriteString("/")
		if index >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(index-hdkeychain.HardenedKeyStart), 10))
			b.WriteString("'")
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(index), 10))
	}
	return b.String()
}
