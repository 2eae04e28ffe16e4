package domain

const (
	Bitcoin         = "bitcoin"
	BitcoinTestnet  = "bitcoinTestnet"
	Litecoin        = "litecoin"
	LitecoinTestnet = "litecoinTestnet"

	ExternalChain = 0
	InternalChain = 1

	// PinSecretKey is the secret store key of the app pin.
	PinSecretKey = "pin"
	// passphraseKeySuffix is appended to the wallet identity to form the key of
	// its BIP39 passphrase.
	passphraseKeySuffix = "passphrase"

	CryptoUnitBTC     = "BTC"
	CryptoUnitSatoshi = "satoshi"

	RateSourceCoingecko = "coingecko"
	RateSourceCoincap   = "coincap"

	DefaultFiatCurrency = "usd"
	DefaultWalletID     = "wallet0"
)

// SupportedCurrencies lists every currency a new wallet is configured for.
var SupportedCurrencies = []string{
	Bitcoin, BitcoinTestnet, Litecoin, LitecoinTestnet,
}

// IsSupportedCurrency ...
func IsSupportedCurrency(currency string) bool {
	for _, c := range SupportedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

// IsTestnet returns whether the currency belongs to a test network.
func IsTestnet(currency string) bool {
	return currency == BitcoinTestnet || currency == LitecoinTestnet
}

// MnemonicSecretKey returns the secret store key of the wallet's mnemonic.
func MnemonicSecretKey(walletID string) string {
	return walletID
}

// PassphraseSecretKey returns the secret store key of the wallet's BIP39
// passphrase.
func PassphraseSecretKey(walletID string) string {
	return walletID + passphraseKeySuffix
}

var coinTypes = map[string]uint32{
	Bitcoin:         0,
	BitcoinTestnet:  1,
	Litecoin:        2,
	LitecoinTestnet: 1,
}

// CoinType returns the BIP44 coin type of the currency.
func CoinType(currency string) uint32 {
	return coinTypes[currency]
}
