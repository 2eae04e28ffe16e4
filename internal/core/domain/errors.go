package domain

import "errors"

var (
	// ErrWalletNotFound is returned when no wallet exists for a given identity.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrWalletAlreadyExists is returned when adding a wallet with an identity
	// already in use.
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	// ErrMissingWalletID ...
	ErrMissingWalletID = errors.New("missing wallet identity")
	// ErrWalletConfigNotFound is returned when trying to update the crypto
	// config of a currency the wallet has never been configured for.
	ErrWalletConfigNotFound = errors.New("wallet has no config for currency")
	// ErrMissingCurrency ...
	ErrMissingCurrency = errors.New("missing currency")
	// ErrUnsupportedCurrency ...
	ErrUnsupportedCurrency = errors.New("currency not supported")
	// ErrInvalidDerivationPath is returned for paths other than 0, 44, 49, 84.
	ErrInvalidDerivationPath = errors.New("key derivation path not supported")
	// ErrInvalidCryptoUnit ...
	ErrInvalidCryptoUnit = errors.New("crypto unit not supported")
	// ErrInvalidToggle is returned when flipping a setting that is not a plain
	// boolean toggle.
	ErrInvalidToggle = errors.New("setting is not a toggle")
	// ErrUnknownRateSource ...
	ErrUnknownRateSource = errors.New("exchange rate source not supported")
	// ErrInvalidPeer ...
	ErrInvalidPeer = errors.New("peer must have a host and a port in range 1-65535")
	// ErrInvalidPanel ...
	ErrInvalidPanel = errors.New("unknown panel")
	// ErrInvalidPassword is returned when the password does not unlock the
	// secret store.
	ErrInvalidPassword = errors.New("invalid secret store password")
	// ErrExchangeRateNotFound is returned when a currency pair was never
	// fetched.
	ErrExchangeRateNotFound = errors.New("exchange rate not found")
)
