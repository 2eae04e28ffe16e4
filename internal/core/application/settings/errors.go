package settings

import (
	"errors"
	"fmt"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
)

var (
	// ErrValidation is returned when the input or the current selection do not
	// allow the operation. Nothing is changed.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a secret is missing from the store.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when the secret store, the sync engine,
	// the peer client or the rate service fail. The state preceding the failing
	// call is preserved.
	ErrExternalService = errors.New("external service error")
	// ErrTransactionalWrite is returned when a wallet or settings update could
	// not be committed. Nothing is changed.
	ErrTransactionalWrite = errors.New("transactional write failure")
	// ErrInvalidPin ...
	ErrInvalidPin = errors.New("pin must be made of 4 to 8 digits")
	// ErrMissingPassword ...
	ErrMissingPassword = errors.New("missing secret store password")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
)

var validationErrors = []error{
	domain.ErrWalletNotFound,
	domain.ErrMissingWalletID,
	domain.ErrWalletConfigNotFound,
	domain.ErrMissingCurrency,
	domain.ErrUnsupportedCurrency,
	domain.ErrInvalidDerivationPath,
	domain.ErrInvalidCryptoUnit,
	domain.ErrInvalidToggle,
	domain.ErrUnknownRateSource,
	domain.ErrInvalidPeer,
	domain.ErrWalletAlreadyExists,
	domain.ErrInvalidPassword,
}

// writeError classifies the error returned by a repository update.
func writeError(err error) error {
	for _, e := range validationErrors {
		if errors.Is(err, e) {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrTransactionalWrite, err)
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}

func externalError(err error) error {
	return fmt.Errorf("%w: %w", ErrExternalService, err)
}
