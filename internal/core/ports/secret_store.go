package ports

import "context"

// SecretStore is an encrypted key-value store for the wallet mnemonics, their
// BIP39 passphrases and the app pin.
type SecretStore interface {
	// IsLocked returns whether the store is locked.
	IsLocked() bool
	// Lock locks the store.
	Lock()
	// Unlock unlocks the store. The first unlock sets the encryption password.
	Unlock(password string) error
	// ChangePassword allows to change the encryption password. A wrong
	// current password results in domain.ErrInvalidPassword.
	ChangePassword(oldPwd, newPwd string) error

	// Get returns the value stored for the key. A missing key is not an
	// error, found is false instead.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	// Set stores the value for the key, overwriting any previous one.
	Set(ctx context.Context, key, value string) error
	// Reset deletes the key. It's idempotent.
	Reset(ctx context.Context, key string) error

	// Close should be used to gracefully close the connection with the store.
	Close() error
}
