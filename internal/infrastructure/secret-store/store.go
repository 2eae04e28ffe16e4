package secretstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/securestore"
	boltsecurestore "github.com/moonshine-wallet/moonshine-daemon/pkg/securestore/bolt"
)

const (
	storeFilename = "secrets.db"
)

var (
	secretsBucket = []byte("secrets")
)

type store struct {
	store securestore.SecureStorage
}

// NewStore returns a SecretStore backed by an encrypted bolt db in datadir.
// The store must be unlocked before reading or writing any secret.
func NewStore(datadir string) (ports.SecretStore, error) {
	s, err := boltsecurestore.NewSecureStorage(datadir, storeFilename)
	if err != nil {
		return nil, err
	}
	return newStore(s), nil
}

func newStore(s securestore.SecureStorage) *store {
	return &store{s}
}

func (s *store) IsLocked() bool {
	return s.store.IsLocked()
}

func (s *store) Lock() {
	s.store.Lock()
}

func (s *store) Unlock(password string) error {
	if err := s.store.CreateUnlock([]byte(password)); err != nil {
		return passwordError(err)
	}
	return s.store.CreateBucket(secretsBucket)
}

func (s *store) ChangePassword(oldPwd, newPwd string) error {
	return passwordError(s.store.ChangePassword([]byte(oldPwd), []byte(newPwd)))
}

func (s *store) Get(_ context.Context, key string) (string, bool, error) {
	value, err := s.store.GetFromBucket(secretsBucket, []byte(key))
	if err != nil {
		if errors.Is(err, boltsecurestore.ErrDataNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(value), true, nil
}

func (s *store) Set(_ context.Context, key, value string) error {
	return s.store.AddToBucket(secretsBucket, []byte(key), []byte(value))
}

func (s *store) Reset(_ context.Context, key string) error {
	return s.store.RemoveFromBucket(secretsBucket, []byte(key))
}

func (s *store) Close() error {
	return s.store.Close()
}

func passwordError(err error) error {
	if errors.Is(err, boltsecurestore.ErrInvalidPassword) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidPassword, err)
	}
	return err
}
