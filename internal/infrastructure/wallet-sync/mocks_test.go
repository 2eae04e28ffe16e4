package walletsync_test

import (
	"context"
	"sync"

	goelectrum "github.com/checksum0/go-electrum/electrum"
)

type fakeElectrum struct {
	history  map[string][]*goelectrum.GetMempoolResult
	unspents map[string][]*goelectrum.ListUnspentResult
	failWith error
}

func newFakeElectrum() *fakeElectrum {
	return &fakeElectrum{
		history:  map[string][]*goelectrum.GetMempoolResult{},
		unspents: map[string][]*goelectrum.ListUnspentResult{},
	}
}

func (f *fakeElectrum) GetHistory(
	_ context.Context, _, scriptHash string,
) ([]*goelectrum.GetMempoolResult, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.history[scriptHash], nil
}

func (f *fakeElectrum) ListUnspent(
	_ context.Context, _, scriptHash string,
) ([]*goelectrum.ListUnspentResult, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.unspents[scriptHash], nil
}

type fakeSecretStore struct {
	lock    sync.Mutex
	secrets map[string]string
}

func newFakeSecretStore(secrets map[string]string) *fakeSecretStore {
	return &fakeSecretStore{secrets: secrets}
}

func (s *fakeSecretStore) IsLocked() bool {
	return false
}

func (s *fakeSecretStore) Lock() {}

func (s *fakeSecretStore) Unlock(string) error {
	return nil
}

func (s *fakeSecretStore) ChangePassword(_, _ string) error {
	return nil
}

func (s *fakeSecretStore) Close() error {
	return nil
}

func (s *fakeSecretStore) Get(_ context.Context, key string) (string, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	v, ok := s.secrets[key]
	return v, ok, nil
}

func (s *fakeSecretStore) Set(_ context.Context, key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.secrets[key] = value
	return nil
}

func (s *fakeSecretStore) Reset(_ context.Context, key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.secrets, key)
	return nil
}
