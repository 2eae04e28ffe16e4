package dbbadger

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/domain"
	"github.com/moonshine-wallet/moonshine-daemon/internal/core/ports"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	maxRetries      = 5
	retryInterval   = 100 * time.Millisecond
	valueLogGCEvery = 30 * time.Minute
)

// RepoManager holds all the badgerhold stores in a single data structure.
type RepoManager struct {
	walletStore   *badgerhold.Store
	settingsStore *badgerhold.Store
	rateStore     *badgerhold.Store

	walletRepository   domain.WalletRepository
	settingsRepository domain.SettingsRepository
	rateRepository     domain.RateRepository

	stop chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger stores on disk.
// It expects a base data dir and an optional logger. If the dir is empty, the
// stores are kept in memory.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var walletDir, settingsDir, rateDir string
	if len(baseDbDir) > 0 {
		walletDir = filepath.Join(baseDbDir, "wallet")
		settingsDir = filepath.Join(baseDbDir, "settings")
		rateDir = filepath.Join(baseDbDir, "rates")
	}

	walletStore, err := createDb(walletDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening wallet db: %w", err)
	}
	settingsStore, err := createDb(settingsDir, logger)
	if err != nil {
		walletStore.Close()
		return nil, fmt.Errorf("opening settings db: %w", err)
	}
	rateStore, err := createDb(rateDir, logger)
	if err != nil {
		walletStore.Close()
		settingsStore.Close()
		return nil, fmt.Errorf("opening rates db: %w", err)
	}

	rm := &RepoManager{
		walletStore:        walletStore,
		settingsStore:      settingsStore,
		rateStore:          rateStore,
		walletRepository:   NewWalletRepositoryImpl(walletStore),
		settingsRepository: NewSettingsRepositoryImpl(settingsStore),
		rateRepository:     NewRateRepositoryImpl(rateStore),
		stop:               make(chan struct{}),
	}
	if len(baseDbDir) > 0 {
		go rm.runValueLogGC()
	}
	return rm, nil
}

func (d *RepoManager) WalletRepository() domain.WalletRepository {
	return d.walletRepository
}

func (d *RepoManager) SettingsRepository() domain.SettingsRepository {
	return d.settingsRepository
}

func (d *RepoManager) RateRepository() domain.RateRepository {
	return d.rateRepository
}

func (d *RepoManager) Close() {
	close(d.stop)
	for _, s := range d.stores() {
		if err := s.Close(); err != nil {
			log.WithError(err).Warn("failed to close db")
		}
	}
}

func (d *RepoManager) stores() []*badgerhold.Store {
	return []*badgerhold.Store{d.walletStore, d.settingsStore, d.rateStore}
}

func (d *RepoManager) runValueLogGC() {
	ticker := time.NewTicker(valueLogGCEvery)
	defer ticker.Stop()

	for {
		select {
		case <-d.stop:
			return
		case <-ticker.C:
			for _, s := range d.stores() {
				if err := s.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}
	}
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

// withRetry runs a read-write transaction retrying on conflicts.
func withRetry(store *badgerhold.Store, fn func(tx *badger.Txn) error) error {
	err := store.Badger().Update(fn)
	attempts := 1
	for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
		time.Sleep(retryInterval)
		err = store.Badger().Update(fn)
		attempts++
	}
	return err
}
