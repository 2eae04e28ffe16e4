package boltsecurestore

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/btcsuite/btcwallet/snacl"
	"github.com/moonshine-wallet/moonshine-daemon/pkg/securestore"
	bolt "go.etcd.io/bbolt"
)

const (
	dbTimeout = time.Minute
)

var (
	// RootKeyBucketName is the name of the root key store bucket.
	RootKeyBucketName = []byte("root")

	// encryptionKeyID is the name of the database key that stores the
	// encryption key, encrypted with a salted + hashed password. The
	// format is 32 bytes of salt, and the rest is encrypted key.
	encryptionKeyID = []byte("enckey")
)

type boltSecureStorage struct {
	db *bolt.DB

	encKeyMtx sync.RWMutex
	encKey    *snacl.SecretKey
}

// NewSecureStorage creates a bolt instance of the SecureStorage interface.
func NewSecureStorage(
	datadir, filename string,
) (securestore.SecureStorage, error) {
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		filepath.Join(datadir, filename), 0600,
		&bolt.Options{Timeout: dbTimeout},
	)
	if err != nil {
		return nil, err
	}

	// If the store's bucket doesn't exist, create it.
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(RootKeyBucketName)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &boltSecureStorage{db: db}, nil
}

// IsLocked returns whether the store is locked by checking if the encryption
// key is stored in-memory.
func (s *boltSecureStorage) IsLocked() bool {
	s.encKeyMtx.RLock()
	defer s.encKeyMtx.RUnlock()

	return s.encKey == nil
}

// Lock eventually locks the store by flushing the in-memory encryption key.
func (s *boltSecureStorage) Lock() {
	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	s.lock()
}

// CreateUnlock sets an encryption key if one is not already set, otherwise it
// checks if the password is correct for the stored encryption key.
func (s *boltSecureStorage) CreateUnlock(password []byte) error {
	if password == nil {
		return ErrPasswordRequired
	}

	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	if s.encKey != nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(RootKeyBucketName)
		if bucket == nil {
			return ErrRootKeyBucketNotFound
		}

		if dbKey := bucket.Get(encryptionKeyID); len(dbKey) > 0 {
			encKey, err := deriveKey(dbKey, password)
			if err != nil {
				return err
			}
			s.encKey = encKey
			return nil
		}

		// The encryption key is not yet stored, so create a new one.
		encKey, err := snacl.NewSecretKey(
			&password, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
		)
		if err != nil {
			return err
		}
		if err := bucket.Put(encryptionKeyID, encKey.Marshal()); err != nil {
			return err
		}

		s.encKey = encKey
		return nil
	})
}

// ChangePassword decrypts every entry of the store with the key derived from
// the old password and encrypts it again with the one derived from the new
// password. Everything happens in a single db transaction.
func (s *boltSecureStorage) ChangePassword(oldPw, newPw []byte) error {
	if oldPw == nil || newPw == nil {
		return ErrPasswordRequired
	}

	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	// The store must be already unlocked. This ensures that there already is a
	// key in the DB.
	if s.encKey == nil {
		return ErrStoreLocked
	}

	encKeyNew, err := snacl.NewSecretKey(
		&newPw, snacl.DefaultN, snacl.DefaultR, snacl.DefaultP,
	)
	if err != nil {
		return err
	}

	if err := s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(RootKeyBucketName)
		if root == nil {
			return ErrRootKeyBucketNotFound
		}
		dbKey := root.Get(encryptionKeyID)
		if len(dbKey) <= 0 {
			return ErrEncKeyNotFound
		}
		encKeyOld, err := deriveKey(dbKey, oldPw)
		if err != nil {
			return err
		}

		if err := reencryptBucket(root, encKeyOld, encKeyNew); err != nil {
			return err
		}
		for _, key := range nestedBucketKeys(root) {
			if err := reencryptBucket(
				root.Bucket(key), encKeyOld, encKeyNew,
			); err != nil {
				return err
			}
		}

		return root.Put(encryptionKeyID, encKeyNew.Marshal())
	}); err != nil {
		encKeyNew.Zero()
		return err
	}

	s.lock()
	s.encKey = encKeyNew
	return nil
}

// CreateBucket creates a nested bucket into the root one.
func (s *boltSecureStorage) CreateBucket(key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}
	if err := validateBucketKey(key); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(RootKeyBucketName)
		if root == nil {
			return ErrRootKeyBucketNotFound
		}
		_, err := root.CreateBucketIfNotExists(key)
		return err
	})
}

// AddToBucket stores the provided data encrypted into the given bucket.
// If the bucket key is nil, the key/value entry is added to the root one.
func (s *boltSecureStorage) AddToBucket(bucketKey, key, value []byte) error {
	if err := validateDataKey(key); err != nil {
		return err
	}
	if len(value) <= 0 {
		return ErrMissingData
	}

	s.encKeyMtx.RLock()
	defer s.encKeyMtx.RUnlock()

	if s.encKey == nil {
		return ErrStoreLocked
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := getBucket(tx, bucketKey)
		if err != nil {
			return err
		}

		encryptedValue, err := s.encKey.Encrypt(value)
		if err != nil {
			return err
		}
		return bucket.Put(key, encryptedValue)
	})
}

// GetFromBucket retrieves data for the given key and bucket. If the bucket key
// is nil, data is retrieved from the root bucket.
func (s *boltSecureStorage) GetFromBucket(bucketKey, key []byte) ([]byte, error) {
	if err := validateDataKey(key); err != nil {
		return nil, err
	}

	s.encKeyMtx.RLock()
	defer s.encKeyMtx.RUnlock()

	if s.encKey == nil {
		return nil, ErrStoreLocked
	}

	var value []byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket, err := getBucket(tx, bucketKey)
		if err != nil {
			return err
		}

		encryptedValue := bucket.Get(key)
		if len(encryptedValue) <= 0 {
			return ErrDataNotFound
		}

		value, err = s.encKey.Decrypt(encryptedValue)
		return err
	}); err != nil {
		return nil, err
	}

	return value, nil
}

// GetAllFromBucket returns all data stored in the given bucket, nested buckets
// excluded.
func (s *boltSecureStorage) GetAllFromBucket(
	bucketKey []byte,
) (map[string][]byte, error) {
	s.encKeyMtx.RLock()
	defer s.encKeyMtx.RUnlock()

	if s.encKey == nil {
		return nil, ErrStoreLocked
	}

	res := make(map[string][]byte)
	if err := s.db.View(func(tx *bolt.Tx) error {
		bucket, err := getBucket(tx, bucketKey)
		if err != nil {
			return err
		}

		return bucket.ForEach(func(k, v []byte) error {
			if bytes.Equal(k, encryptionKeyID) || v == nil {
				return nil
			}
			value, err := s.encKey.Decrypt(v)
			if err != nil {
				return err
			}
			res[string(k)] = value
			return nil
		})
	}); err != nil {
		return nil, err
	}

	return res, nil
}

// ListBuckets returns the keys of the buckets nested into the root one.
func (s *boltSecureStorage) ListBuckets() ([][]byte, error) {
	if s.IsLocked() {
		return nil, ErrStoreLocked
	}

	var bucketKeys [][]byte
	if err := s.db.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(RootKeyBucketName)
		if root == nil {
			return ErrRootKeyBucketNotFound
		}
		bucketKeys = nestedBucketKeys(root)
		return nil
	}); err != nil {
		return nil, err
	}

	return bucketKeys, nil
}

// RemoveFromBucket removes the entry identified by the given key for the given
// bucket. If bucket key is nil, the entry is removed from the root bucket.
func (s *boltSecureStorage) RemoveFromBucket(bucketKey, key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}
	if err := validateDataKey(key); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := getBucket(tx, bucketKey)
		if err != nil {
			return err
		}
		return bucket.Delete(key)
	})
}

// RemoveBucket removes a nested bucket with all its content.
func (s *boltSecureStorage) RemoveBucket(key []byte) error {
	if s.IsLocked() {
		return ErrStoreLocked
	}
	if err := validateBucketKey(key); err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(RootKeyBucketName)
		if root == nil {
			return ErrRootKeyBucketNotFound
		}
		return root.DeleteBucket(key)
	})
}

// Close closes the underlying database and zeroes the encryption key stored
// in memory.
func (s *boltSecureStorage) Close() error {
	s.encKeyMtx.Lock()
	defer s.encKeyMtx.Unlock()

	s.lock()
	return s.db.Close()
}

// lock must be called with encKeyMtx held.
func (s *boltSecureStorage) lock() {
	if s.encKey != nil {
		s.encKey.Zero()
		s.encKey = nil
	}
}

func deriveKey(dbKey, password []byte) (*snacl.SecretKey, error) {
	encKey := &snacl.SecretKey{}
	if err := encKey.Unmarshal(dbKey); err != nil {
		return nil, err
	}
	if err := encKey.DeriveKey(&password); err != nil {
		return nil, ErrInvalidPassword
	}
	return encKey, nil
}

func getBucket(tx *bolt.Tx, bucketKey []byte) (*bolt.Bucket, error) {
	bucket := tx.Bucket(RootKeyBucketName)
	if bucket == nil {
		return nil, ErrRootKeyBucketNotFound
	}
	if len(bucketKey) > 0 {
		bucket = bucket.Bucket(bucketKey)
		if bucket == nil {
			return nil, ErrBucketNotFound
		}
	}
	return bucket, nil
}

func nestedBucketKeys(bucket *bolt.Bucket) [][]byte {
	keys := make([][]byte, 0)
	bucket.ForEach(func(k, v []byte) error {
		if v == nil {
			keys = append(keys, append([]byte{}, k...))
		}
		return nil
	})
	return keys
}

// reencryptBucket replaces every value of the bucket, nested buckets and the
// encryption key excluded. Values are collected first since bolt doesn't
// allow writes while iterating.
func reencryptBucket(bucket *bolt.Bucket, oldKey, newKey *snacl.SecretKey) error {
	values := make(map[string][]byte)
	if err := bucket.ForEach(func(k, v []byte) error {
		if bytes.Equal(k, encryptionKeyID) || v == nil {
			return nil
		}
		value, err := oldKey.Decrypt(v)
		if err != nil {
			return err
		}
		values[string(k)] = value
		return nil
	}); err != nil {
		return err
	}

	for k, v := range values {
		encryptedValue, err := newKey.Encrypt(v)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(k), encryptedValue); err != nil {
			return err
		}
	}
	return nil
}

func validateBucketKey(key []byte) error {
	if len(key) <= 0 {
		return ErrMissingBucketKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenBucketKey
	}
	return nil
}

func validateDataKey(key []byte) error {
	if len(key) <= 0 {
		return ErrMissingDataKey
	}
	if bytes.Equal(key, encryptionKeyID) {
		return ErrForbiddenDataKey
	}
	return nil
}
