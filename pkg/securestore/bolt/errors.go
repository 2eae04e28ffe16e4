package boltsecurestore

import (
	"errors"

	bolt "go.etcd.io/bbolt"
)

var (
	// ErrStoreLocked specifies that the store must be unlocked to perform the
	// requested operation.
	ErrStoreLocked = errors.New("store is locked")

	// ErrPasswordRequired specifies that a password is required to create/unlock
	// the store.
	ErrPasswordRequired = errors.New("password must not be null")
	// ErrInvalidPassword is returned when trying to unlock the store with an
	// incorrect password.
	ErrInvalidPassword = errors.New("password is not valid")

	// ErrRootKeyBucketNotFound can happen only if the store has been corrupted.
	ErrRootKeyBucketNotFound = errors.New("root key bucket not found")
	// ErrEncKeyNotFound specifies that there was no encryption key found
	// even if one was expected to be generated.
	ErrEncKeyNotFound = errors.New("store encryption key not found")

	// ErrBucketNotFound specifies that there is no such bucket to
	// read/add data from/to.
	ErrBucketNotFound = bolt.ErrBucketNotFound
	// ErrMissingBucketKey ...
	ErrMissingBucketKey = errors.New("missing bucket key")
	// ErrForbiddenBucketKey is used when the bucket key uses encryptionKeyID as
	// its value.
	ErrForbiddenBucketKey = errors.New("bucket key is not allowed")

	// ErrDataNotFound specifies that no data has been found for a given key.
	ErrDataNotFound = errors.New("data not found")
	// ErrMissingDataKey ...
	ErrMissingDataKey = errors.New("missing data key")
	// ErrForbiddenDataKey is used when the data key used encryptionKeyID as its
	// value.
	ErrForbiddenDataKey = errors.New("data key is not allowed")
	// ErrMissingData specifies that the data value is required to perform a
	// write operation.
	ErrMissingData = errors.New("missing data to add")
)
