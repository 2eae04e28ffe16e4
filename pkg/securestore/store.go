package securestore

// SecureStorage interface defines the methods for a key/value DB that secures
// its content by encrypting the values of the pairs.
type SecureStorage interface {
	// Lock locks the DB once unlocked.
	Lock()
	// Close closes the connection to the DB.
	Close() (err error)
	// IsLocked returns whether the DB is (un)locked.
	IsLocked() (locked bool)
	// CreateUnlock creates or unlocks the DB with a password.
	CreateUnlock(password []byte) (err error)
	// ChangePassword re-encrypts the whole DB with the new password.
	ChangePassword(oldPw, newPw []byte) (err error)
	// CreateBucket creates a nested bucket if not existing yet.
	CreateBucket(key []byte) (err error)
	// AddToBucket adds the key/value entry to some bucket. A nil bucket key
	// refers to the root bucket.
	AddToBucket(bucketKey, key, value []byte) (err error)
	// GetFromBucket retrieves a key/value entry from some bucket.
	GetFromBucket(bucketKey, key []byte) (value []byte, err error)
	// GetAllFromBucket retrieves all key/value pairs contained by a bucket.
	GetAllFromBucket(bucketKey []byte) (valuesByKey map[string][]byte, err error)
	// ListBuckets returns the list of all nested buckets.
	ListBuckets() (bucketKeys [][]byte, err error)
	// RemoveFromBucket removes a key/value pair from a bucket. Removing a
	// missing key is not an error.
	RemoveFromBucket(bucketKey, key []byte) (err error)
	// RemoveBucket removes a nested bucket.
	RemoveBucket(bucketKey []byte) (err error)
}
