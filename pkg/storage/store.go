package storage

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/nbt-go/pkg/storage/dbconfig"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// SeekRange represents options for Store.Seek operation.
type SeekRange struct {
	// Prefix denotes the Seek's lookup key.
	// Empty Prefix means seeking through all keys in the DB.
	Prefix []byte
	// Start denotes value appended to the Prefix to start Seek from.
	// Seeking starting from some key includes this key to the result;
	// if no matching key was found then next suitable key is picked up.
	// Start may be empty.
	Start []byte
	// Backwards denotes whether Seek direction should be reversed, i.e.
	// whether seeking should be performed in a descending way.
	// Backwards can be safely combined with Prefix and Start.
	Backwards bool
}

// KeyValue represents key-value pair.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// ErrKeyNotFound is an error returned by Store implementations
// when a certain key is not found.
var ErrKeyNotFound = errors.New("key not found")

// ErrEmptyKey is returned on attempt to store a value with an empty key.
var ErrEmptyKey = errors.New("empty key")

// Store is the underlying KV backend for stored tag trees. Implementations
// are safe for concurrent use.
type Store interface {
	Get([]byte) ([]byte, error)
	Put(k, v []byte) error
	// Delete removes the key, missing keys are not an error.
	Delete(k []byte) error
	// PutChangeSet atomically applies a set of changes, nil values mean
	// deletion.
	PutChangeSet(puts map[string][]byte) error
	// Seek guarantees that provided key (k) and value (v) are the only valid
	// until the next call to f. Seek continues iteration until false is
	// returned from f. Key and value slices should not be modified.
	// Key-value items are sorted by key in ascending (or descending for
	// backwards seeking) way.
	Seek(rng SeekRange, f func(k, v []byte) bool)
	Close() error
}

func seekRangeToPrefixes(sr SeekRange) *util.Range {
	var (
		rang  *util.Range
		start = make([]byte, len(sr.Prefix)+len(sr.Start))
	)
	copy(start, sr.Prefix)
	copy(start[len(sr.Prefix):], sr.Start)

	if !sr.Backwards {
		rang = util.BytesPrefix(sr.Prefix)
		rang.Start = start
	} else {
		rang = util.BytesPrefix(start)
		rang.Start = sr.Prefix
	}
	return rang
}

// NewStore creates storage with preselected in configuration database type.
func NewStore(cfg dbconfig.DBConfiguration) (Store, error) {
	var store Store
	var err error
	switch cfg.Type {
	case dbconfig.LevelDB:
		store, err = NewLevelDBStore(cfg.LevelDBOptions)
	case dbconfig.InMemoryDB, "":
		store = NewMemoryStore()
	case dbconfig.BoltDB:
		store, err = NewBoltDBStore(cfg.BoltDBOptions)
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Type)
	}
	return store, err
}
