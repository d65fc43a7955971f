/*
Package tagstore implements a persistent store of named NBT compounds on top
of storage.Store. Trees are kept encoded (and optionally compressed) in the
backend, recently used ones are also cached decoded. Trees are immutable, so
cached values are shared between callers without copying.
*/
package tagstore

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/nspcc-dev/nbt-go/pkg/storage"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of decoded trees cached by default.
const DefaultCacheSize = 256

// keyPrefix is added to every key stored in the backend.
const keyPrefix byte = 0x01

// Config contains Store parameters.
type Config struct {
	// CacheSize is the number of decoded trees kept in memory, zero means
	// DefaultCacheSize, negative values disable caching.
	CacheSize int
	// Compression is applied to newly stored values. Reading detects the
	// wrapper automatically, so it can be changed for existing DB.
	Compression compress.Type
	// Limits are used when decoding stored values.
	Limits nbt.Limits
}

// Store is a named compound store. It's safe for concurrent use.
type Store struct {
	store storage.Store
	cfg   Config
	log   *zap.Logger

	// Lock serializing cache updates with backend writes.
	lock  sync.RWMutex
	cache *lru.Cache
}

// New creates a Store over the given backend. The Store owns the backend
// after this call and closes it in Close. nil logger means no logging.
func New(s storage.Store, cfg Config, log *zap.Logger) (*Store, error) {
	if s == nil {
		return nil, errors.New("nil backend")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	ts := &Store{
		store: s,
		cfg:   cfg,
		log:   log,
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create cache: %w", err)
		}
		ts.cache = c
	}
	return ts, nil
}

func makeKey(name string) []byte {
	k := make([]byte, 1+len(name))
	k[0] = keyPrefix
	copy(k[1:], name)
	return k
}

func (s *Store) encode(c *nbt.Compound) ([]byte, error) {
	data, err := nbt.Encode(c)
	if err != nil {
		return nil, err
	}
	return compress.Compress(data, s.cfg.Compression)
}

func (s *Store) decode(data []byte) (*nbt.Compound, error) {
	raw, _, err := compress.DecompressAuto(data)
	if err != nil {
		return nil, err
	}
	t, err := nbt.Read(bytes.NewReader(raw), s.cfg.Limits)
	if err != nil {
		return nil, err
	}
	c, ok := t.(*nbt.Compound)
	if !ok {
		return nil, fmt.Errorf("%w: %s", nbt.ErrNotCompound, t.Type())
	}
	return c, nil
}

// Put stores c under the given name replacing the previous tree if any.
func (s *Store) Put(name string, c *nbt.Compound) error {
	if name == "" {
		return storage.ErrEmptyKey
	}
	if c == nil {
		return nbt.ErrNilTag
	}
	v, err := s.encode(c)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", name, err)
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.store.Put(makeKey(name), v); err != nil {
		return fmt.Errorf("failed to store %q: %w", name, err)
	}
	s.cacheAdd(name, c)
	s.log.Debug("tree stored", zap.String("name", name), zap.Int("size", len(v)))
	return nil
}

// PutMany atomically stores a set of trees, nil values delete the
// corresponding names.
func (s *Store) PutMany(trees map[string]*nbt.Compound) error {
	puts := make(map[string][]byte, len(trees))
	for name, c := range trees {
		if name == "" {
			return storage.ErrEmptyKey
		}
		if c == nil {
			puts[string(makeKey(name))] = nil
			continue
		}
		v, err := s.encode(c)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", name, err)
		}
		puts[string(makeKey(name))] = v
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.store.PutChangeSet(puts); err != nil {
		return fmt.Errorf("failed to store %d trees: %w", len(puts), err)
	}
	for name, c := range trees {
		if c == nil {
			s.cacheRemove(name)
		} else {
			s.cacheAdd(name, c)
		}
	}
	s.log.Debug("trees stored", zap.Int("count", len(puts)))
	return nil
}

// Get returns the tree stored under the given name. storage.ErrKeyNotFound is
// returned for missing names.
func (s *Store) Get(name string) (*nbt.Compound, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.cache != nil {
		if v, ok := s.cache.Get(name); ok {
			return v.(*nbt.Compound), nil
		}
	}
	data, err := s.store.Get(makeKey(name))
	if err != nil {
		return nil, err
	}
	c, err := s.decode(data)
	if err != nil {
		s.log.Warn("stored tree is corrupted", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to decode %q: %w", name, err)
	}
	s.cacheAdd(name, c)
	return c, nil
}

// Delete removes the tree, missing names are not an error.
func (s *Store) Delete(name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if err := s.store.Delete(makeKey(name)); err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	s.cacheRemove(name)
	s.log.Debug("tree deleted", zap.String("name", name))
	return nil
}

// Keys returns sorted names starting with the given prefix.
func (s *Store) Keys(prefix string) []string {
	var res []string
	s.store.Seek(storage.SeekRange{Prefix: makeKey(prefix)}, func(k, _ []byte) bool {
		res = append(res, string(k[1:]))
		return true
	})
	return res
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.cache != nil {
		s.cache.Purge()
	}
	return s.store.Close()
}

func (s *Store) cacheAdd(name string, c *nbt.Compound) {
	if s.cache != nil {
		s.cache.Add(name, c)
	}
}

func (s *Store) cacheRemove(name string) {
	if s.cache != nil {
		s.cache.Remove(name)
	}
}
