package tagstore

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/nspcc-dev/nbt-go/pkg/compress"
	"github.com/nspcc-dev/nbt-go/pkg/nbt"
	"github.com/nspcc-dev/nbt-go/pkg/storage"
	"github.com/nspcc-dev/nbt-go/pkg/storage/dbconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testTree(hp int32) *nbt.Compound {
	return nbt.NewCompoundBuilder().
		PutInt("hp", hp).
		PutString("name", "Steve").
		PutByteArray("inv", []byte{1, 2, 3}).
		Build("")
}

func backends(t *testing.T) map[string]storage.Store {
	dir := t.TempDir()
	bolt, err := storage.NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: filepath.Join(dir, "bolt.db")})
	require.NoError(t, err)
	level, err := storage.NewLevelDBStore(dbconfig.LevelDBOptions{DataDirectoryPath: filepath.Join(dir, "level")})
	require.NoError(t, err)
	return map[string]storage.Store{
		"memory":  storage.NewMemoryStore(),
		"boltdb":  bolt,
		"leveldb": level,
	}
}

func TestStoreBackends(t *testing.T) {
	for name, backend := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s, err := New(backend, Config{Compression: compress.Gzip}, zaptest.NewLogger(t))
			require.NoError(t, err)
			defer func() { require.NoError(t, s.Close()) }()

			_, err = s.Get("player")
			require.ErrorIs(t, err, storage.ErrKeyNotFound)

			require.NoError(t, s.Put("player", testTree(20)))
			c, err := s.Get("player")
			require.NoError(t, err)
			require.True(t, nbt.Equals(testTree(20), c))

			require.NoError(t, s.Put("player", testTree(10)))
			c, err = s.Get("player")
			require.NoError(t, err)
			require.Equal(t, int32(10), c.GetInt("hp"))

			require.NoError(t, s.Put("players/alex", testTree(1)))
			require.NoError(t, s.Put("players/steve", testTree(2)))
			require.NoError(t, s.Put("world", testTree(3)))
			require.Equal(t, []string{"player", "players/alex", "players/steve", "world"}, s.Keys(""))
			require.Equal(t, []string{"players/alex", "players/steve"}, s.Keys("players/"))
			require.Empty(t, s.Keys("nope"))

			require.NoError(t, s.Delete("player"))
			_, err = s.Get("player")
			require.ErrorIs(t, err, storage.ErrKeyNotFound)
			require.NoError(t, s.Delete("player"))
		})
	}
}

func TestStoreNoCache(t *testing.T) {
	backend := storage.NewMemoryStore()
	s, err := New(backend, Config{CacheSize: -1, Compression: compress.Zlib}, nil)
	require.NoError(t, err)

	require.NoError(t, s.Put("a", testTree(5)))
	c1, err := s.Get("a")
	require.NoError(t, err)
	c2, err := s.Get("a")
	require.NoError(t, err)
	require.NotSame(t, c1, c2)
	require.True(t, nbt.Equals(c1, c2))
}

func TestStoreCacheShared(t *testing.T) {
	s, err := New(storage.NewMemoryStore(), Config{}, nil)
	require.NoError(t, err)

	tree := testTree(5)
	require.NoError(t, s.Put("a", tree))
	c, err := s.Get("a")
	require.NoError(t, err)
	require.Same(t, tree, c)
}

func TestStoreCompressionChange(t *testing.T) {
	backend := storage.NewMemoryStore()
	s, err := New(backend, Config{Compression: compress.LZ4, CacheSize: -1}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("a", testTree(1)))

	raw, err := backend.Get([]byte{keyPrefix, 'a'})
	require.NoError(t, err)
	require.Equal(t, compress.LZ4, compress.Detect(raw))

	// Same backend, other compression: old values are still readable.
	s, err = New(backend, Config{Compression: compress.None, CacheSize: -1}, nil)
	require.NoError(t, err)
	c, err := s.Get("a")
	require.NoError(t, err)
	require.Equal(t, int32(1), c.GetInt("hp"))
}

func TestStoreCorrupted(t *testing.T) {
	backend := storage.NewMemoryStore()
	s, err := New(backend, Config{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, backend.Put([]byte{keyPrefix, 'x'}, []byte{0x0a, 0x00}))
	_, err = s.Get("x")
	var fe *nbt.FormatError
	require.ErrorAs(t, err, &fe)

	data, err := nbt.Encode(nbt.NewInt("", 1))
	require.NoError(t, err)
	require.NoError(t, backend.Put([]byte{keyPrefix, 'i'}, data))
	_, err = s.Get("i")
	require.ErrorIs(t, err, nbt.ErrNotCompound)
}

func TestStorePutMany(t *testing.T) {
	s, err := New(storage.NewMemoryStore(), Config{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put("old", testTree(0)))

	require.NoError(t, s.PutMany(map[string]*nbt.Compound{
		"a":   testTree(1),
		"b":   testTree(2),
		"old": nil,
	}))
	require.Equal(t, []string{"a", "b"}, s.Keys(""))
	_, err = s.Get("old")
	require.ErrorIs(t, err, storage.ErrKeyNotFound)

	require.ErrorIs(t, s.PutMany(map[string]*nbt.Compound{"": testTree(1)}), storage.ErrEmptyKey)
}

func TestStoreErrors(t *testing.T) {
	_, err := New(nil, Config{}, nil)
	require.Error(t, err)

	s, err := New(storage.NewMemoryStore(), Config{Compression: compress.Type(42)}, nil)
	require.NoError(t, err)
	require.ErrorIs(t, s.Put("", testTree(1)), storage.ErrEmptyKey)
	require.ErrorIs(t, s.Put("a", nil), nbt.ErrNilTag)
	require.ErrorIs(t, s.Put("a", testTree(1)), compress.ErrUnknownType)
}

func TestStoreConcurrent(t *testing.T) {
	s, err := New(storage.NewMemoryStore(), Config{CacheSize: 4}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := string(rune('a' + i))
			for j := range 50 {
				assert.NoError(t, s.Put(name, testTree(int32(j))))
				c, err := s.Get(name)
				if assert.NoError(t, err) {
					assert.Equal(t, int32(j), c.GetInt("hp"))
				}
			}
		}()
	}
	wg.Wait()
	require.Len(t, s.Keys(""), 8)
}
