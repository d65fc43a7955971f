package storage

import (
	"bytes"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/nspcc-dev/nbt-go/pkg/storage/dbconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dbSetup struct {
	name   string
	create func(testing.TB) Store
}

type dbTestFunction func(*testing.T, Store)

func newMemoryStoreForTesting(t testing.TB) Store {
	return NewMemoryStore()
}

func newBoltStoreForTesting(t testing.TB) Store {
	d := t.TempDir()
	testFileName := filepath.Join(d, "test_bolt_db")
	boltDBStore, err := NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: testFileName})
	require.NoError(t, err)
	return boltDBStore
}

func newLevelDBForTesting(t testing.TB) Store {
	ldbDir := t.TempDir()
	newLevelStore, err := NewLevelDBStore(dbconfig.LevelDBOptions{DataDirectoryPath: ldbDir})
	require.Nil(t, err, "NewLevelDBStore error")
	return newLevelStore
}

func testStoreGetNonExistent(t *testing.T, s Store) {
	key := []byte("sparse")

	_, err := s.Get(key)
	assert.Equal(t, err, ErrKeyNotFound)
}

func testStorePutGetDelete(t *testing.T, s Store) {
	var (
		key   = []byte("sparse")
		value = []byte("rocks")
	)
	require.NoError(t, s.Put(key, value))

	newVal, err := s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, newVal)

	require.NoError(t, s.Put(key, []byte("rolls")))
	newVal, err = s.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("rolls"), newVal)

	require.NoError(t, s.Delete(key))
	_, err = s.Get(key)
	require.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting missing key is fine.
	require.NoError(t, s.Delete(key))

	require.ErrorIs(t, s.Put(nil, value), ErrEmptyKey)
}

func testStoreValueIsCopied(t *testing.T, s Store) {
	value := []byte("value")
	require.NoError(t, s.Put([]byte("k"), value))
	value[0] = 'V'

	got, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("value"), got)
}

func testStorePutChangeSet(t *testing.T, s Store) {
	require.NoError(t, s.Put([]byte("old"), []byte("x")))
	require.NoError(t, s.PutChangeSet(map[string][]byte{
		"a":   []byte("1"),
		"b":   []byte("2"),
		"old": nil,
	}))
	for k, v := range map[string]string{"a": "1", "b": "2"} {
		got, err := s.Get([]byte(k))
		require.NoError(t, err)
		require.Equal(t, []byte(v), got)
	}
	_, err := s.Get([]byte("old"))
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.ErrorIs(t, s.PutChangeSet(map[string][]byte{"": []byte("1")}), ErrEmptyKey)
}

func pushSeekDataSet(t *testing.T, s Store) []KeyValue {
	// Use the same set of kvs to test Seek with different prefix/start values.
	kvs := []KeyValue{
		{[]byte("10"), []byte("bar")},
		{[]byte("11"), []byte("bara")},
		{[]byte("20"), []byte("barb")},
		{[]byte("21"), []byte("barc")},
		{[]byte("22"), []byte("bard")},
		{[]byte("30"), []byte("bare")},
		{[]byte("31"), []byte("barf")},
	}
	puts := make(map[string][]byte, len(kvs))
	for _, v := range kvs {
		puts[string(v.Key)] = v.Value
	}
	require.NoError(t, s.PutChangeSet(puts))
	return kvs
}

func testStoreSeek(t *testing.T, s Store) {
	kvs := pushSeekDataSet(t, s)
	check := func(t *testing.T, rng SeekRange, goodkvs []KeyValue, cont func(k, v []byte) bool) {
		actual := make([]KeyValue, 0, len(goodkvs))
		s.Seek(rng, func(k, v []byte) bool {
			actual = append(actual, KeyValue{
				Key:   bytes.Clone(k),
				Value: bytes.Clone(v),
			})
			if cont == nil {
				return true
			}
			return cont(k, v)
		})
		assert.Equal(t, goodkvs, actual)
	}

	t.Run("prefix", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2")}, []KeyValue{kvs[2], kvs[3], kvs[4]}, nil)
	})
	t.Run("no matching items", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("0")}, []KeyValue{}, nil)
	})
	t.Run("early stop", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2")}, []KeyValue{kvs[2], kvs[3]}, func(k, v []byte) bool {
			return string(k) < "21"
		})
	})
	t.Run("backwards", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2"), Backwards: true}, []KeyValue{kvs[4], kvs[3], kvs[2]}, nil)
	})
	t.Run("backwards last prefix", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("3"), Backwards: true}, []KeyValue{kvs[6], kvs[5]}, nil)
	})
	t.Run("start", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2"), Start: []byte("1")}, []KeyValue{kvs[3], kvs[4]}, nil)
	})
	t.Run("backwards with start", func(t *testing.T) {
		check(t, SeekRange{Prefix: []byte("2"), Start: []byte("1"), Backwards: true}, []KeyValue{kvs[3], kvs[2]}, nil)
	})
	t.Run("everything", func(t *testing.T) {
		check(t, SeekRange{}, kvs, nil)
	})
	t.Run("everything backwards", func(t *testing.T) {
		rev := make([]KeyValue, 0, len(kvs))
		for i := len(kvs) - 1; i >= 0; i-- {
			rev = append(rev, kvs[i])
		}
		check(t, SeekRange{Backwards: true}, rev, nil)
	})
}

func TestAllDBs(t *testing.T) {
	var DBs = []dbSetup{
		{"BoltDB", newBoltStoreForTesting},
		{"LevelDB", newLevelDBForTesting},
		{"Memory", newMemoryStoreForTesting},
	}
	var tests = []dbTestFunction{testStoreGetNonExistent, testStorePutGetDelete,
		testStoreValueIsCopied, testStorePutChangeSet, testStoreSeek}
	for _, db := range DBs {
		for _, test := range tests {
			s := db.create(t)
			twrapper := func(t *testing.T) {
				test(t, s)
			}
			fname := runtime.FuncForPC(reflect.ValueOf(test).Pointer()).Name()
			t.Run(db.name+"/"+fname, twrapper)
			require.NoError(t, s.Close())
		}
	}
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	testCases := []dbconfig.DBConfiguration{
		{Type: dbconfig.InMemoryDB},
		{},
		{Type: dbconfig.BoltDB, BoltDBOptions: dbconfig.BoltDBOptions{FilePath: filepath.Join(dir, "bolt", "db")}},
		{Type: dbconfig.LevelDB, LevelDBOptions: dbconfig.LevelDBOptions{DataDirectoryPath: filepath.Join(dir, "level")}},
	}
	for _, cfg := range testCases {
		s, err := NewStore(cfg)
		require.NoError(t, err, cfg.Type)
		require.NoError(t, s.Put([]byte("k"), []byte("v")))
		require.NoError(t, s.Close())
	}

	_, err := NewStore(dbconfig.DBConfiguration{Type: "redis"})
	require.Error(t, err)
}

func TestReadOnlyStores(t *testing.T) {
	dir := t.TempDir()

	_, err := NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: filepath.Join(dir, "missing"), ReadOnly: true})
	require.Error(t, err)
	_, err = NewLevelDBStore(dbconfig.LevelDBOptions{DataDirectoryPath: filepath.Join(dir, "missing"), ReadOnly: true})
	require.Error(t, err)

	boltPath := filepath.Join(dir, "bolt")
	s, err := NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: boltPath})
	require.NoError(t, err)
	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	require.NoError(t, s.Close())

	s, err = NewBoltDBStore(dbconfig.BoltDBOptions{FilePath: boltPath, ReadOnly: true})
	require.NoError(t, err)
	v, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
	require.NoError(t, s.Close())
}
