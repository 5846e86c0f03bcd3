// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"crypto/rand"
	"fmt"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T, dir string) *Database {
	cfg := NewDefaultConfig()
	cfg.CacheSize = 1024 * 1024
	db, registry, err := New(dir, cfg)
	require.NoError(t, err)
	require.NotNil(t, registry)
	return db
}

func TestBatchPersists(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	db := newTestDatabase(t, dir)
	b := db.NewBatch()
	require.NoError(b.Put([]byte("a"), []byte("1")))
	require.NoError(b.Put([]byte("b"), []byte("2")))
	require.NoError(b.Delete([]byte("b")))
	require.Equal(5, b.Size())

	// buffered writes are invisible until Write
	has, err := db.Has([]byte("a"))
	require.NoError(err)
	require.False(has)

	require.NoError(b.Write())
	require.NoError(db.Close())

	db = newTestDatabase(t, dir)
	defer func() {
		require.NoError(db.Close())
	}()

	v, err := db.Get([]byte("a"))
	require.NoError(err)
	require.Equal([]byte("1"), v)

	_, err = db.Get([]byte("b"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestBatchReplayAndReset(t *testing.T) {
	require := require.New(t)

	db := newTestDatabase(t, t.TempDir())
	defer func() {
		require.NoError(db.Close())
	}()

	b := db.NewBatch()
	require.NoError(b.Put([]byte("k"), []byte("v")))
	require.NoError(b.Delete([]byte("gone")))

	mem := memdb.New()
	require.NoError(mem.Put([]byte("gone"), []byte("x")))
	require.NoError(b.Replay(mem))

	v, err := mem.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	has, err := mem.Has([]byte("gone"))
	require.NoError(err)
	require.False(has)

	b.Reset()
	require.Zero(b.Size())
	require.Equal(b, b.Inner())
}

func TestClosed(t *testing.T) {
	require := require.New(t)

	db := newTestDatabase(t, t.TempDir())
	b := db.NewBatch()
	require.NoError(b.Put([]byte("k"), []byte("v")))
	require.NoError(db.Close())

	_, err := db.Get([]byte("k"))
	require.ErrorIs(err, database.ErrClosed)
	require.ErrorIs(b.Write(), database.ErrClosed)
	require.ErrorIs(db.Close(), database.ErrClosed)
}

func randBytes() []byte {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return b
}

func BenchmarkBatchInsertion(b *testing.B) {
	const batchSize = 10_000
	for _, sync := range []bool{false, true} {
		b.Run(fmt.Sprintf("sync=%t", sync), func(b *testing.B) {
			b.StopTimer()
			cfg := NewDefaultConfig()
			cfg.Sync = sync
			db, _, err := New(b.TempDir(), cfg)
			if err != nil {
				b.Fatal(err)
			}

			keys := make([][]byte, batchSize)
			for i := 0; i < batchSize; i++ {
				keys[i] = randBytes()
			}

			b.StartTimer()
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				batch := db.NewBatch()
				for j := 0; j < batchSize; j++ {
					if err := batch.Put(keys[j], randBytes()); err != nil {
						b.Fatal(err)
					}
				}
				if err := batch.Write(); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()

			if err := db.Close(); err != nil {
				b.Fatal(err)
			}
		})
	}
}
