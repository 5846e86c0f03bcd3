// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"bytes"
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/upgradevm/keys"
	"github.com/ava-labs/upgradevm/state"
)

var (
	testVal = []byte("value")

	key1 = keys.EncodeChunks([]byte("key1"), 1)
	key2 = keys.EncodeChunks([]byte("key2"), 2)
)

func TestGetValue(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	base := state.ImmutableStorage{string(key1): testVal}
	ts := New(base, 10)

	val, err := ts.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)

	_, err = ts.GetValue(ctx, key2)
	require.ErrorIs(err, database.ErrNotFound)
	require.Zero(ts.PendingChanges())
}

func TestInsertShadowsBase(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	base := state.MutableStorage{string(key1): testVal}
	ts := New(base, 10)

	require.NoError(ts.Insert(ctx, key1, []byte("new")))
	val, err := ts.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal([]byte("new"), val)

	// base is not touched until WriteTo
	val, err = base.GetValue(ctx, key1)
	require.NoError(err)
	require.Equal(testVal, val)
	require.Equal(1, ts.PendingChanges())
}

func TestRemove(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	ts := New(state.ImmutableStorage{string(key1): testVal}, 10)
	require.NoError(ts.Remove(ctx, key1))
	_, err := ts.GetValue(ctx, key1)
	require.ErrorIs(err, database.ErrNotFound)

	require.ErrorIs(ts.Remove(ctx, []byte{0x1}), ErrInvalidKeyValue)
}

func TestInsertInvalid(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	ts := New(state.ImmutableStorage{}, 10)
	require.ErrorIs(ts.Insert(ctx, key1, bytes.Repeat([]byte{0x1}, 65)), ErrInvalidKeyValue)
	require.ErrorIs(ts.Insert(ctx, []byte{0x1}, testVal), ErrInvalidKeyValue)
	require.Zero(ts.PendingChanges())
}

func TestWriteTo(t *testing.T) {
	require := require.New(t)
	ctx := context.TODO()

	db := memdb.New()
	require.NoError(db.Put(key1, testVal))

	ts := New(state.FromDatabase(db), 10)
	require.NoError(ts.Remove(ctx, key1))
	require.NoError(ts.Insert(ctx, key2, []byte("two")))

	batch := db.NewBatch()
	require.NoError(ts.WriteTo(batch))

	// nothing visible before the batch is written
	has, err := db.Has(key1)
	require.NoError(err)
	require.True(has)

	require.NoError(batch.Write())
	has, err = db.Has(key1)
	require.NoError(err)
	require.False(has)
	val, err := db.Get(key2)
	require.NoError(err)
	require.Equal([]byte("two"), val)
}
