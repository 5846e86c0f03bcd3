// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
	"github.com/ava-labs/upgradevm/state"
)

func TestKeysAreDistinct(t *testing.T) {
	require := require.New(t)

	require.False(bytes.Equal(AdminKey(), CounterKey()))
	require.False(bytes.HasPrefix(InstalledCodeKey(), []byte{contractPrefix}))
	require.True(bytes.HasPrefix(AdminKey(), []byte{contractPrefix, byte(Admin)}))
	require.True(bytes.HasPrefix(CounterKey(), []byte{contractPrefix, byte(Counter)}))

	_, err := Key(StorageKey(2))
	require.ErrorIs(err, ErrUnknownKey)
}

func TestAdmin(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	has, err := HasAdmin(ctx, mu)
	require.NoError(err)
	require.False(has)

	_, ok, err := GetAdmin(ctx, mu)
	require.NoError(err)
	require.False(ok)

	admin := codec.CreateAddress(0, ids.GenerateTestID())
	require.NoError(SetAdmin(ctx, mu, admin))

	has, err = HasAdmin(ctx, mu)
	require.NoError(err)
	require.True(has)

	got, ok, err := GetAdmin(ctx, mu)
	require.NoError(err)
	require.True(ok)
	require.Equal(admin, got)

	require.NoError(mu.Insert(ctx, AdminKey(), []byte{0x1}))
	_, _, err = GetAdmin(ctx, mu)
	require.ErrorIs(err, ErrInvalidAdmin)
}

func TestCounter(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	count, err := GetCounter(ctx, mu)
	require.NoError(err)
	require.Zero(count)

	require.NoError(SetCounter(ctx, mu, consts.MaxUint32))
	count, err = GetCounter(ctx, mu)
	require.NoError(err)
	require.Equal(consts.MaxUint32, count)

	require.NoError(mu.Insert(ctx, CounterKey(), []byte{0x1}))
	_, err = GetCounter(ctx, mu)
	require.ErrorIs(err, ErrInvalidCounter)
}

func TestInstalledCode(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, ok, err := GetInstalledCode(ctx, mu)
	require.NoError(err)
	require.False(ok)

	ref := ids.GenerateTestID()
	require.NoError(SetInstalledCode(ctx, mu, ref))
	got, ok, err := GetInstalledCode(ctx, mu)
	require.NoError(err)
	require.True(ok)
	require.Equal(ref, got)

	// host data never lands on contract keys
	has, err := HasAdmin(ctx, mu)
	require.NoError(err)
	require.False(has)

	require.NoError(mu.Insert(ctx, InstalledCodeKey(), []byte{0x1}))
	_, _, err = GetInstalledCode(ctx, mu)
	require.True(errors.Is(err, ErrInvalidCode))
}

func TestInstanceID(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	_, ok, err := GetInstanceID(ctx, mu)
	require.NoError(err)
	require.False(ok)

	id := ids.GenerateTestID()
	require.NoError(SetInstanceID(ctx, mu, id))
	got, ok, err := GetInstanceID(ctx, mu)
	require.NoError(err)
	require.True(ok)
	require.Equal(id, got)
	require.False(bytes.Equal(InstanceIDKey(), InstalledCodeKey()))

	require.NoError(mu.Insert(ctx, InstanceIDKey(), []byte{0x1}))
	_, _, err = GetInstanceID(ctx, mu)
	require.ErrorIs(err, ErrInvalidInstanceID)
}

func TestNonce(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	alice := codec.CreateAddress(0, ids.GenerateTestID())
	bob := codec.CreateAddress(0, ids.GenerateTestID())
	require.True(bytes.HasPrefix(NonceKey(alice), []byte{hostPrefix, nonceSuffix}))
	require.False(bytes.Equal(NonceKey(alice), NonceKey(bob)))

	nonce, err := GetNonce(ctx, mu, alice)
	require.NoError(err)
	require.Zero(nonce)

	require.NoError(SetNonce(ctx, mu, alice, 7))
	nonce, err = GetNonce(ctx, mu, alice)
	require.NoError(err)
	require.Equal(uint64(7), nonce)

	nonce, err = GetNonce(ctx, mu, bob)
	require.NoError(err)
	require.Zero(nonce)

	require.NoError(mu.Insert(ctx, NonceKey(alice), []byte{0x1}))
	_, err = GetNonce(ctx, mu, alice)
	require.ErrorIs(err, ErrInvalidNonce)
}
