// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
	"github.com/ava-labs/upgradevm/contract"
	"github.com/ava-labs/upgradevm/crypto"
	"github.com/ava-labs/upgradevm/crypto/ed25519"
	"github.com/ava-labs/upgradevm/state"
	"github.com/ava-labs/upgradevm/storage"
)

func newFactory(t *testing.T) *ED25519Factory {
	priv, err := ed25519.GeneratePrivateKey()
	require.NoError(t, err)
	return NewED25519Factory(priv)
}

func TestED25519SignVerify(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	factory := newFactory(t)
	instance := ids.GenerateTestID()

	code := ids.GenerateTestID()
	msg, err := Digest(instance, 0, "upgrade", code[:])
	require.NoError(err)

	cred := factory.Sign(msg)
	require.NoError(cred.Verify(ctx, msg))
	require.Equal(factory.Address(), cred.Actor())
	require.Equal(ED25519ID, cred.Actor()[0])

	otherCode := ids.GenerateTestID()
	other, err := Digest(instance, 0, "upgrade", otherCode[:])
	require.NoError(err)
	require.ErrorIs(cred.Verify(ctx, other), crypto.ErrInvalidSignature)
}

func TestDigestBindsCallFields(t *testing.T) {
	require := require.New(t)

	instance := ids.GenerateTestID()
	args := []byte{0x1, 0x2}
	upgrade, err := Digest(instance, 0, "upgrade", args)
	require.NoError(err)

	initDigest, err := Digest(instance, 0, "init", args)
	require.NoError(err)
	require.NotEqual(upgrade, initDigest)

	otherInstance, err := Digest(ids.GenerateTestID(), 0, "upgrade", args)
	require.NoError(err)
	require.NotEqual(upgrade, otherInstance)

	nextNonce, err := Digest(instance, 1, "upgrade", args)
	require.NoError(err)
	require.NotEqual(upgrade, nextNonce)
}

func TestED25519Bytes(t *testing.T) {
	require := require.New(t)
	factory := newFactory(t)

	cred := factory.Sign([]byte("msg"))
	parsed, err := UnmarshalED25519(cred.Bytes())
	require.NoError(err)
	require.Equal(cred.Signer, parsed.Signer)
	require.Equal(cred.Signature, parsed.Signature)
	require.Equal(cred.Actor(), parsed.Actor())

	_, err = UnmarshalED25519(cred.Bytes()[1:])
	require.ErrorIs(err, ErrInvalidAuthSize)

	b := cred.Bytes()
	b[0] = 7
	_, err = UnmarshalED25519(b)
	require.ErrorIs(err, ErrInvalidKeyType)
}

func TestOracle(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	factory := newFactory(t)
	admin := factory.Address()
	other := codec.CreateAddress(ED25519ID, ids.GenerateTestID())

	msg, err := Digest(ids.GenerateTestID(), 0, "upgrade", nil)
	require.NoError(err)
	cred := factory.Sign(msg)

	// wrong principal leaves the nonce alone
	require.ErrorIs(NewOracle(mu, cred, msg, 0).RequireAuth(ctx, other), contract.ErrUnauthorized)
	nonce, err := storage.GetNonce(ctx, mu, admin)
	require.NoError(err)
	require.Zero(nonce)

	require.NoError(NewOracle(mu, cred, msg, 0).RequireAuth(ctx, admin))
	nonce, err = storage.GetNonce(ctx, mu, admin)
	require.NoError(err)
	require.Equal(uint64(1), nonce)

	// the same credential cannot be used twice
	err = NewOracle(mu, cred, msg, 0).RequireAuth(ctx, admin)
	require.ErrorIs(err, contract.ErrUnauthorized)
	require.ErrorIs(err, ErrInvalidNonce)

	next, err := Digest(ids.GenerateTestID(), 1, "upgrade", nil)
	require.NoError(err)
	err = NewOracle(mu, cred, next, 1).RequireAuth(ctx, admin)
	require.ErrorIs(err, contract.ErrUnauthorized)
	require.ErrorIs(err, crypto.ErrInvalidSignature)

	err = Anonymous().RequireAuth(ctx, admin)
	require.ErrorIs(err, contract.ErrUnauthorized)
	require.ErrorIs(err, ErrMissingSignature)

	// anonymous callers cannot pass for the empty address either
	require.ErrorIs(Anonymous().RequireAuth(ctx, codec.EmptyAddress), contract.ErrUnauthorized)

	require.NoError(AllowAll{}.RequireAuth(ctx, other))
}

func TestOracleNonceExhausted(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.MutableStorage{}

	factory := newFactory(t)
	require.NoError(storage.SetNonce(ctx, mu, factory.Address(), consts.MaxUint64))

	msg, err := Digest(ids.GenerateTestID(), consts.MaxUint64, "upgrade", nil)
	require.NoError(err)
	err = NewOracle(mu, factory.Sign(msg), msg, consts.MaxUint64).RequireAuth(ctx, factory.Address())
	require.ErrorIs(err, ErrInvalidNonce)
}
