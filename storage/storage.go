// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
	"github.com/ava-labs/upgradevm/keys"
	"github.com/ava-labs/upgradevm/state"
)

// State
// 0x0/ (contract)
//   -> 0x0 => admin
//   -> 0x1 => counter
// 0x1/ (host)
//   -> 0x0 => installed code reference
//   -> 0x1 => instance id
//   -> 0x2 + [address] => nonce

const (
	contractPrefix byte = 0x0
	hostPrefix     byte = 0x1

	installedCodeSuffix byte = 0x0
	instanceIDSuffix    byte = 0x1
	nonceSuffix         byte = 0x2
)

// StorageKey enumerates every value the contract persists.
type StorageKey uint8

const (
	Admin StorageKey = iota
	Counter
)

func (k StorageKey) String() string {
	switch k {
	case Admin:
		return "admin"
	case Counter:
		return "counter"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// maxSize is the largest value stored under [k].
func (k StorageKey) maxSize() (int, bool) {
	switch k {
	case Admin:
		return codec.AddressLen, true
	case Counter:
		return consts.Uint32Len, true
	default:
		return 0, false
	}
}

var (
	adminKey   = mustKey(Admin)
	counterKey = mustKey(Counter)

	installedCodeKey, _ = keys.Encode([]byte{hostPrefix, installedCodeSuffix}, consts.IDLen)
	instanceIDKey, _    = keys.Encode([]byte{hostPrefix, instanceIDSuffix}, consts.IDLen)
)

// Key returns the database key for [k]. Only the variants declared above are
// valid.
func Key(k StorageKey) ([]byte, error) {
	maxSize, ok := k.maxSize()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	key, ok := keys.Encode([]byte{contractPrefix, byte(k)}, maxSize)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, k)
	}
	return key, nil
}

func mustKey(k StorageKey) []byte {
	key, err := Key(k)
	if err != nil {
		panic(err)
	}
	return key
}

// [contractPrefix] + [Admin]
func AdminKey() []byte {
	return adminKey
}

// [contractPrefix] + [Counter]
func CounterKey() []byte {
	return counterKey
}

// [hostPrefix] + [installedCodeSuffix]
func InstalledCodeKey() []byte {
	return installedCodeKey
}

// [hostPrefix] + [instanceIDSuffix]
func InstanceIDKey() []byte {
	return instanceIDKey
}

// [hostPrefix] + [nonceSuffix] + [addr]
func NonceKey(addr codec.Address) []byte {
	k := make([]byte, 2+codec.AddressLen)
	k[0] = hostPrefix
	k[1] = nonceSuffix
	copy(k[2:], addr[:])
	key, _ := keys.Encode(k, consts.Uint64Len)
	return key
}

func HasAdmin(ctx context.Context, im state.Immutable) (bool, error) {
	return state.Has(ctx, im, AdminKey())
}

// GetAdmin returns the stored admin and whether one has been set.
func GetAdmin(ctx context.Context, im state.Immutable) (codec.Address, bool, error) {
	v, err := im.GetValue(ctx, AdminKey())
	if errors.Is(err, database.ErrNotFound) {
		return codec.EmptyAddress, false, nil
	}
	if err != nil {
		return codec.EmptyAddress, false, err
	}
	admin, err := codec.ToAddress(v)
	if err != nil {
		return codec.EmptyAddress, false, fmt.Errorf("%w: %d bytes", ErrInvalidAdmin, len(v))
	}
	return admin, true, nil
}

func SetAdmin(ctx context.Context, mu state.Mutable, admin codec.Address) error {
	return mu.Insert(ctx, AdminKey(), admin[:])
}

// GetCounter returns the stored counter, or 0 if it was never written.
func GetCounter(ctx context.Context, im state.Immutable) (uint32, error) {
	v, err := im.GetValue(ctx, CounterKey())
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint32Len {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidCounter, len(v))
	}
	return binary.BigEndian.Uint32(v), nil
}

func SetCounter(ctx context.Context, mu state.Mutable, count uint32) error {
	return mu.Insert(ctx, CounterKey(), binary.BigEndian.AppendUint32(nil, count))
}

// GetInstalledCode returns the code reference the host last installed.
func GetInstalledCode(ctx context.Context, im state.Immutable) (ids.ID, bool, error) {
	v, err := im.GetValue(ctx, InstalledCodeKey())
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	ref, err := ids.ToID(v)
	if err != nil {
		return ids.Empty, false, fmt.Errorf("%w: %w", ErrInvalidCode, err)
	}
	return ref, true, nil
}

func SetInstalledCode(ctx context.Context, mu state.Mutable, ref ids.ID) error {
	return mu.Insert(ctx, InstalledCodeKey(), ref[:])
}

// GetInstanceID returns the identifier every credential accepted by this
// database is bound to.
func GetInstanceID(ctx context.Context, im state.Immutable) (ids.ID, bool, error) {
	v, err := im.GetValue(ctx, InstanceIDKey())
	if errors.Is(err, database.ErrNotFound) {
		return ids.Empty, false, nil
	}
	if err != nil {
		return ids.Empty, false, err
	}
	id, err := ids.ToID(v)
	if err != nil {
		return ids.Empty, false, fmt.Errorf("%w: %w", ErrInvalidInstanceID, err)
	}
	return id, true, nil
}

func SetInstanceID(ctx context.Context, mu state.Mutable, id ids.ID) error {
	return mu.Insert(ctx, InstanceIDKey(), id[:])
}

// GetNonce returns the next nonce [addr] must sign with, or 0 if [addr] has
// never authorized a call.
func GetNonce(ctx context.Context, im state.Immutable, addr codec.Address) (uint64, error) {
	v, err := im.GetValue(ctx, NonceKey(addr))
	if errors.Is(err, database.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != consts.Uint64Len {
		return 0, fmt.Errorf("%w: %d bytes", ErrInvalidNonce, len(v))
	}
	return binary.BigEndian.Uint64(v), nil
}

func SetNonce(ctx context.Context, mu state.Mutable, addr codec.Address, nonce uint64) error {
	return mu.Insert(ctx, NonceKey(addr), binary.BigEndian.AppendUint64(nil, nonce))
}
