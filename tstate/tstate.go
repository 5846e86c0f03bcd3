// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"slices"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"
	"golang.org/x/exp/maps"

	"github.com/ava-labs/upgradevm/keys"
	"github.com/ava-labs/upgradevm/state"
)

var _ state.Mutable = (*TState)(nil)

// TState records the writes of a single invocation on top of [base]. Nothing
// reaches the underlying database until [WriteTo] is called, so discarding a
// TState discards the whole invocation.
type TState struct {
	base    state.Immutable
	changes map[string]maybe.Maybe[[]byte]
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed.
func New(base state.Immutable, changedSize int) *TState {
	return &TState{
		base:    base,
		changes: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

func (ts *TState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	if v, ok := ts.changes[string(key)]; ok {
		if v.IsNothing() {
			return nil, database.ErrNotFound
		}
		return slices.Clone(v.Value()), nil
	}
	return ts.base.GetValue(ctx, key)
}

// Insert records [value] for [key]. The value must fit in the chunks the key
// reserves.
func (ts *TState) Insert(_ context.Context, key []byte, value []byte) error {
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	ts.changes[string(key)] = maybe.Some(slices.Clone(value))
	return nil
}

func (ts *TState) Remove(_ context.Context, key []byte) error {
	if !keys.Valid(key) {
		return ErrInvalidKeyValue
	}
	ts.changes[string(key)] = maybe.Nothing[[]byte]()
	return nil
}

// PendingChanges returns the number of keys modified so far.
func (ts *TState) PendingChanges() int {
	return len(ts.changes)
}

// WriteTo replays every change into [w] in key order.
func (ts *TState) WriteTo(w database.KeyValueWriterDeleter) error {
	changedKeys := maps.Keys(ts.changes)
	slices.Sort(changedKeys)
	for _, k := range changedKeys {
		v := ts.changes[k]
		if v.IsNothing() {
			if err := w.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := w.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
