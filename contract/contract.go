// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
	"github.com/ava-labs/upgradevm/state"
	"github.com/ava-labs/upgradevm/storage"
)

// Version identifies this revision of the contract code.
const Version uint32 = 1

// Contract is the governed state store. It holds a single admin, a public
// counter, and lets the admin replace the running code.
//
// A Contract is built for one invocation: every write goes to [mu], which the
// host commits only if the operation returns without error.
type Contract struct {
	mu         state.Mutable
	authorizer Authorizer
	upgrader   Upgrader
}

func New(mu state.Mutable, authorizer Authorizer, upgrader Upgrader) *Contract {
	return &Contract{
		mu:         mu,
		authorizer: authorizer,
		upgrader:   upgrader,
	}
}

// Init installs [admin]. It succeeds at most once per instance, whatever
// admin is supplied afterwards.
func (c *Contract) Init(ctx context.Context, admin codec.Address) error {
	initialized, err := storage.HasAdmin(ctx, c.mu)
	if err != nil {
		return err
	}
	if initialized {
		return ErrAlreadyInitialized
	}
	return storage.SetAdmin(ctx, c.mu, admin)
}

// Upgrade asks the host to install [code] once the caller has proven it acts
// as the admin. Storage is left untouched.
func (c *Contract) Upgrade(ctx context.Context, code ids.ID) error {
	admin, err := c.Admin(ctx)
	if err != nil {
		return err
	}
	if err := c.authorizer.RequireAuth(ctx, admin); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if err := c.upgrader.InstallCode(ctx, code); err != nil {
		return fmt.Errorf("unable to install %s: %w", code, err)
	}
	return nil
}

// Increment adds one to the counter and returns the new value. The counter
// never wraps: at [consts.MaxUint32] the call fails and nothing is written.
func (c *Contract) Increment(ctx context.Context) (uint32, error) {
	count, err := storage.GetCounter(ctx, c.mu)
	if err != nil {
		return 0, err
	}
	if count == consts.MaxUint32 {
		return 0, ErrCounterOverflow
	}
	count++
	return count, storage.SetCounter(ctx, c.mu, count)
}

// GetCount returns the counter, or 0 if it was never incremented.
func (c *Contract) GetCount(ctx context.Context) (uint32, error) {
	return storage.GetCounter(ctx, c.mu)
}

func (*Contract) Version() uint32 {
	return Version
}

func (c *Contract) IsInitialized(ctx context.Context) (bool, error) {
	return storage.HasAdmin(ctx, c.mu)
}

// Admin returns the installed admin or [ErrUninitialized].
func (c *Contract) Admin(ctx context.Context) (codec.Address, error) {
	admin, ok, err := storage.GetAdmin(ctx, c.mu)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if !ok {
		return codec.EmptyAddress, ErrUninitialized
	}
	return admin, nil
}
