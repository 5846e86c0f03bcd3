// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"fmt"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
	"github.com/ava-labs/upgradevm/contract"
	"github.com/ava-labs/upgradevm/state"
	"github.com/ava-labs/upgradevm/storage"
)

var (
	_ contract.Authorizer = (*Oracle)(nil)
	_ contract.Authorizer = AllowAll{}
)

// Oracle answers authorization checks for one invocation. The credential is
// only inspected when the program asks for authorization.
type Oracle struct {
	mu    state.Mutable
	cred  *ED25519
	msg   []byte
	nonce uint64
}

// NewOracle returns an oracle for a call carrying [cred] over [msg], which
// claims [nonce]. A successful check advances the actor's nonce in [mu].
func NewOracle(mu state.Mutable, cred *ED25519, msg []byte, nonce uint64) *Oracle {
	return &Oracle{mu: mu, cred: cred, msg: msg, nonce: nonce}
}

// Anonymous returns an oracle for a caller that attached no credential.
func Anonymous() *Oracle {
	return &Oracle{}
}

func (o *Oracle) RequireAuth(ctx context.Context, principal codec.Address) error {
	if o.cred == nil {
		return fmt.Errorf("%w: %w", contract.ErrUnauthorized, ErrMissingSignature)
	}
	if err := o.cred.Verify(ctx, o.msg); err != nil {
		return fmt.Errorf("%w: %w", contract.ErrUnauthorized, err)
	}
	actor := o.cred.Actor()
	if actor != principal {
		return fmt.Errorf("%w: actor %s is not %s", contract.ErrUnauthorized, actor, principal)
	}
	next, err := storage.GetNonce(ctx, o.mu, actor)
	if err != nil {
		return err
	}
	if o.nonce != next {
		return fmt.Errorf("%w: %w: got %d, expected %d", contract.ErrUnauthorized, ErrInvalidNonce, o.nonce, next)
	}
	if next == consts.MaxUint64 {
		return fmt.Errorf("%w: %w: exhausted", contract.ErrUnauthorized, ErrInvalidNonce)
	}
	return storage.SetNonce(ctx, o.mu, actor, next+1)
}

// AllowAll approves every principal. It is only meant for tests.
type AllowAll struct{}

func (AllowAll) RequireAuth(context.Context, codec.Address) error {
	return nil
}
