// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/auth"
	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/consts"
)

const (
	MethodInit      = "init"
	MethodUpgrade   = "upgrade"
	MethodIncrement = "increment"
	MethodGetCount  = "getCount"
	MethodVersion   = "version"
)

// Call is one invocation of the installed program.
type Call struct {
	Method string
	Args   []byte

	// Auth is optional. It must sign [auth.Digest] of the call on this
	// instance, and is checked only when the program requires authorization.
	Auth  *auth.ED25519
	Nonce uint64
}

type Result struct {
	Value uint32
}

func InitCall(admin codec.Address) Call {
	return Call{Method: MethodInit, Args: admin[:]}
}

func UpgradeCall(code ids.ID) Call {
	return Call{Method: MethodUpgrade, Args: code[:]}
}

func IncrementCall() Call {
	return Call{Method: MethodIncrement}
}

func GetCountCall() Call {
	return Call{Method: MethodGetCount}
}

func VersionCall() Call {
	return Call{Method: MethodVersion}
}

// Digest is the message [Auth] must sign for the call to be accepted by
// [instance].
func (c Call) Digest(instance ids.ID) ([]byte, error) {
	return auth.Digest(instance, c.Nonce, c.Method, c.Args)
}

// Sign returns a copy of [c] using [nonce] and carrying a credential from
// [factory] that only [instance] accepts.
func (c Call) Sign(instance ids.ID, nonce uint64, factory *auth.ED25519Factory) (Call, error) {
	c.Nonce = nonce
	msg, err := c.Digest(instance)
	if err != nil {
		return Call{}, err
	}
	c.Auth = factory.Sign(msg)
	return c, nil
}

func dispatch(ctx context.Context, p Program, c Call) (Result, error) {
	r := codec.NewReader(c.Args, consts.NetworkSizeLimit)
	switch c.Method {
	case MethodInit:
		var admin codec.Address
		r.UnpackAddress(&admin)
		if err := checkArgs(r); err != nil {
			return Result{}, err
		}
		return Result{}, p.Init(ctx, admin)
	case MethodUpgrade:
		var code ids.ID
		r.UnpackID(&code)
		if err := checkArgs(r); err != nil {
			return Result{}, err
		}
		return Result{}, p.Upgrade(ctx, code)
	case MethodIncrement:
		if err := checkArgs(r); err != nil {
			return Result{}, err
		}
		count, err := p.Increment(ctx)
		return Result{Value: count}, err
	case MethodGetCount:
		if err := checkArgs(r); err != nil {
			return Result{}, err
		}
		count, err := p.GetCount(ctx)
		return Result{Value: count}, err
	case MethodVersion:
		if err := checkArgs(r); err != nil {
			return Result{}, err
		}
		return Result{Value: p.Version()}, nil
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMethod, c.Method)
	}
}

func checkArgs(r *codec.Packer) error {
	if err := r.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgs, err)
	}
	if !r.Empty() {
		return fmt.Errorf("%w: trailing bytes", ErrInvalidArgs)
	}
	return nil
}
