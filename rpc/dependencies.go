// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/host"
)

type Host interface {
	Invoke(ctx context.Context, c host.Call) (host.Result, error)
	Installed() host.Installed
	Codes() []ids.ID
	InstanceID() ids.ID
	Nonce(ctx context.Context, addr codec.Address) (uint64, error)
}
