// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import (
	"context"
	"io"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/contract"
	"github.com/ava-labs/upgradevm/state"
)

// Database is the durable store a host commits invocations to. Every
// invocation is written with a single batch.
type Database interface {
	database.KeyValueReader
	database.Batcher
	io.Closer
}

// Program is an installable revision of the governed store.
type Program interface {
	Init(ctx context.Context, admin codec.Address) error
	Upgrade(ctx context.Context, code ids.ID) error
	Increment(ctx context.Context) (uint32, error)
	GetCount(ctx context.Context) (uint32, error)
	Version() uint32
}

// ProgramFactory builds the program for one invocation.
type ProgramFactory func(mu state.Mutable, authorizer contract.Authorizer, upgrader contract.Upgrader) Program

var _ Program = (*contract.Contract)(nil)

func NewContract(mu state.Mutable, authorizer contract.Authorizer, upgrader contract.Upgrader) Program {
	return contract.New(mu, authorizer, upgrader)
}
