// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/upgradevm/codec"
)

//go:generate go run go.uber.org/mock/mockgen -package=${GOPACKAGE} -destination=mock_dependencies.go . Authorizer,Upgrader

// Authorizer proves that the current caller acts as a principal.
type Authorizer interface {
	// RequireAuth returns an error wrapping [ErrUnauthorized] unless the
	// caller authenticated as [principal].
	RequireAuth(ctx context.Context, principal codec.Address) error
}

// Upgrader replaces the installed code for every invocation after the
// current one.
type Upgrader interface {
	InstallCode(ctx context.Context, code ids.ID) error
}
