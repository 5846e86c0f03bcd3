// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import "errors"

var (
	ErrInvalidAdmin   = errors.New("invalid admin")
	ErrInvalidCounter = errors.New("invalid counter")
	ErrInvalidCode    = errors.New("invalid code reference")
	ErrUnknownKey     = errors.New("unknown storage key")

	ErrInvalidInstanceID = errors.New("invalid instance id")
	ErrInvalidNonce      = errors.New("invalid nonce")
)
