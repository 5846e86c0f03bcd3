// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package contract

import "errors"

var (
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrUninitialized      = errors.New("not initialized")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrCounterOverflow    = errors.New("counter overflow")
)
