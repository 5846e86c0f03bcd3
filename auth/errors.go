// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

var (
	ErrInvalidKeyType   = errors.New("invalid key type")
	ErrInvalidAuthSize  = errors.New("invalid auth size")
	ErrMissingSignature = errors.New("missing signature")
	ErrInvalidNonce     = errors.New("invalid nonce")
)
