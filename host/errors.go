// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package host

import "errors"

var (
	ErrUnknownCode   = errors.New("unknown code")
	ErrDuplicateCode = errors.New("duplicate code")
	ErrUnknownMethod = errors.New("unknown method")
	ErrInvalidArgs   = errors.New("invalid arguments")
)
