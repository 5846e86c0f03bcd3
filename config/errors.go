// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrMissingDataDir     = errors.New("missing data directory")
	ErrInvalidRequestSize = errors.New("invalid max request size")
)
