// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

// Auth TypeIDs. The type id is the first byte of every address, so ids must
// never be remapped.
const (
	ED25519ID uint8 = 0

	ED25519Key = "ed25519"
)
