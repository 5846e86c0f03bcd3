// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	ByteLen   = 1
	IDLen     = 32
	Uint16Len = 2
	Uint32Len = 4
	Uint64Len = 8

	MaxUint16 = ^uint16(0)
	MaxUint32 = ^uint32(0)
	MaxUint64 = ^uint64(0)

	// NetworkSizeLimit bounds any single RPC payload we will decode.
	NetworkSizeLimit = 2_044_723 // 1.95 MiB
)
