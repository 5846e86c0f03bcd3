// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/upgradevm/consts"
)

func TestPackerCallFields(t *testing.T) {
	require := require.New(t)

	id := ids.GenerateTestID()
	addr := CreateAddress(0, ids.GenerateTestID())

	wp := NewWriter(0, 1024)
	wp.PackStr("upgrade")
	wp.PackID(id)
	wp.PackAddress(addr)
	wp.PackInt(7)
	wp.PackLong(consts.MaxUint64)
	require.NoError(wp.Err())

	rp := NewReader(wp.Bytes(), 1024)
	require.Equal("upgrade", rp.UnpackStr())
	var gotID ids.ID
	rp.UnpackID(&gotID)
	require.Equal(id, gotID)
	var gotAddr Address
	rp.UnpackAddress(&gotAddr)
	require.Equal(addr, gotAddr)
	require.Equal(uint32(7), rp.UnpackInt())
	require.Equal(consts.MaxUint64, rp.UnpackLong())
	require.NoError(rp.Err())
	require.True(rp.Empty())
}

func TestPackerLimit(t *testing.T) {
	require := require.New(t)

	wp := NewWriter(0, 4)
	wp.PackBytes([]byte{1, 2, 3, 4, 5})
	require.Error(wp.Err())

	rp := NewReader([]byte{0x1}, 1)
	rp.UnpackInt()
	require.Error(rp.Err())
}
