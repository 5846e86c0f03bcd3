// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package keys

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeChunks(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte{0x1, 0x2}, 3)
	require.Equal([]byte{0x1, 0x2, 0x0, 0x3}, k)
	require.True(Valid(k))

	chunks, ok := MaxChunks(k)
	require.True(ok)
	require.Equal(uint16(3), chunks)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		chunks  uint16
	}{
		{name: "empty", maxSize: 0, chunks: 0},
		{name: "single chunk", maxSize: 33, chunks: 1},
		{name: "chunk boundary", maxSize: 64, chunks: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			k, ok := Encode([]byte{0xa}, tt.maxSize)
			require.True(ok)
			chunks, ok := MaxChunks(k)
			require.True(ok)
			require.Equal(tt.chunks, chunks)
		})
	}
}

func TestVerifyValue(t *testing.T) {
	require := require.New(t)

	k := EncodeChunks([]byte{0x1}, 1)
	require.True(VerifyValue(k, bytes.Repeat([]byte{0xf}, 63)))
	require.False(VerifyValue(k, bytes.Repeat([]byte{0xf}, 64)))
	require.False(VerifyValue([]byte{0x1}, nil))
}
