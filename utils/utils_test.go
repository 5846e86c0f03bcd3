// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadBytes(t *testing.T) {
	require := require.New(t)
	filename := filepath.Join(t.TempDir(), "SaveBytes")

	id := ids.GenerateTestID()
	require.NoError(SaveBytes(filename, id[:]), "Error during call to SaveBytes")
	require.FileExists(filename, "SaveBytes did not create file")

	loaded, err := LoadBytes(filename, ids.IDLen)
	require.NoError(err)
	require.Equal(id[:], loaded)

	loaded, err = LoadBytes(filename, -1)
	require.NoError(err)
	require.Len(loaded, ids.IDLen)
}

func TestLoadBytesIncorrectLength(t *testing.T) {
	require := require.New(t)
	filename := filepath.Join(t.TempDir(), "TestLoadBytes")
	require.NoError(os.WriteFile(filename, []byte{1, 2, 3, 4, 5}, 0o600))

	_, err := LoadBytes(filename, ids.IDLen)
	require.ErrorIs(err, ErrInvalidSize)
}

func TestLoadKeyInvalidFile(t *testing.T) {
	_, err := LoadBytes(filepath.Join(t.TempDir(), "FileNameDoesntExist"), ids.IDLen)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGetHost(t *testing.T) {
	require := require.New(t)

	host, err := GetHost("http://127.0.0.1:9650/rpc")
	require.NoError(err)
	require.Equal("127.0.0.1", host)

	_, err = GetHost("http://localhost/rpc")
	require.Error(err)
}

func TestInitSubDirectory(t *testing.T) {
	require := require.New(t)

	p, err := InitSubDirectory(t.TempDir(), "db")
	require.NoError(err)
	require.DirExists(p)
}

func TestFprintfArgsAreLiteral(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	Fprintf(&buf, "%s\n", "50% {{red}}off{{/}}")
	require.Equal("50% {{red}}off{{/}}\n", buf.String())
}
