// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/upgradevm/crypto/ed25519"
	"github.com/ava-labs/upgradevm/utils"
)

func TestLoadKey(t *testing.T) {
	require := require.New(t)
	key, err := ed25519.GeneratePrivateKey()
	require.NoError(err)

	loaded, err := loadKey(key.String())
	require.NoError(err)
	require.Equal(key, loaded)

	loaded, err = loadKey("0x" + key.String())
	require.NoError(err)
	require.Equal(key, loaded)

	file := filepath.Join(t.TempDir(), "key")
	require.NoError(utils.SaveBytes(file, key[:]))
	loaded, err = loadKey(file)
	require.NoError(err)
	require.Equal(key, loaded)

	_, err = loadKey(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(err, errInvalidKey)
}

func TestCommandsRegistered(t *testing.T) {
	require := require.New(t)

	for _, args := range [][]string{
		{"node"},
		{"init"},
		{"upgrade"},
		{"increment"},
		{"count"},
		{"version"},
		{"installed"},
		{"codes"},
		{"key", "generate"},
		{"key", "address"},
	} {
		cmd, _, err := rootCmd.Find(args)
		require.NoError(err)
		require.Equal(args[len(args)-1], cmd.Name())
	}
}

type literalResponse struct {
	Text string `json:"text"`
}

func (r literalResponse) String() string {
	return r.Text
}

func TestWriteValue(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	require.NoError(writeValue(&buf, literalResponse{Text: "100% {{red}}done{{/}} %d"}))
	require.Equal("100% {{red}}done{{/}} %d\n", buf.String())

	buf.Reset()
	code := ids.GenerateTestID()
	require.NoError(writeValue(&buf, installedCmdResponse{CodeRef: code, Version: 2}))
	require.Equal("code: "+code.String()+" version: 2\n", buf.String())

	viper.Set("output", "json")
	t.Cleanup(func() { viper.Set("output", "") })
	buf.Reset()
	require.NoError(writeValue(&buf, countCmdResponse{Count: 3}))
	require.JSONEq(`{"count": 3}`, buf.String())
}

func TestKeyResponseKeepsPath(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	r := keyCmdResponse{File: "/tmp/100%{{red}}.pk"}
	require.NoError(writeValue(&buf, r))
	require.Contains(buf.String(), "saved to: /tmp/100%{{red}}.pk\n")
}
