// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ava-labs/upgradevm/auth"
	"github.com/ava-labs/upgradevm/config"
	"github.com/ava-labs/upgradevm/crypto/ed25519"
	"github.com/ava-labs/upgradevm/rpc"
	"github.com/ava-labs/upgradevm/utils"
)

var errInvalidKey = errors.New("unable to decode key as hex, or read it from a file")

func isJSONOutputRequested() bool {
	return strings.ToLower(viper.GetString("output")) == "json"
}

func printValue(v fmt.Stringer) error {
	return writeValue(os.Stdout, v)
}

// writeValue renders [v] as indented JSON or as its String form.
func writeValue(w io.Writer, v fmt.Stringer) error {
	if isJSONOutputRequested() {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(w, string(jsonBytes))
		return nil
	}
	utils.Fprintf(w, "%s\n", v)
	return nil
}

func getConfigValue(key string, required bool) (string, error) {
	if value := viper.GetString(key); value != "" {
		return value, nil
	}
	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}
	return "", nil
}

func newClient() *rpc.JSONRPCClient {
	endpoint, _ := getConfigValue("endpoint", false)
	if endpoint == "" {
		endpoint = config.DefaultEndpoint
	}
	return rpc.NewJSONRPCClient(endpoint)
}

// loadKey reads a private key given as hex or as the path of a file holding
// the raw key bytes.
func loadKey(hexOrFile string) (ed25519.PrivateKey, error) {
	if key, err := ed25519.HexToPrivateKey(hexOrFile); err == nil {
		return key, nil
	}
	raw, err := utils.LoadBytes(hexOrFile, ed25519.PrivateKeyLen)
	if err != nil {
		return ed25519.EmptyPrivateKey, fmt.Errorf("%w: %w", errInvalidKey, err)
	}
	return ed25519.HexToPrivateKey(hex.EncodeToString(raw))
}

func keyFactory() (*auth.ED25519Factory, error) {
	keyString, err := getConfigValue("key", true)
	if err != nil {
		return nil, err
	}
	key, err := loadKey(keyString)
	if err != nil {
		return nil, err
	}
	return auth.NewED25519Factory(key), nil
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
