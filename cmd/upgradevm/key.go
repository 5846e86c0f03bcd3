// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/upgradevm/auth"
	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/crypto/ed25519"
	"github.com/ava-labs/upgradevm/utils"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new ED25519 key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		key, err := ed25519.GeneratePrivateKey()
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		if out != "" {
			if fileExists(out) {
				return fmt.Errorf("%s already exists", out)
			}
			if err := utils.SaveBytes(out, key[:]); err != nil {
				return err
			}
		}
		return printValue(keyCmdResponse{
			Address:    auth.NewED25519Address(key.PublicKey()),
			PrivateKey: key.String(),
			File:       out,
		})
	},
}

var keyAddressCmd = &cobra.Command{
	Use:   "address [key]",
	Short: "Print the address of a key given as hex or a key file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		keyString := ""
		if len(args) == 1 {
			keyString = args[0]
		} else {
			var err error
			keyString, err = getConfigValue("key", true)
			if err != nil {
				return err
			}
		}
		key, err := loadKey(keyString)
		if err != nil {
			return fmt.Errorf("failed to decode key: %w", err)
		}
		return printValue(keyCmdResponse{
			Address: auth.NewED25519Address(key.PublicKey()),
		})
	},
}

type keyCmdResponse struct {
	Address    codec.Address `json:"address"`
	PrivateKey string        `json:"privateKey,omitempty"`
	File       string        `json:"file,omitempty"`
}

func (r keyCmdResponse) String() string {
	s := fmt.Sprintf("address: %s", r.Address)
	if r.PrivateKey != "" {
		s += fmt.Sprintf("\nprivate key: %s", r.PrivateKey)
	}
	if r.File != "" {
		s += fmt.Sprintf("\nsaved to: %s", r.File)
	}
	return s
}

func init() {
	keyGenerateCmd.Flags().String("out", "", "Write the raw key to this file")
	keyAddressCmd.Flags().String("key", "", "ED25519 private key as hex, or a key file")
	keyCmd.AddCommand(keyGenerateCmd, keyAddressCmd)
	rootCmd.AddCommand(keyCmd)
}
