// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/ava-labs/upgradevm/cli/prompt"
	"github.com/ava-labs/upgradevm/codec"
	"github.com/ava-labs/upgradevm/rpc"
	"github.com/ava-labs/upgradevm/utils"
)

var initCmd = &cobra.Command{
	Use:   "init [address]",
	Short: "Set the admin of a fresh instance",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			admin codec.Address
			err   error
		)
		if len(args) == 1 {
			admin, err = codec.ParseAddress(args[0])
		} else {
			admin, err = prompt.Address("admin address")
		}
		if err != nil {
			return err
		}
		if err := newClient().Init(cmd.Context(), admin); err != nil {
			return err
		}
		return printValue(initCmdResponse{Admin: admin})
	},
}

type initCmdResponse struct {
	Admin codec.Address `json:"admin"`
}

func (r initCmdResponse) String() string {
	return fmt.Sprintf("initialized admin: %s", r.Admin)
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [codeRef]",
	Short: "Replace the running code, signed with the admin key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		factory, err := keyFactory()
		if err != nil {
			return err
		}
		cli := newClient()
		var code ids.ID
		if len(args) == 1 {
			code, err = ids.FromString(args[0])
		} else {
			code, err = promptCode(cmd.Context(), cli)
		}
		if err != nil {
			return err
		}

		current, version, err := cli.Installed(cmd.Context())
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}installed:{{/}} %s (v%d)\n", current, version)
		utils.Outf("{{yellow}}upgrade to:{{/}} %s\n", code)
		utils.Outf("{{yellow}}signer:{{/}} %s\n", factory.Address())
		nonce, err := cli.Nonce(cmd.Context(), factory.Address())
		if err != nil {
			return err
		}
		utils.Outf("{{yellow}}nonce:{{/}} %d\n", nonce)

		yes, err := cmd.Flags().GetBool("yes")
		if err != nil {
			return err
		}
		if !yes {
			cont, err := prompt.Continue()
			if err != nil || !cont {
				return err
			}
		}

		if err := cli.Upgrade(cmd.Context(), code, factory); err != nil {
			return err
		}
		installed, version, err := cli.Installed(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(installedCmdResponse{CodeRef: installed, Version: version})
	},
}

// promptCode lists the codes the node accepts before asking for one.
func promptCode(ctx context.Context, cli *rpc.JSONRPCClient) (ids.ID, error) {
	codes, err := cli.Codes(ctx)
	if err != nil {
		return ids.Empty, err
	}
	if err := printValue(codesCmdResponse{Codes: codes}); err != nil {
		return ids.Empty, err
	}
	return prompt.ID("code reference")
}

var incrementCmd = &cobra.Command{
	Use:   "increment",
	Short: "Add one to the counter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		count, err := newClient().Increment(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(countCmdResponse{Count: count})
	},
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the counter",
	RunE: func(cmd *cobra.Command, _ []string) error {
		count, err := newClient().GetCount(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(countCmdResponse{Count: count})
	},
}

type countCmdResponse struct {
	Count uint32 `json:"count"`
}

func (r countCmdResponse) String() string {
	return fmt.Sprintf("count: %d", r.Count)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version reported by the running code",
	RunE: func(cmd *cobra.Command, _ []string) error {
		version, err := newClient().Version(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(versionCmdResponse{Version: version})
	},
}

type versionCmdResponse struct {
	Version uint32 `json:"version"`
}

func (r versionCmdResponse) String() string {
	return fmt.Sprintf("version: %d", r.Version)
}

var installedCmd = &cobra.Command{
	Use:   "installed",
	Short: "Print the code reference the node runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		code, version, err := newClient().Installed(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(installedCmdResponse{CodeRef: code, Version: version})
	},
}

type installedCmdResponse struct {
	CodeRef ids.ID `json:"codeRef"`
	Version uint32 `json:"version"`
}

func (r installedCmdResponse) String() string {
	return fmt.Sprintf("code: %s version: %d", r.CodeRef, r.Version)
}

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the code references an upgrade may name",
	RunE: func(cmd *cobra.Command, _ []string) error {
		codes, err := newClient().Codes(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(codesCmdResponse{Codes: codes})
	},
}

type codesCmdResponse struct {
	Codes []ids.ID `json:"codes"`
}

func (r codesCmdResponse) String() string {
	var b strings.Builder
	b.WriteString("codes:")
	for _, code := range r.Codes {
		b.WriteString("\n  ")
		b.WriteString(code.String())
	}
	return b.String()
}

func init() {
	upgradeCmd.Flags().String("key", "", "Admin ED25519 private key as hex, or a key file")
	upgradeCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(
		initCmd,
		upgradeCmd,
		incrementCmd,
		countCmd,
		versionCmd,
		installedCmd,
		codesCmd,
	)
}
