// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "UPGRADEVM"

var rootCmd = &cobra.Command{
	Use:   "upgradevm",
	Short: "Run and interact with an upgradeable governed counter",
	Long: `A node hosting an admin-governed counter whose code can be replaced
by its admin, and a client for its JSON-RPC API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (json, yaml or toml)")
	rootCmd.PersistentFlags().String("endpoint", "", "Node endpoint for client commands")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// initConfig resolves settings from flags, UPGRADEVM_* environment variables,
// and the config file, in that order of precedence.
func initConfig(cmd *cobra.Command) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	configFile := viper.GetString("config")
	if configFile == "" {
		return nil
	}
	viper.SetConfigFile(configFile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to read config %s: %w", configFile, err)
	}
	return nil
}

func main() {
	Execute()
}
