// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jakob-ledermann/database/cmd/flags"
)

// Version is the database version
var Version = "development"

func init() {
	viper.SetEnvPrefix("DB")
	viper.AutomaticEnv()
}

var rootCmd = &cobra.Command{
	Use:          "database",
	Short:        "A PostgreSQL-wire-compatible database server",
	SilenceUsage: true,
	Version:      Version,
}

// Execute executes the root command.
func Execute() error {
	flags.DataFlags(rootCmd)

	// register subcommands
	rootCmd.AddCommand(shellCmd())

	return rootCmd.Execute()
}
