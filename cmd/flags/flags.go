// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func DataDir() string {
	return viper.GetString("DATA_DIR")
}

func InMemory() bool {
	return viper.GetBool("IN_MEMORY")
}

func Quiet() bool {
	return viper.GetBool("QUIET")
}

func DataFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("data-dir", "./data", "Directory holding the catalog manifest")
	cmd.PersistentFlags().Bool("in-memory", false, "Run without a data directory; nothing survives the process")
	cmd.PersistentFlags().Bool("quiet", false, "Suppress dispatch logging")

	viper.BindPFlag("DATA_DIR", cmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("IN_MEMORY", cmd.PersistentFlags().Lookup("in-memory"))
	viper.BindPFlag("QUIET", cmd.PersistentFlags().Lookup("quiet"))
}
