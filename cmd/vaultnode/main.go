package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string
	rootCmd := &cobra.Command{
		Use:           "vaultnode",
		Short:         "runs a yield vault chain",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path of the toml config")
	rootCmd.AddCommand(runCommand(&configPath))
	rootCmd.AddCommand(configCommand())
	rootCmd.AddCommand(keyCommand())
	rootCmd.AddCommand(versionCommand())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error : %+v\n", err)
		os.Exit(1)
	}
}
