package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meverselabs/yieldvault/cmd/config"
	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/meverselabs/yieldvault/service/apiserver/viewchain"
	"github.com/spf13/cobra"
)

func runCommand(pConfigPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "deploys the genesis on an empty store and seals blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadNodeConfig(*pConfigPath)
			if err != nil {
				return err
			}
			rlog.Initialize(cfg.LogLevel)

			nd, err := NewNode(cfg, time.Now())
			if err != nil {
				return err
			}
			defer nd.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return nd.Run(ctx)
		},
	}
}

func configCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "prints the default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(cmd.OutOrStdout(), DefaultConfig())
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "prints the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(viewchain.GetVersion())
		},
	}
}
