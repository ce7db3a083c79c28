package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/ailean/internal/config"
	"github.com/sandevgo/ailean/pkg/env"
	"github.com/sandevgo/ailean/pkg/log"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write the current configuration to the runtime .env file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		cfg, err := config.LoadAppConfig()
		if err != nil {
			return err
		}

		envPath := cfg.GetEnvPath()
		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", envPath)
		}

		content, err := env.MarshalEnv(cfg)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.GetRuntimePath(), 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}
		if err := os.WriteFile(envPath, []byte(content), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", envPath, err)
		}

		logger.Info().Str("path", envPath).Msg("configuration written")
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s. Run 'ailean check' next.\n", cfg.GetRuntimePath())
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing .env")
	rootCmd.AddCommand(initCmd)
}
