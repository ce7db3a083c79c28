package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/sandevgo/ailean/internal/service/ui"
	"github.com/sandevgo/ailean/pkg/log"
	"github.com/sandevgo/ailean/pkg/retry"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:          "check",
	Short:        "Verify the manual database and the Ollama model server",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		out := cmd.OutOrStdout()

		manuals, err := a.manuals.ListManuals(ctx)
		if err != nil {
			return fmt.Errorf("database check failed: %w", err)
		}
		fmt.Fprintf(out, "database: %s (%d manuals)\n", a.cfg.GetDatabasePath(), len(manuals))

		cfg := retry.NewDefaultConfig()
		cfg.MaxRetries = a.cfg.HealthCheckRetries

		var models []string
		err = retry.NewRetrier(cfg).Do(ctx, func(ctx context.Context) error {
			var err error
			models, err = a.gateway.Models(ctx)
			return err
		})
		if err != nil {
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("ollama: %s unreachable", a.cfg.OllamaBaseURL)))
			return err
		}
		fmt.Fprintf(out, "ollama: %s (%d models)\n", a.cfg.OllamaBaseURL, len(models))

		if !slices.Contains(models, a.cfg.Model) {
			log.FromCtx(ctx).Warn().Str("model", a.cfg.Model).Strs("available", models).Msg("configured model not pulled")
			fmt.Fprintln(out, ui.ErrorStyle.Render(fmt.Sprintf("model %s is not available, run: ollama pull %s", a.cfg.Model, a.cfg.Model)))
			return fmt.Errorf("model %s not found", a.cfg.Model)
		}
		fmt.Fprintf(out, "model: %s\n", a.cfg.Model)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
