package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/ailean/internal/service/library"
	"github.com/sandevgo/ailean/internal/service/ui"
	"github.com/sandevgo/ailean/pkg/log"
	"github.com/sandevgo/ailean/pkg/srv"
	"github.com/spf13/cobra"
)

var (
	addFile  string
	addName  string
	watchDir string
)

var manualsCmd = &cobra.Command{
	Use:   "manuals",
	Short: "Manage the manual library",
}

var manualsAddCmd = &cobra.Command{
	Use:          "add",
	Short:        "Add a manual from a PDF, text or markdown file",
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

		eq, err := a.importer.Import(ctx, addFile, addName)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Manual for '%s' added successfully!\n", eq.Name)
		return nil
	},
}

var manualsListCmd = &cobra.Command{
	Use:          "list",
	Short:        "List stored manuals",
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

		manuals, err := a.manuals.ListManuals(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(manuals) == 0 {
			fmt.Fprintln(out, "No manuals available. Please add a manual first.")
			return nil
		}
		fmt.Fprintln(out, ui.TitleStyle.Render("Available Manuals"))
		for i, eq := range manuals {
			fmt.Fprintf(out, "%d. %s %s\n", i+1, eq.Name, ui.DescStyle.Render(fmt.Sprintf("(id %d)", eq.ID)))
		}
		return nil
	},
}

var manualsWatchCmd = &cobra.Command{
	Use:          "watch",
	Short:        "Import manuals dropped into a directory",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		dir := watchDir
		if dir == "" {
			dir = a.cfg.GetInboxPath()
		}

		watcher := library.NewWatcher(a.importer)
		services := []srv.Service{
			srv.NewCleanup(a.Close),
			srv.NewFunc(func(ctx context.Context) error {
				return watcher.Watch(ctx, dir)
			}),
		}

		logger := log.FromCtx(ctx)
		logger.Info().Str("dir", dir).Msg("starting manual inbox")
		err = srv.Run(ctx, services)
		logger.Info().Msg("manual inbox stopped")
		return err
	},
}

func init() {
	manualsAddCmd.Flags().StringVarP(&addFile, "file", "f", "", "path to the manual (.pdf, .txt or .md)")
	manualsAddCmd.Flags().StringVarP(&addName, "name", "n", "", "equipment name, e.g. 'M4 Carbine'")
	_ = manualsAddCmd.MarkFlagRequired("file")
	_ = manualsAddCmd.MarkFlagRequired("name")

	manualsWatchCmd.Flags().StringVar(&watchDir, "dir", "", "inbox directory (default <runtime>/inbox)")

	manualsCmd.AddCommand(manualsAddCmd, manualsListCmd, manualsWatchCmd)
	rootCmd.AddCommand(manualsCmd)
}
