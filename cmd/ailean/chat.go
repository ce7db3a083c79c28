package main

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/internal/transport/cli"
	"github.com/sandevgo/ailean/pkg/log"
	"github.com/spf13/cobra"
)

var (
	chatEquipment string
	chatPick      bool
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Open the manual library and chat about a piece of equipment",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Ctrl+C is handled per read by readline and per turn by the session
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		// resolve the equipment before readline takes over the terminal
		var eq *core.Equipment
		switch {
		case chatEquipment != "":
			found, err := a.manuals.FindByName(ctx, chatEquipment)
			if err != nil {
				return err
			}
			eq = &found
		case chatPick:
			manuals, err := a.manuals.ListManuals(ctx)
			if err != nil {
				return err
			}
			if len(manuals) == 0 {
				return errors.New("no manuals available, add one with 'ailean manuals add'")
			}
			picked, ok, err := cli.PickManual(ctx, manuals)
			if err != nil || !ok {
				return err
			}
			eq = &picked
		}

		console, err := cli.NewConsole(a.cfg.GetInputHistoryPath())
		if err != nil {
			return err
		}
		defer console.Close()

		sessions := a.newSession(console.Stdout())
		log.FromCtx(ctx).Debug().Str("model", a.cfg.Model).Msg("chat ready")

		if eq != nil {
			return sessions.Run(ctx, *eq, console)
		}
		return cli.NewMenu(a.manuals, a.importer, sessions, console, console.Stdout()).Run(ctx)
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatEquipment, "equipment", "e", "", "chat about this equipment directly, skipping the menu")
	chatCmd.Flags().BoolVar(&chatPick, "pick", false, "choose the manual from an interactive list")
	chatCmd.MarkFlagsMutuallyExclusive("equipment", "pick")
	rootCmd.AddCommand(chatCmd)
}
