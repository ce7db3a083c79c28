package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/internal/service/session"
	"github.com/sandevgo/ailean/internal/service/ui"
	"github.com/sandevgo/ailean/pkg/log"
)

type ManualLister interface {
	ListManuals(ctx context.Context) ([]core.Equipment, error)
}

type ManualImporter interface {
	Import(ctx context.Context, path, name string) (core.Equipment, error)
}

type SessionRunner interface {
	Run(ctx context.Context, eq core.Equipment, in session.Input) error
}

// Menu is the manual library loop: pick a manual to chat about, add one, or quit.
type Menu struct {
	manuals  ManualLister
	importer ManualImporter
	sessions SessionRunner
	in       session.Input
	out      io.Writer
}

func NewMenu(manuals ManualLister, importer ManualImporter, sessions SessionRunner, in session.Input, out io.Writer) *Menu {
	return &Menu{
		manuals:  manuals,
		importer: importer,
		sessions: sessions,
		in:       in,
		out:      out,
	}
}

// Run returns nil when the user leaves, including via Ctrl+C or EOF.
func (m *Menu) Run(ctx context.Context) error {
	fmt.Fprintln(m.out, ui.TitleStyle.Render(fmt.Sprintf("Welcome to %s, your Universal Military Maintenance Bot!", core.BotName)))
	fmt.Fprintln(m.out, "Select a manual to troubleshoot or add a new one.")

	for {
		if ctx.Err() != nil {
			return nil
		}

		err := m.step(ctx)
		if errors.Is(err, errLeave) {
			fmt.Fprintln(m.out, "Bye!")
			return nil
		}
		if errors.Is(err, core.ErrInterrupt) || errors.Is(err, io.EOF) {
			fmt.Fprintln(m.out, "\nBye!")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

var errLeave = errors.New("leave")

func (m *Menu) step(ctx context.Context) error {
	manuals, err := m.manuals.ListManuals(ctx)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to list manuals")
		fmt.Fprintf(m.out, "Error loading manual database: %v\n", err)
		manuals = nil
	}

	if len(manuals) == 0 {
		fmt.Fprintln(m.out, "No manuals available. Please add a manual first.")
		fmt.Fprintln(m.out, "Would you like to add a new manual? (y/n)")
		answer, err := m.in.ReadLine("> ")
		if err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(answer), "y") {
			return m.addManual(ctx)
		}
		return nil
	}

	fmt.Fprintln(m.out, ui.UsageStyle.Render("\nAvailable Manuals:"))
	for i, eq := range manuals {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, eq.Name)
	}

	fmt.Fprintln(m.out, "\nOptions:")
	fmt.Fprintln(m.out, "1. Select a manual to troubleshoot")
	fmt.Fprintln(m.out, "2. Add a new manual")
	fmt.Fprintln(m.out, "3. Exit")

	choice, err := m.in.ReadLine("> ")
	if err != nil {
		return err
	}

	switch strings.TrimSpace(choice) {
	case "1":
		return m.selectManual(ctx, manuals)
	case "2":
		return m.addManual(ctx)
	case "3":
		return errLeave
	default:
		fmt.Fprintln(m.out, "Invalid option. Choose 1, 2, or 3.")
		return nil
	}
}

func (m *Menu) selectManual(ctx context.Context, manuals []core.Equipment) error {
	answer, err := m.in.ReadLine("Enter the number of the manual: ")
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		fmt.Fprintln(m.out, "Please enter a valid number.")
		return nil
	}
	if n < 1 || n > len(manuals) {
		fmt.Fprintln(m.out, "Invalid manual number.")
		return nil
	}

	eq := manuals[n-1]
	fmt.Fprintf(m.out, "\nLaunching %s for %s...\n", core.BotName, eq.Name)

	if err := m.sessions.Run(ctx, eq, m.in); err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("equipment", eq.Name).Msg("session failed")
		fmt.Fprintf(m.out, "Cannot proceed without %s manual: %v\n", eq.Name, err)
	}
	return nil
}

func (m *Menu) addManual(ctx context.Context) error {
	fmt.Fprintln(m.out, "\nTo add a new manual, provide the file path and a name for it.")

	path, err := m.in.ReadLine("Enter the full path to the manual (.pdf, .txt or .md): ")
	if err != nil {
		return err
	}
	name, err := m.in.ReadLine("Enter a name for this equipment (e.g., 'M4 Carbine'): ")
	if err != nil {
		return err
	}

	eq, err := m.importer.Import(ctx, path, name)
	if err != nil {
		fmt.Fprintln(m.out, ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		return nil
	}

	fmt.Fprintf(m.out, "Manual for '%s' added successfully!\n", eq.Name)
	return nil
}
