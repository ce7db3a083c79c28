package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/ailean/internal/core"
	"github.com/sandevgo/ailean/internal/service/ui"
)

type manualItem struct {
	eq core.Equipment
}

func (i manualItem) Title() string       { return i.eq.Name }
func (i manualItem) Description() string { return fmt.Sprintf("equipment #%d", i.eq.ID) }
func (i manualItem) FilterValue() string { return i.eq.Name }

type pickerModel struct {
	list     list.Model
	chosen   *core.Equipment
	quitting bool
}

func newPickerModel(manuals []core.Equipment) pickerModel {
	items := make([]list.Item, 0, len(manuals))
	for _, eq := range manuals {
		items = append(items, manualItem{eq: eq})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a manual to troubleshoot"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.PickerTitleStyle

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := ui.PickerDocStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		// keys typed into the filter belong to the list
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if i, ok := m.list.SelectedItem().(manualItem); ok {
				eq := i.eq
				m.chosen = &eq
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.chosen != nil || m.quitting {
		return ""
	}
	return ui.PickerDocStyle.Render(m.list.View())
}

// PickManual shows a full-screen list of manuals. ok is false when the user
// backs out without choosing.
func PickManual(ctx context.Context, manuals []core.Equipment) (eq core.Equipment, ok bool, err error) {
	if len(manuals) == 0 {
		return core.Equipment{}, false, nil
	}

	p := tea.NewProgram(newPickerModel(manuals), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return core.Equipment{}, false, fmt.Errorf("manual picker: %w", err)
	}

	m, _ := final.(pickerModel)
	if m.chosen == nil {
		return core.Equipment{}, false, nil
	}
	return *m.chosen, true, nil
}
