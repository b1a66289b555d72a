// Package tui provides the interactive history browser: live search over a
// record store with a detail view.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/estlin/paperbill/internal/cli"
	"github.com/estlin/paperbill/internal/model"
	"github.com/estlin/paperbill/internal/storage"
)

// Model holds the history browser state.
type Model struct {
	store    *storage.Store
	currency string
	input    textinput.Model
	docs     []model.Document
	cursor   int
	detail   bool
	width    int
	height   int
}

// NewModel creates a history browser over an open store.
func NewModel(store *storage.Store, currency string) Model {
	input := textinput.New()
	input.Placeholder = "search number, client, or business"
	input.Prompt = "/ "
	input.Focus()

	return Model{
		store:    store,
		currency: currency,
		input:    input,
		docs:     store.Documents(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.detail {
				m.detail = false
				return m, nil
			}
			if msg.String() == "ctrl+c" || m.input.Value() == "" {
				return m, tea.Quit
			}

		case "esc":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit

		case "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down":
			if m.cursor < len(m.docs)-1 {
				m.cursor++
			}
			return m, nil

		case "enter":
			if len(m.docs) > 0 {
				m.detail = !m.detail
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.docs = m.store.Search(m.input.Value())
		if m.cursor >= len(m.docs) {
			m.cursor = 0
		}
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.detail && m.cursor < len(m.docs) {
		return cli.FormatDocument(m.docs[m.cursor], m.currency) +
			"\n" + cli.SubtleStyle.Render("enter/esc: back  q: quit")
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle(fmt.Sprintf("%s History", m.store.Kind().Title())))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.docs) == 0 {
		b.WriteString(cli.SubtleStyle.Render("No records found.") + "\n")
	}
	for i, d := range m.docs {
		line := cli.FormatDocumentLine(d, m.currency)
		if i == m.cursor {
			line = cli.BoldStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	stats := m.store.Summarize(time.Now())
	b.WriteString("\n" + cli.SubtleStyle.Render(fmt.Sprintf(
		"%d records · %s %s all-time · enter: detail · esc: quit",
		stats.Count, m.currency, model.FormatAmount(stats.Revenue))))

	return b.String()
}

// Run opens the interactive history browser and blocks until it exits.
func Run(store *storage.Store, currency string) error {
	p := tea.NewProgram(NewModel(store, currency), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run history browser: %w", err)
	}
	return nil
}
