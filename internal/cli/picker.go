package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/knitwit/errors"
)

// pickerModel lets the user toggle auxiliary worlds, narrowing the list with
// a filter.
type pickerModel struct {
	target    string
	worlds    []string
	selected  map[string]bool
	order     []string
	filter    textinput.Model
	visible   []string
	cursor    int
	done      bool
	cancelled bool
}

func newPickerModel(target string, candidates, preset []string) *pickerModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "type to narrow"
	ti.Width = 40
	ti.Focus()

	m := &pickerModel{
		target:   target,
		worlds:   candidates,
		selected: make(map[string]bool),
		filter:   ti,
	}
	for _, w := range preset {
		m.toggle(w)
	}
	m.refilter()
	return m
}

func (m *pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "tab", " ":
			if m.cursor < len(m.visible) {
				m.toggle(m.visible[m.cursor])
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// toggle flips w, keeping selections in the order they were first made.
func (m *pickerModel) toggle(w string) {
	if m.selected[w] {
		delete(m.selected, w)
		for i, o := range m.order {
			if o == w {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		return
	}
	m.selected[w] = true
	m.order = append(m.order, w)
}

func (m *pickerModel) refilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for _, w := range m.worlds {
		if q == "" || strings.Contains(strings.ToLower(w), q) {
			m.visible = append(m.visible, w)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// Selected returns the chosen worlds in selection order.
func (m *pickerModel) Selected() []string {
	return append([]string(nil), m.order...)
}

func (m *pickerModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("knitwit"))
	b.WriteString(" worlds to fold into ")
	b.WriteString(worldStyle.Render(m.target))
	b.WriteString("\n\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(dimStyle.Render("  no matching worlds"))
		b.WriteString("\n")
	}
	for i, w := range m.visible {
		mark := "[ ]"
		if m.selected[w] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, w)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("↑/↓ move • space toggle • enter confirm (%d selected) • esc cancel", len(m.order))))
	return b.String()
}

func runPicker(ctx context.Context, target string, candidates, preset []string) ([]string, error) {
	m := newPickerModel(target, candidates, preset)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return nil, err
	}
	if m.cancelled || !m.done {
		return nil, errors.InvalidInput(errors.PhaseConfig, "world selection cancelled")
	}
	return m.Selected(), nil
}
