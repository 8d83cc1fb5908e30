package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// List styles.
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// pickItem is one row of an interactive selection list.
type pickItem struct {
	Label  string
	Detail string
}

// pickModel is the bubbletea model for choosing one item from a search
// result list, used when a name search matches several patterns or yarns.
type pickModel struct {
	title    string
	items    []pickItem
	cursor   int
	selected int
}

func newPickModel(title string, items []pickItem) pickModel {
	return pickModel{title: title, items: items, selected: -1}
}

func (m pickModel) Init() tea.Cmd {
	return nil
}

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-40s  %s", cursor, item.Label, listDimStyle.Render(item.Detail))
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.items))))

	return b.String()
}

// pickOne runs the selection list and returns the chosen index, or -1 when
// the user backed out.
func pickOne(title string, items []pickItem) (int, error) {
	final, err := tea.NewProgram(newPickModel(title, items)).Run()
	if err != nil {
		return -1, fmt.Errorf("selection: %w", err)
	}
	m, ok := final.(pickModel)
	if !ok {
		return -1, nil
	}
	return m.selected, nil
}
