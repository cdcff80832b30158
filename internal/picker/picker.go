// Package picker implements the interactive alias chooser.
package picker

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/willibrandon/dbjump/internal/config"
	"github.com/willibrandon/dbjump/internal/connector"
)

// ErrCancelled is returned when the user leaves the picker without choosing.
var ErrCancelled = errors.New("selection cancelled")

var (
	colorAccent     = lipgloss.Color("6")
	colorMuted      = lipgloss.Color("8")
	colorBorder     = lipgloss.Color("240")
	colorSelectedFg = lipgloss.Color("229")
	colorSelectedBg = lipgloss.Color("57")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	selectedStyle = lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg)
	previewStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

// Item is one selectable profile.
type Item struct {
	Profile config.Profile
	Preview string
}

// Model is the bubbletea model for the picker.
type Model struct {
	items    []Item
	filtered []int
	cursor   int
	filter   textinput.Model

	width  int
	height int

	chosen    string
	cancelled bool
}

// New builds a picker over profiles. Aliases in recent come first in that
// order, the rest keep their configuration order.
func New(profiles []config.Profile, recent []string) Model {
	items := make([]Item, 0, len(profiles))
	seen := make(map[string]bool, len(profiles))

	add := func(p config.Profile) {
		if seen[p.Alias] {
			return
		}
		seen[p.Alias] = true
		items = append(items, Item{
			Profile: p,
			Preview: connector.For(p.Engine).FormatPreview(&p),
		})
	}

	byAlias := make(map[string]config.Profile, len(profiles))
	for _, p := range profiles {
		byAlias[p.Alias] = p
	}
	for _, alias := range recent {
		if p, ok := byAlias[alias]; ok {
			add(p)
		}
	}
	for _, p := range profiles {
		add(p)
	}

	ti := textinput.New()
	ti.Placeholder = "filter aliases"
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.Focus()

	m := Model{items: items, filter: ti, width: 80, height: 20}
	m.refilter()
	return m
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
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if alias, ok := m.Selected(); ok {
				m.chosen = alias
				return m, tea.Quit
			}
			return m, nil
		case "up", "ctrl+p", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n", "ctrl+j":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// refilter keeps items whose alias, engine or host contain every term.
func (m *Model) refilter() {
	terms := strings.Fields(strings.ToLower(m.filter.Value()))
	m.filtered = nil

	for i, it := range m.items {
		haystack := strings.ToLower(it.Profile.Alias + " " + string(it.Profile.Engine))
		if it.Profile.Host != nil {
			haystack += " " + strings.ToLower(*it.Profile.Host)
		}
		match := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				match = false
				break
			}
		}
		if match {
			m.filtered = append(m.filtered, i)
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = max(len(m.filtered)-1, 0)
	}
}

// Selected returns the alias under the cursor.
func (m Model) Selected() (string, bool) {
	if len(m.filtered) == 0 {
		return "", false
	}
	return m.items[m.filtered[m.cursor]].Profile.Alias, true
}

// Chosen returns the alias confirmed with enter, if any.
func (m Model) Chosen() (string, bool) {
	return m.chosen, m.chosen != ""
}

// Cancelled reports whether the picker was dismissed.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// View implements tea.Model.
func (m Model) View() string {
	listWidth := max(m.width/2-2, 16)
	rows := max(m.height-4, 3)

	var list strings.Builder
	list.WriteString(titleStyle.Render("dbjump") + "\n")
	list.WriteString(m.filter.View() + "\n")

	if len(m.filtered) == 0 {
		list.WriteString(mutedStyle.Render("  no matches"))
	}

	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	for i := start; i < len(m.filtered) && i < start+rows; i++ {
		p := m.items[m.filtered[i]].Profile
		name := truncate(p.Alias, listWidth-4)
		var line string
		if i == m.cursor {
			line = selectedStyle.Render("> " + name)
		} else {
			line = "  " + name + "  " + mutedStyle.Render(string(p.Engine))
		}
		list.WriteString(line + "\n")
	}

	preview := ""
	if len(m.filtered) > 0 {
		preview = previewStyle.Render(m.items[m.filtered[m.cursor]].Preview)
	}

	left := lipgloss.NewStyle().Width(listWidth).Render(strings.TrimRight(list.String(), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, preview) + "\n" +
		mutedStyle.Render("enter connect • esc cancel • ↑/↓ move")
}

func truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "…")
}

// Run shows the picker on stderr and returns the chosen alias.
func Run(profiles []config.Profile, recent []string) (string, error) {
	if len(profiles) == 0 {
		return "", errors.New("no databases configured")
	}

	p := tea.NewProgram(New(profiles, recent), tea.WithOutput(os.Stderr), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}

	m := final.(Model)
	if alias, ok := m.Chosen(); ok {
		return alias, nil
	}
	return "", ErrCancelled
}
