// Package sidebar renders the collapsible section navigation.
package sidebar

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// Section is a top-level area of the application.
type Section int

const (
	SectionAssets Section = iota
	SectionMaintenance
	SectionBorrowing
)

// Sections lists the sections in display order.
var Sections = []Section{SectionAssets, SectionMaintenance, SectionBorrowing}

func (s Section) String() string {
	switch s {
	case SectionAssets:
		return "Assets"
	case SectionMaintenance:
		return "Maintenance"
	case SectionBorrowing:
		return "Borrowing"
	default:
		return "?"
	}
}

func (s Section) icon() string {
	switch s {
	case SectionAssets:
		return "A"
	case SectionMaintenance:
		return "M"
	case SectionBorrowing:
		return "B"
	default:
		return "?"
	}
}

// ToggledMsg is emitted when the sidebar is expanded or collapsed.
type ToggledMsg struct {
	Expanded bool
}

// SelectedMsg is emitted when the active section changes.
type SelectedMsg struct {
	Section Section
}

// Model is the sidebar state.
type Model struct {
	active   Section
	expanded bool
	height   int
}

// New creates a sidebar in the given expanded state.
func New(expanded bool) Model {
	return Model{expanded: expanded}
}

// Active returns the selected section.
func (m Model) Active() Section { return m.active }

// Expanded reports whether the sidebar shows full labels.
func (m Model) Expanded() bool { return m.expanded }

// SetExpanded updates the expanded state without emitting a message, used
// when the preference changes elsewhere.
func (m *Model) SetExpanded(expanded bool) { m.expanded = expanded }

// SetHeight sets the rendered height.
func (m *Model) SetHeight(h int) { m.height = h }

// Toggle flips the expanded state.
func (m *Model) Toggle() tea.Cmd {
	m.expanded = !m.expanded
	expanded := m.expanded
	return func() tea.Msg { return ToggledMsg{Expanded: expanded} }
}

// Select makes s the active section.
func (m *Model) Select(s Section) tea.Cmd {
	m.active = s
	return func() tea.Msg { return SelectedMsg{Section: s} }
}

// Next moves to the following section, wrapping around.
func (m *Model) Next() tea.Cmd {
	return m.Select(Sections[(int(m.active)+1)%len(Sections)])
}

// View renders the sidebar.
func (m Model) View() string {
	var b strings.Builder
	for _, s := range Sections {
		label := s.icon()
		if m.expanded {
			label = s.String()
		}
		style := theme.SidebarItemStyle
		marker := "  "
		if s == m.active {
			style = theme.ActiveSidebarItemStyle
			marker = "> "
		}
		if !m.expanded {
			marker = ""
		}
		b.WriteString(style.Render(marker+label) + "\n")
	}

	width := 14
	if !m.expanded {
		width = 2
	}
	return theme.SidebarStyle.
		Width(width).
		Height(maxInt(m.height-2, 1)).
		Render(lipgloss.NewStyle().Render(strings.TrimRight(b.String(), "\n")))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
