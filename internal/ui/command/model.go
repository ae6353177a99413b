// Package command is the ":" palette.
package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// Name identifies a palette command after alias resolution.
type Name string

const (
	Assets      Name = "assets"
	Maintenance Name = "maintenance"
	Overdue     Name = "overdue"
	Borrowing   Name = "borrowing"
	NewAsset    Name = "new asset"
	Refresh     Name = "refresh"
	Sidebar     Name = "sidebar"
	Logout      Name = "logout"
	Quit        Name = "quit"
)

// Command describes one palette entry.
type Command struct {
	Name    Name
	Aliases []string
	Help    string
}

// Commands lists every palette command in display order.
var Commands = []Command{
	{Assets, []string{"a"}, "show assets"},
	{Maintenance, []string{"m", "tasks"}, "show maintenance across assets"},
	{Overdue, nil, "show overdue maintenance"},
	{Borrowing, []string{"b", "borrow"}, "show borrow requests"},
	{NewAsset, []string{"add asset"}, "add an asset"},
	{Refresh, []string{"r", "sync"}, "refetch everything"},
	{Sidebar, nil, "expand or collapse the sidebar"},
	{Logout, []string{"sign out"}, "forget the session and quit"},
	{Quit, []string{"q"}, "exit"},
}

// Resolve maps typed input to a command name.
func Resolve(input string) (Name, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, c := range Commands {
		if input == string(c.Name) {
			return c.Name, true
		}
		for _, a := range c.Aliases {
			if input == a {
				return c.Name, true
			}
		}
	}
	return "", false
}

// CommandMsg is emitted when the user executes a known command.
type CommandMsg Name

// Model is the command palette view.
type Model struct {
	input   textinput.Model
	unknown string
	width   int
	height  int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	suggestions := make([]string, len(Commands))
	for i, c := range Commands {
		suggestions[i] = string(c.Name)
	}
	ti.SetSuggestions(suggestions)
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			typed := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if typed == "" {
				return m, nil
			}
			name, ok := Resolve(typed)
			if !ok {
				m.unknown = typed
				return m, nil
			}
			m.unknown = ""
			return m, func() tea.Msg {
				return CommandMsg(name)
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	lines := []string{titleStyle.Render("Command Palette"), m.input.View()}
	if m.unknown != "" {
		lines = append(lines, theme.ErrorStyle.Render("unknown command: "+m.unknown))
	}
	lines = append(lines, "")
	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(14)
	for _, c := range Commands {
		lines = append(lines, nameStyle.Render(string(c.Name))+theme.DimmedStyle.Render(c.Help))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	m.unknown = ""
	return m.input.Focus()
}
