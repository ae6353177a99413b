// Package borrowlist shows borrow requests in two tabs: requests for the
// user's assets (incoming) and requests the user made (outgoing).
package borrowlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// LoadedMsg carries the requests for one role.
type LoadedMsg struct {
	Role     model.BorrowRole
	Requests []model.BorrowRequest
	Err      error
}

// ActionMsg asks the parent to run a transition the request allows.
type ActionMsg struct {
	Action  model.BorrowAction
	Request model.BorrowRequest
}

// requestItem wraps a request for a bubbles/list.
type requestItem struct {
	req  model.BorrowRequest
	role model.BorrowRole
}

func (i requestItem) FilterValue() string { return i.req.AssetName }

type requestDelegate struct{}

func (d requestDelegate) Height() int                             { return 1 }
func (d requestDelegate) Spacing() int                            { return 0 }
func (d requestDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d requestDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ri, ok := item.(requestItem)
	if !ok {
		return
	}
	r := ri.req
	name := r.AssetName
	if name == "" {
		name = r.AssetID
	}
	badge := theme.BorrowStatusStyle(string(r.Status)).Width(11).Render(string(r.Status))
	dates := fmt.Sprintf("%s to %s", r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	line := fmt.Sprintf("%s %s  %s", badge, name, theme.DimmedStyle.Render(dates))
	if actions := ri.req.AllowedActions(ri.role); len(actions) > 0 {
		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = string(a)
		}
		line += "  " + theme.HelpStyle.Render(strings.Join(names, "/"))
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}

var tabs = []model.BorrowRole{model.RoleOwner, model.RoleRequester}

func tabLabel(r model.BorrowRole) string {
	if r == model.RoleOwner {
		return "Incoming"
	}
	return "Outgoing"
}

// Model is the borrow request view component.
type Model struct {
	lists  map[model.BorrowRole]*list.Model
	errs   map[model.BorrowRole]error
	active int
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new borrow list model.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{
		lists:  make(map[model.BorrowRole]*list.Model, len(tabs)),
		errs:   make(map[model.BorrowRole]error, len(tabs)),
		keys:   k,
		width:  width,
		height: height,
	}
	for _, role := range tabs {
		l := list.New([]list.Item{}, requestDelegate{}, width, height-2)
		l.SetShowTitle(false)
		l.SetShowHelp(false)
		l.SetFilteringEnabled(false)
		m.lists[role] = &l
	}
	return m
}

// Role returns the active tab's role.
func (m Model) Role() model.BorrowRole { return tabs[m.active] }

// Update handles messages for the borrow list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.errs[msg.Role] = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Requests))
		for i, r := range msg.Requests {
			items[i] = requestItem{req: r, role: msg.Role}
		}
		return m, m.lists[msg.Role].SetItems(items)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.SwitchTab) {
			m.active = (m.active + 1) % len(tabs)
			return m, nil
		}
		if cmd := m.actionFor(msg); cmd != nil {
			return m, cmd
		}
	}

	l := m.lists[m.Role()]
	updated, cmd := l.Update(msg)
	*l = updated
	return m, cmd
}

func (m Model) actionFor(msg tea.KeyMsg) tea.Cmd {
	item, ok := m.lists[m.Role()].SelectedItem().(requestItem)
	if !ok {
		return nil
	}
	var action model.BorrowAction
	switch {
	case key.Matches(msg, m.keys.Approve):
		action = model.ActionApprove
	case key.Matches(msg, m.keys.Deny):
		action = model.ActionDeny
	case key.Matches(msg, m.keys.Cancel):
		action = model.ActionCancel
	case key.Matches(msg, m.keys.Returned):
		action = model.ActionComplete
	default:
		return nil
	}
	if !item.req.Allows(item.role, action) {
		return nil
	}
	req := item.req
	return func() tea.Msg { return ActionMsg{Action: action, Request: req} }
}

// View renders the tab bar and the active list.
func (m Model) View() string {
	labels := make([]string, len(tabs))
	for i, role := range tabs {
		style := theme.TabStyle
		if i == m.active {
			style = theme.ActiveTabStyle
		}
		labels[i] = style.Render(tabLabel(role))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, labels...)

	role := m.Role()
	var body string
	l := m.lists[role]
	switch {
	case m.errs[role] != nil:
		body = theme.ErrorStyle.Padding(1, 2).Render("Could not load requests: " + m.errs[role].Error())
	case len(l.Items()) == 0:
		body = lipgloss.NewStyle().
			Width(m.width).
			Height(m.height-2).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No " + strings.ToLower(tabLabel(role)) + " requests.")
	default:
		body = l.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, bar, body)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, l := range m.lists {
		l.SetSize(width, height-2)
	}
}
