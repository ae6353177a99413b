// Package maintlist is the maintenance task list, either across all
// assets or scoped to one.
package maintlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// LoadedMsg carries a fetched task list. AssetID is empty for the
// cross-asset list.
type LoadedMsg struct {
	AssetID string
	Views   []maintenance.View
	Err     error
}

// NewTaskMsg asks the parent to open the create form.
type NewTaskMsg struct {
	AssetID string
}

// EditTaskMsg asks the parent to open the edit form.
type EditTaskMsg struct {
	Task model.MaintenanceTask
}

// ToggleTaskMsg asks the parent to flip a task's completion.
type ToggleTaskMsg struct {
	Task model.MaintenanceTask
}

// DeleteTaskMsg asks the parent to delete a confirmed task.
type DeleteTaskMsg struct {
	Task model.MaintenanceTask
}

// BackMsg leaves an asset-scoped list.
type BackMsg struct{}

// Model is the maintenance list view component.
type Model struct {
	list       list.Model
	keys       *keys.KeyMap
	views      []maintenance.View
	filter     int
	assetID    string
	assetName  string
	pending    map[string]string
	confirming *model.MaintenanceTask
	loading    bool
	err        error
	width      int
	height     int
}

// New creates a new maintenance list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, TaskDelegate{}, width, height-2)
	l.Title = "Maintenance"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:    l,
		keys:    k,
		pending: make(map[string]string),
		width:   width,
		height:  height,
	}
}

// SetScope switches between the cross-asset list (assetID "") and one
// asset's list.
func (m *Model) SetScope(assetID, assetName string) {
	if m.assetID != assetID {
		m.views = nil
		m.list.SetItems(nil)
	}
	m.assetID = assetID
	m.assetName = assetName
	m.loading = true
	m.confirming = nil
	if assetID == "" {
		m.list.Title = "Maintenance"
	} else {
		m.list.Title = "Maintenance: " + assetName
	}
}

// AssetID returns the current scope.
func (m Model) AssetID() string { return m.assetID }

// SetPending marks a task as having a request in flight. An empty label
// clears it.
func (m *Model) SetPending(taskID, label string) tea.Cmd {
	if label == "" {
		delete(m.pending, taskID)
	} else {
		m.pending[taskID] = label
	}
	return m.refreshItems()
}

// Filter returns the active status filter.
func (m Model) Filter() maintenance.StatusFilter {
	return maintenance.StatusFilters[m.filter]
}

// SetFilter selects a status filter directly.
func (m *Model) SetFilter(f maintenance.StatusFilter) tea.Cmd {
	for i, known := range maintenance.StatusFilters {
		if known == f {
			m.filter = i
		}
	}
	return m.refreshItems()
}

// Update handles messages for the maintenance list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.AssetID != m.assetID {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.views = msg.Views
		}
		return m, m.refreshItems()

	case tea.KeyMsg:
		if m.confirming != nil {
			return m.handleConfirmKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		task := *m.confirming
		m.confirming = nil
		return m, func() tea.Msg { return DeleteTaskMsg{Task: task} }
	case key.Matches(msg, m.keys.Reject):
		m.confirming = nil
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.New):
		assetID := m.assetID
		return m, func() tea.Msg { return NewTaskMsg{AssetID: assetID} }

	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		if t, ok := m.selected(); ok {
			return m, func() tea.Msg { return EditTaskMsg{Task: t} }
		}

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			if _, busy := m.pending[t.ID]; busy {
				return m, nil
			}
			return m, func() tea.Msg { return ToggleTaskMsg{Task: t} }
		}

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.confirming = &t
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = (m.filter + 1) % len(maintenance.StatusFilters)
		return m, m.refreshItems()

	case key.Matches(msg, m.keys.Back):
		if m.assetID != "" {
			return m, func() tea.Msg { return BackMsg{} }
		}
		return m, nil

	default:
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) selected() (model.MaintenanceTask, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.MaintenanceTask{}, false
	}
	return item.View.Task, true
}

func (m *Model) refreshItems() tea.Cmd {
	visible := maintenance.Filter(m.views, m.Filter())
	items := make([]list.Item, len(visible))
	for i, v := range visible {
		items[i] = TaskItem{View: v, Pending: m.pending[v.Task.ID]}
	}
	return m.list.SetItems(items)
}

// View renders the list with a summary line.
func (m Model) View() string {
	if m.err != nil {
		return theme.ErrorStyle.Padding(1, 2).Render("Could not load maintenance: " + m.err.Error())
	}
	if m.loading && len(m.views) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Foreground(theme.ColorGray).Render("Loading maintenance...")
	}

	sum := maintenance.Summarize(m.views)
	header := theme.DimmedStyle.Padding(0, 1).Render(fmt.Sprintf(
		"filter: %s | %d overdue, %d upcoming, %d completed",
		m.Filter(), sum.Overdue, sum.Pending, sum.Completed,
	))

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = m.renderEmptyState()
	}
	if m.confirming != nil {
		prompt := theme.ErrorStyle.Padding(0, 1).Render(
			fmt.Sprintf("Delete %q? y confirm / n keep", m.confirming.Title))
		return lipgloss.JoinVertical(lipgloss.Left, header, prompt, body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if len(m.views) > 0 {
		return style.Render("No tasks match this filter.\nPress s to change it.")
	}
	return style.Render("No maintenance scheduled.\n\nPress n to add a task.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
