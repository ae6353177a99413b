// Package assetlist is the searchable list of the user's assets.
package assetlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/service"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// LoadedMsg carries the fetched asset list.
type LoadedMsg struct {
	Assets []model.Asset
	Err    error
}

// SelectedMsg opens an asset's detail view.
type SelectedMsg struct{ Asset model.Asset }

// NewAssetMsg asks the parent to open the create form.
type NewAssetMsg struct{}

// EditAssetMsg asks the parent to open the edit form.
type EditAssetMsg struct{ Asset model.Asset }

// FavoriteMsg asks the parent to toggle an asset's favorite flag.
type FavoriteMsg struct{ Asset model.Asset }

// DeleteAssetMsg asks the parent to delete a confirmed asset.
type DeleteAssetMsg struct{ Asset model.Asset }

// MaintenanceMsg opens the maintenance list scoped to an asset.
type MaintenanceMsg struct{ Asset model.Asset }

var sortCycle = []service.AssetSort{service.SortByName, service.SortByPurchaseDate}

// Model is the asset list view component.
type Model struct {
	list       list.Model
	search     textinput.Model
	searching  bool
	keys       *keys.KeyMap
	assets     []model.Asset
	filter     service.AssetFilter
	sort       int
	pending    map[string]string
	confirming *model.Asset
	loading    bool
	err        error
	width      int
	height     int
}

// New creates a new asset list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, AssetDelegate{}, width, height-2)
	l.Title = "Assets"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	ti := textinput.New()
	ti.Placeholder = "search name, brand, category"
	ti.Prompt = "/ "
	ti.CharLimit = 80

	return Model{
		list:    l,
		search:  ti,
		keys:    k,
		pending: make(map[string]string),
		loading: true,
		width:   width,
		height:  height,
	}
}

// SetLoading marks the list as fetching.
func (m *Model) SetLoading(loading bool) { m.loading = loading }

// SetPending marks an asset as having a request in flight. An empty
// label clears it.
func (m *Model) SetPending(id, label string) tea.Cmd {
	if label == "" {
		delete(m.pending, id)
	} else {
		m.pending[id] = label
	}
	return m.refreshItems()
}

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searching }

// Selected returns the highlighted asset.
func (m Model) Selected() (model.Asset, bool) {
	item, ok := m.list.SelectedItem().(AssetItem)
	if !ok {
		return model.Asset{}, false
	}
	return item.Asset, true
}

// Assets returns the unfiltered list last loaded.
func (m Model) Assets() []model.Asset { return m.assets }

// Update handles messages for the asset list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.assets = msg.Assets
		}
		return m, m.refreshItems()

	case tea.KeyMsg:
		if m.searching {
			return m.handleSearchKeys(msg)
		}
		if m.confirming != nil {
			return m.handleConfirmKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Query = ""
		return m, m.refreshItems()
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Query = m.search.Value()
	return m, tea.Batch(cmd, m.refreshItems())
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		a := *m.confirming
		m.confirming = nil
		return m, func() tea.Msg { return DeleteAssetMsg{Asset: a} }
	case key.Matches(msg, m.keys.Reject):
		m.confirming = nil
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Favorites):
		m.filter.FavoritesOnly = !m.filter.FavoritesOnly
		return m, m.refreshItems()

	case key.Matches(msg, m.keys.CycleSort):
		m.sort = (m.sort + 1) % len(sortCycle)
		return m, m.refreshItems()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewAssetMsg{} }
	}

	a, ok := m.Selected()
	switch {
	case !ok:
	case key.Matches(msg, m.keys.Select):
		return m, func() tea.Msg { return SelectedMsg{Asset: a} }
	case key.Matches(msg, m.keys.Edit):
		return m, func() tea.Msg { return EditAssetMsg{Asset: a} }
	case key.Matches(msg, m.keys.Favorite):
		if _, busy := m.pending[a.ID]; busy {
			return m, nil
		}
		return m, func() tea.Msg { return FavoriteMsg{Asset: a} }
	case key.Matches(msg, m.keys.Open):
		return m, func() tea.Msg { return MaintenanceMsg{Asset: a} }
	case key.Matches(msg, m.keys.Delete):
		m.confirming = &a
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) refreshItems() tea.Cmd {
	visible := service.FilterAssets(m.assets, m.filter)
	service.SortAssets(visible, sortCycle[m.sort])
	items := make([]list.Item, len(visible))
	for i, a := range visible {
		items[i] = AssetItem{Asset: a, Pending: m.pending[a.ID]}
	}
	return m.list.SetItems(items)
}

// FilterSummary describes the active filter and sort for the status bar.
func (m Model) FilterSummary() string {
	s := "sort: " + string(sortCycle[m.sort])
	if m.filter.FavoritesOnly {
		s += " | favorites"
	}
	if m.filter.Query != "" {
		s += fmt.Sprintf(" | search: %q", m.filter.Query)
	}
	return s
}

// View renders the asset list.
func (m Model) View() string {
	if m.err != nil {
		return theme.ErrorStyle.Padding(1, 2).Render("Could not load assets: " + m.err.Error())
	}
	if m.loading && len(m.assets) == 0 {
		return lipgloss.NewStyle().Padding(1, 2).Foreground(theme.ColorGray).Render("Loading assets...")
	}

	var top string
	switch {
	case m.confirming != nil:
		top = theme.ErrorStyle.Padding(0, 1).Render(
			fmt.Sprintf("Delete %q and its maintenance? y confirm / n keep", m.confirming.ItemName))
	case m.searching || m.filter.Query != "":
		top = m.search.View()
	default:
		top = theme.DimmedStyle.Padding(0, 1).Render(m.FilterSummary())
	}

	body := m.list.View()
	if len(m.list.Items()) == 0 {
		body = m.renderEmptyState()
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if len(m.assets) > 0 {
		return style.Render("No assets match.")
	}
	return style.Render("No assets yet.\n\nPress n to add one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.search.Width = width - 4
}
