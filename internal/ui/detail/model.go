// Package detail shows a single asset with its images and maintenance
// summary.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// BackMsg signals the parent to navigate back to the asset list.
type BackMsg struct{}

// LoadedMsg carries the asset, its images and its classified maintenance.
type LoadedMsg struct {
	Asset       model.Asset
	Images      []string
	Maintenance []maintenance.View
	Err         error
}

// ActionMsg asks the parent to act on the displayed asset.
type ActionMsg struct {
	Action Action
	Asset  model.Asset
}

// Action names what the user asked for from the detail view.
type Action string

const (
	ActionEdit        Action = "edit"
	ActionFavorite    Action = "favorite"
	ActionMaintenance Action = "maintenance"
	ActionBorrow      Action = "borrow"
)

// Model is the asset detail view component.
type Model struct {
	asset    *model.Asset
	images   []string
	views    []maintenance.View
	err      error
	viewport viewport.Model
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			a := msg.Asset
			m.asset = &a
			m.images = msg.Images
			m.views = msg.Maintenance
		}
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
		if m.asset == nil {
			break
		}
		a := *m.asset
		var action Action
		switch {
		case key.Matches(msg, m.keys.Edit):
			action = ActionEdit
		case key.Matches(msg, m.keys.Favorite):
			action = ActionFavorite
		case key.Matches(msg, m.keys.Open):
			action = ActionMaintenance
		case key.Matches(msg, m.keys.New):
			action = ActionBorrow
		}
		if action != "" {
			return m, func() tea.Msg { return ActionMsg{Action: action, Asset: a} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	centered := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	switch {
	case m.loading:
		return centered.Render("Loading asset...")
	case m.err != nil:
		return theme.ErrorStyle.Padding(1, 2).Render("Could not load asset: " + m.err.Error())
	case m.asset == nil:
		return centered.Render("No asset selected")
	}
	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.asset == nil {
		return ""
	}

	a := m.asset
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	title := a.ItemName
	if a.Favorite {
		title += " " + theme.FavoriteStyle.Render("★")
	}
	sections = append(sections, titleStyle.Render(title))
	if a.Status != "" {
		sections = append(sections, theme.AssetStatusStyle(string(a.Status)).Render(string(a.Status)))
	}
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(18)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) {
		if value != "" {
			sections = append(sections, metaStyle.Render(label+":")+valStyle.Render(value))
		}
	}

	row("Brand", a.BrandName)
	row("Category", a.Category)
	if a.PurchaseDate != nil {
		row("Purchased", a.PurchaseDate.Format("2006-01-02"))
	}
	if a.PurchaseCost != nil {
		row("Cost", fmt.Sprintf("$%.2f", *a.PurchaseCost))
	}
	row("Bought at", a.PurchaseLocation)
	row("Location", a.CurrentLocation)
	row("Condition", a.ConditionDescription)

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 1)))

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite)

	images := m.images
	if len(images) == 0 {
		images = a.Images
	}
	sections = append(sections, "", separator, "", headerStyle.Render(fmt.Sprintf("Images (%d)", len(images))))
	if len(images) == 0 {
		sections = append(sections, theme.DimmedStyle.Italic(true).Render("No images"))
	}
	for i, img := range images {
		marker := "  "
		if i == 0 {
			marker = "* "
		}
		sections = append(sections, marker+img)
	}

	sum := maintenance.Summarize(m.views)
	sections = append(sections, "", separator, "", headerStyle.Render("Maintenance"))
	sections = append(sections, strings.Join([]string{
		theme.StatusStyle(string(maintenance.StatusOverdue)).Render(fmt.Sprintf("%d overdue", sum.Overdue)),
		theme.StatusStyle(string(maintenance.StatusPending)).Render(fmt.Sprintf("%d upcoming", sum.Pending)),
		theme.StatusStyle(string(maintenance.StatusCompleted)).Render(fmt.Sprintf("%d completed", sum.Completed)),
	}, " "))
	if next, ok := nextDue(m.views); ok {
		sections = append(sections, theme.DimmedStyle.Render(fmt.Sprintf(
			"next: %s on %s", next.Task.Title, next.Task.DueDate.Format(maintenance.DateLayout))))
	}
	sections = append(sections, "", theme.HelpStyle.Render("m maintenance | e edit | f favorite | n request to borrow"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// nextDue returns the earliest task that is not completed.
func nextDue(views []maintenance.View) (maintenance.View, bool) {
	var best maintenance.View
	found := false
	for _, v := range views {
		if v.Status == maintenance.StatusCompleted {
			continue
		}
		if !found || v.Task.DueDate.Before(best.Task.DueDate) {
			best = v
			found = true
		}
	}
	return best, found
}

// Asset returns the displayed asset.
func (m Model) Asset() (model.Asset, bool) {
	if m.asset == nil {
		return model.Asset{}, false
	}
	return *m.asset, true
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.asset != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
