// Package assetform is the create/edit form for assets.
package assetform

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui"
)

// SubmittedMsg is dispatched with the edited asset. ImagePath is a local
// file to upload and attach, or "".
type SubmittedMsg struct {
	Asset     model.Asset
	Editing   bool
	ImagePath string
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name             string
	brand            string
	category         string
	purchaseDate     string
	purchaseCost     string
	purchaseLocation string
	currentLocation  string
	condition        string
	imagePath        string
}

// Model is the Bubble Tea model for the asset form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editing    bool
	original   model.Asset
	categories []string
	errMsg     string
	width      int
	height     int
}

// New creates a new asset form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// SetCategories sets the suggestions offered for the category field.
func (m *Model) SetCategories(categories []string) {
	m.categories = categories
}

// StartCreate initializes the form for a new asset.
func (m *Model) StartCreate() tea.Cmd {
	m.editing = false
	m.original = model.Asset{}
	m.errMsg = ""
	*m.fb = formBindings{category: model.DefaultCategory}
	m.form = m.build()
	return m.form.Init()
}

// StartEdit initializes the form with an existing asset's values.
func (m *Model) StartEdit(a model.Asset) tea.Cmd {
	m.editing = true
	m.original = a
	m.errMsg = ""
	*m.fb = formBindings{
		name:             a.ItemName,
		brand:            a.BrandName,
		category:         a.Category,
		purchaseLocation: a.PurchaseLocation,
		currentLocation:  a.CurrentLocation,
		condition:        a.ConditionDescription,
	}
	if a.PurchaseDate != nil {
		m.fb.purchaseDate = a.PurchaseDate.Format(maintenance.DateLayout)
	}
	if a.PurchaseCost != nil {
		m.fb.purchaseCost = strconv.FormatFloat(*a.PurchaseCost, 'f', -1, 64)
	}
	m.form = m.build()
	return m.form.Init()
}

// ShowError reopens the form with input preserved and msg shown above it.
func (m *Model) ShowError(msg string) tea.Cmd {
	m.errMsg = msg
	m.form = m.build()
	return m.form.Init()
}

// Update handles messages for the asset form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the asset form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Asset"
	if m.editing {
		titleText = "Edit Asset"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if m.errMsg != "" {
		content += theme.ErrorStyle.Render(m.errMsg) + "\n\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) build() *huh.Form {
	category := huh.NewInput().
		Title("Category").
		Placeholder(model.DefaultCategory).
		Value(&m.fb.category)
	if len(m.categories) > 0 {
		category = category.Suggestions(m.categories)
	}

	details := huh.NewGroup(
		huh.NewInput().
			Title("Name").
			Placeholder("Cordless drill").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Brand").
			Value(&m.fb.brand),
		category,
		huh.NewInput().
			Title("Current Location").
			Value(&m.fb.currentLocation),
		huh.NewText().
			Title("Condition").
			Placeholder("Optional notes on wear...").
			Value(&m.fb.condition),
	)

	purchase := huh.NewGroup(
		huh.NewInput().
			Title("Purchase Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.purchaseDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Purchase Cost").
			Placeholder("Optional").
			Value(&m.fb.purchaseCost).
			Validate(func(s string) error {
				_, err := maintenance.ParseCost(s)
				return err
			}),
		huh.NewInput().
			Title("Purchased At").
			Value(&m.fb.purchaseLocation),
		huh.NewInput().
			Title("Add Image").
			Placeholder("Path to a local image (optional)").
			Value(&m.fb.imagePath).
			Validate(validateOptionalFile),
	)

	return huh.NewForm(details, purchase).
		WithKeyMap(ui.FormKeyMap()).
		WithWidth(m.formWidth()).
		WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	a := m.original
	a.ItemName = m.fb.name
	a.BrandName = m.fb.brand
	a.Category = m.fb.category
	a.PurchaseLocation = m.fb.purchaseLocation
	a.CurrentLocation = m.fb.currentLocation
	a.ConditionDescription = m.fb.condition
	a.Images = append([]string(nil), m.original.Images...)

	a.PurchaseDate = nil
	if s := strings.TrimSpace(m.fb.purchaseDate); s != "" {
		if t, err := time.ParseInLocation(maintenance.DateLayout, s, time.Local); err == nil {
			a.PurchaseDate = &t
		}
	}
	a.PurchaseCost, _ = maintenance.ParseCost(m.fb.purchaseCost)

	msg := SubmittedMsg{
		Asset:     a,
		Editing:   m.editing,
		ImagePath: strings.TrimSpace(m.fb.imagePath),
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(maintenance.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateOptionalFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot read %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}
