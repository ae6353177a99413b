// Package maintform is the create/edit form for maintenance tasks.
package maintform

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui"
)

// SubmittedMsg is dispatched when the user submits the form. The raw
// form travels unparsed; the service validates it.
type SubmittedMsg struct {
	Mode     maintenance.Mode
	Asset    model.Asset
	Original model.MaintenanceTask
	Form     maintenance.Form
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	form maintenance.Form
}

// Model is the Bubble Tea model for the maintenance form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	mode     maintenance.Mode
	asset    model.Asset
	original model.MaintenanceTask
	errs     maintenance.Errors
	width    int
	height   int
}

// New creates a new maintenance form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// StartCreate initializes the form for a new task on asset, prefilled with
// the last-used recurrence schedule.
func (m *Model) StartCreate(asset model.Asset, rec prefs.Recurrence, today time.Time) tea.Cmd {
	m.mode = maintenance.ModeCreate
	m.asset = asset
	m.original = model.MaintenanceTask{}
	m.errs = nil
	m.fb.form = maintenance.Form{
		DueDate:            today.Format(maintenance.DateLayout),
		RecurrenceInterval: itoa(rec.Interval),
		RecurrenceUnit:     string(rec.Unit),
	}
	m.form = m.build()
	return m.form.Init()
}

// StartEdit initializes the form with an existing task's values.
func (m *Model) StartEdit(task model.MaintenanceTask, loc *time.Location) tea.Cmd {
	m.mode = maintenance.ModeEdit
	m.asset = model.Asset{ID: task.AssetID, ItemName: task.ProductName}
	m.original = task
	m.errs = nil
	m.fb.form = maintenance.FormFromTask(task, loc)
	if m.fb.form.RecurrenceUnit == "" {
		m.fb.form.RecurrenceUnit = string(maintenance.DefaultUnit)
	}
	m.form = m.build()
	return m.form.Init()
}

// ShowErrors reopens the form with the user's input preserved and the
// rejected fields listed above it.
func (m *Model) ShowErrors(errs maintenance.Errors) tea.Cmd {
	m.errs = errs
	m.form = m.build()
	return m.form.Init()
}

// Editing reports whether the form is editing an existing task.
func (m Model) Editing() bool { return m.mode == maintenance.ModeEdit }

// Update handles messages for the maintenance form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.handleSubmit()
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}
	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Maintenance Task"
	if m.Editing() {
		titleText = "Edit Maintenance Task"
	}
	if m.asset.ItemName != "" {
		titleText += ": " + m.asset.ItemName
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n"
	if !m.errs.OK() {
		content += theme.ErrorStyle.Render(strings.Join(errorLines(m.errs), "\n")) + "\n\n"
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
	f := &m.fb.form
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Replace air filter").
			Value(&f.Title).
			Validate(maintenance.ValidateTitle),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&f.Description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD").
			Value(&f.DueDate).
			Validate(func(s string) error {
				_, err := maintenance.ParseDueDate(s, time.Local)
				return err
			}),
		huh.NewInput().
			Title("Cost").
			Placeholder("Optional, e.g. 12.50").
			Value(&f.Cost).
			Validate(func(s string) error {
				_, err := maintenance.ParseCost(s)
				return err
			}),
		huh.NewInput().
			Title("Tool Location").
			Placeholder("Garage shelf").
			Value(&f.ToolLocation).
			Validate(maintenance.ValidateToolLocation),
		huh.NewInput().
			Title("Required Tools").
			Placeholder("Comma separated").
			Value(&f.RequiredTools),
		huh.NewConfirm().
			Title("Recurring?").
			Affirmative("Yes").
			Negative("No").
			Value(&f.PreserveFromPrior),
	}
	if m.Editing() {
		fields = append(fields, huh.NewConfirm().
			Title("Completed?").
			Affirmative("Done").
			Negative("Not yet").
			Value(&f.IsCompleted))
	}

	unitOpts := make([]huh.Option[string], len(model.RecurrenceUnits))
	for i, u := range model.RecurrenceUnits {
		unitOpts[i] = huh.NewOption(string(u), string(u))
	}

	recurrence := huh.NewGroup(
		huh.NewInput().
			Title("Repeat Every").
			Placeholder("2").
			Value(&f.RecurrenceInterval).
			Validate(func(s string) error {
				_, err := maintenance.ParseInterval(s)
				return err
			}),
		huh.NewSelect[string]().
			Title("Unit").
			Options(unitOpts...).
			Value(&f.RecurrenceUnit),
	).WithHideFunc(func() bool { return !f.PreserveFromPrior })

	return huh.NewForm(
		huh.NewGroup(fields...),
		recurrence,
	).WithKeyMap(ui.FormKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	msg := SubmittedMsg{
		Mode:     m.mode,
		Asset:    m.asset,
		Original: m.original,
		Form:     m.fb.form,
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
	if !m.errs.OK() {
		h -= len(m.errs) + 1
	}
	if h < 10 {
		h = 10
	}
	return h
}

var fieldOrder = []string{
	maintenance.FieldTitle,
	maintenance.FieldDescription,
	maintenance.FieldDueDate,
	maintenance.FieldCost,
	maintenance.FieldToolLocation,
	maintenance.FieldRequiredTools,
	maintenance.FieldRecurrenceInterval,
	maintenance.FieldRecurrenceUnit,
}

func errorLines(errs maintenance.Errors) []string {
	lines := make([]string, 0, len(errs))
	for _, k := range fieldOrder {
		if msg, ok := errs[k]; ok {
			lines = append(lines, "• "+msg)
		}
	}
	return lines
}

func itoa(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
