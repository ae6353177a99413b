// Package borrowform collects the input for a borrow request or for an
// owner's approval of one.
package borrowform

import (
	"errors"
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

// RequestSubmittedMsg carries a new borrow request.
type RequestSubmittedMsg struct {
	AssetID   string
	StartDate time.Time
	EndDate   time.Time
	Note      string
}

// DecisionSubmittedMsg carries an owner's approval of a request.
type DecisionSubmittedMsg struct {
	Request model.BorrowRequest
	Note    string
	DueDate *time.Time
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

type mode int

const (
	modeRequest mode = iota
	modeDecision
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	assetID string
	start   string
	end     string
	dueDate string
	note    string
}

// Model is the Bubble Tea model for the borrow forms.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	mode    mode
	request model.BorrowRequest
	asset   string
	errMsg  string
	width   int
	height  int
}

// New creates a new borrow form model.
func New(width, height int) Model {
	return Model{fb: &formBindings{}, width: width, height: height}
}

// StartRequest opens the form for asking to borrow asset.
func (m *Model) StartRequest(asset model.Asset, today time.Time) tea.Cmd {
	m.mode = modeRequest
	m.asset = asset.ItemName
	m.errMsg = ""
	*m.fb = formBindings{
		assetID: asset.ID,
		start:   today.Format(maintenance.DateLayout),
		end:     today.AddDate(0, 0, 7).Format(maintenance.DateLayout),
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Asset ID").
			Value(&m.fb.assetID).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("asset is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("From").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.start).
			Validate(validateDate),
		huh.NewInput().
			Title("Until").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.end).
			Validate(validateDate),
		huh.NewText().
			Title("Note to owner").
			Value(&m.fb.note),
	)).WithKeyMap(ui.FormKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
	return m.form.Init()
}

// StartDecision opens the approval form for req. The return date starts
// at the requested end date.
func (m *Model) StartDecision(req model.BorrowRequest) tea.Cmd {
	m.mode = modeDecision
	m.request = req
	m.asset = req.AssetName
	m.errMsg = ""
	*m.fb = formBindings{}
	if !req.EndDate.IsZero() {
		m.fb.dueDate = req.EndDate.Format(maintenance.DateLayout)
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Return By").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewText().
			Title("Note to requester").
			Value(&m.fb.note),
	)).WithKeyMap(ui.FormKeyMap()).WithWidth(m.formWidth()).WithHeight(m.formHeight())
	return m.form.Init()
}

// ShowError displays msg above the form without clearing its input.
func (m *Model) ShowError(msg string) { m.errMsg = msg }

// Update handles messages for the borrow form.
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

func (m Model) handleSubmit() tea.Cmd {
	note := strings.TrimSpace(m.fb.note)
	if m.mode == modeDecision {
		msg := DecisionSubmittedMsg{Request: m.request, Note: note}
		if d, err := parseDate(m.fb.dueDate); err == nil && !d.IsZero() {
			msg.DueDate = &d
		}
		return func() tea.Msg { return msg }
	}

	start, _ := parseDate(m.fb.start)
	end, _ := parseDate(m.fb.end)
	msg := RequestSubmittedMsg{
		AssetID:   strings.TrimSpace(m.fb.assetID),
		StartDate: start,
		EndDate:   end,
		Note:      note,
	}
	return func() tea.Msg { return msg }
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Request to Borrow"
	if m.mode == modeDecision {
		titleText = "Approve Request"
	}
	if m.asset != "" {
		titleText += ": " + m.asset
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

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(maintenance.DateLayout, s, time.Local)
}

func validateDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("date is required")
	}
	return validateOptionalDate(s)
}

func validateOptionalDate(s string) error {
	if _, err := parseDate(s); err != nil {
		return errors.New("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
