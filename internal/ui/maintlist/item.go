package maintlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/theme"
)

// TaskItem wraps a classified task so it can be used in a bubbles/list.
type TaskItem struct {
	View    maintenance.View
	Pending string
}

// FilterValue returns the string used for filtering.
func (i TaskItem) FilterValue() string { return i.View.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.View.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	t := i.View.Task
	parts := []string{t.DueDate.Format(maintenance.DateLayout)}
	if t.ProductName != "" {
		parts = append(parts, t.ProductName)
	}
	if r := recurrenceLabel(i.View); r != "" {
		parts = append(parts, r)
	}
	return strings.Join(parts, " | ")
}

func recurrenceLabel(v maintenance.View) string {
	t := v.Task
	if !t.PreserveFromPrior {
		return ""
	}
	n := maintenance.DefaultInterval
	if t.RecurrenceInterval != nil {
		n = *t.RecurrenceInterval
	}
	unit := t.RecurrenceUnit
	if unit == "" {
		unit = maintenance.DefaultUnit
	}
	return fmt.Sprintf("every %d %s", n, strings.ToLower(string(unit)))
}

// TaskDelegate implements list.ItemDelegate for rendering task rows.
type TaskDelegate struct{}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single row: checkbox, status badge, title, details and
// any in-flight label.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}

	box := "[ ]"
	if ti.View.Task.IsCompleted {
		box = "[x]"
	}
	badge := theme.StatusStyle(string(ti.View.Status)).Width(11).Render(ti.View.Status.Label())
	line := fmt.Sprintf("%s %s %s  %s", box, badge, ti.Title(), theme.DimmedStyle.Render(ti.Description()))
	if ti.Pending != "" {
		line += "  " + theme.PendingStyle.Render(ti.Pending)
	}

	if index == m.Index() {
		fmt.Fprint(w, theme.SelectedItemStyle.Render(line))
		return
	}
	fmt.Fprint(w, theme.ListItemStyle.Render(line))
}
