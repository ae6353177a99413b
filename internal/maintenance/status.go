// Package maintenance holds the rules that govern a maintenance task's
// lifecycle: status derivation, form validation, recurrence and the
// normalization applied before a task is written to the API.
package maintenance

import (
	"sort"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// Status is the display status of a task. It is derived from the stored
// fields and the current date on every read and is never persisted.
type Status string

const (
	StatusOverdue   Status = "overdue"
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Label returns the user-facing name for s.
func (s Status) Label() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusCompleted:
		return "Completed"
	default:
		return "Upcoming"
	}
}

// DateOnly truncates t to midnight in loc.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DeriveStatus classifies a task. A completed task is never overdue, and
// a task due today is not overdue until tomorrow.
func DeriveStatus(isCompleted bool, dueDate, today time.Time) Status {
	if isCompleted {
		return StatusCompleted
	}
	loc := today.Location()
	if DateOnly(dueDate, loc).Before(DateOnly(today, loc)) {
		return StatusOverdue
	}
	return StatusPending
}

// View pairs a task with the status derived for it.
type View struct {
	Task   model.MaintenanceTask
	Status Status
}

// Classify derives the status of every task against today.
func Classify(tasks []model.MaintenanceTask, today time.Time) []View {
	views := make([]View, len(tasks))
	for i, t := range tasks {
		views[i] = View{Task: t, Status: DeriveStatus(t.IsCompleted, t.DueDate, today)}
	}
	return views
}

// StatusFilter selects which derived statuses a list shows.
type StatusFilter string

const (
	FilterAll       StatusFilter = "all"
	FilterOverdue   StatusFilter = "overdue"
	FilterUpcoming  StatusFilter = "upcoming"
	FilterCompleted StatusFilter = "completed"
)

// StatusFilters is the cycle order used by list views.
var StatusFilters = []StatusFilter{FilterAll, FilterOverdue, FilterUpcoming, FilterCompleted}

// Matches reports whether s passes the filter.
func (f StatusFilter) Matches(s Status) bool {
	switch f {
	case FilterOverdue:
		return s == StatusOverdue
	case FilterUpcoming:
		return s == StatusPending
	case FilterCompleted:
		return s == StatusCompleted
	default:
		return true
	}
}

// Filter returns the views whose status passes f.
func Filter(views []View, f StatusFilter) []View {
	out := make([]View, 0, len(views))
	for _, v := range views {
		if f.Matches(v.Status) {
			out = append(out, v)
		}
	}
	return out
}

// SortByDueDate orders views by due date ascending, then by title.
func SortByDueDate(views []View) {
	sort.SliceStable(views, func(i, j int) bool {
		a, b := views[i].Task, views[j].Task
		if !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.Title < b.Title
	})
}

// Summary counts tasks per derived status.
type Summary struct {
	Overdue   int
	Pending   int
	Completed int
}

// Summarize counts views per status.
func Summarize(views []View) Summary {
	var s Summary
	for _, v := range views {
		switch v.Status {
		case StatusOverdue:
			s.Overdue++
		case StatusCompleted:
			s.Completed++
		default:
			s.Pending++
		}
	}
	return s
}
