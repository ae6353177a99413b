package maintenance

import (
	"errors"
	"fmt"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// Recurrence errors. An unknown unit is a configuration fault: the chain
// must not silently stop advancing.
var (
	ErrInvalidInterval = errors.New("recurrence interval must be at least 1")
	ErrUnknownUnit     = errors.New("unknown recurrence unit")
	ErrNotRecurring    = errors.New("task is not recurring")
)

// ShouldSpawn reports whether saving updated over original completes a
// recurring task. Only a false to true completion transition on a task
// whose stored recurrence flag is set qualifies.
func ShouldSpawn(original, updated model.MaintenanceTask) bool {
	return !original.IsCompleted && updated.IsCompleted && original.PreserveFromPrior
}

// NextDueDate advances due by interval units of calendar time in loc. The
// result is midnight in loc whatever zone due was decoded in. Months and
// years keep the day of month where it exists and otherwise roll over the
// way time.AddDate does (Jan 31 + 1 month = Mar 2 or 3). A nil loc uses
// due's own location.
func NextDueDate(due time.Time, interval int, unit model.RecurrenceUnit, loc *time.Location) (time.Time, error) {
	if interval < 1 {
		return time.Time{}, fmt.Errorf("%w: got %d", ErrInvalidInterval, interval)
	}
	if loc == nil {
		loc = due.Location()
	}
	day := DateOnly(due, loc)
	switch unit {
	case model.UnitDays:
		return day.AddDate(0, 0, interval), nil
	case model.UnitWeeks:
		return day.AddDate(0, 0, 7*interval), nil
	case model.UnitMonths:
		return day.AddDate(0, interval, 0), nil
	case model.UnitYears:
		return day.AddDate(interval, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
}

// Successor builds the next occurrence of original. The schedule is read
// from original, never from the update that completed it, so the chain is
// spaced from the prior due date rather than from the completion date.
// Dates are counted on the calendar of loc. The returned task has no ID;
// the server assigns one.
func Successor(original model.MaintenanceTask, loc *time.Location) (model.MaintenanceTask, error) {
	if !original.PreserveFromPrior {
		return model.MaintenanceTask{}, ErrNotRecurring
	}

	interval := DefaultInterval
	if original.RecurrenceInterval != nil {
		interval = *original.RecurrenceInterval
	}
	unit := original.RecurrenceUnit
	if unit == "" {
		unit = DefaultUnit
	}

	next, err := NextDueDate(original.DueDate, interval, unit, loc)
	if err != nil {
		return model.MaintenanceTask{}, fmt.Errorf("computing next due date for %s: %w", original.ID, err)
	}

	s := original.Clone()
	s.ID = ""
	s.DueDate = next
	s.IsCompleted = false
	s.Status = model.MaintenanceStatusPending
	s.RecurrenceInterval = &interval
	s.RecurrenceUnit = unit
	return s, nil
}
