package maintenance

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// DateLayout is the format due dates are entered in.
const DateLayout = "2006-01-02"

// Field keys used in Errors.
const (
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldDueDate            = "dueDate"
	FieldCost               = "costPaid"
	FieldToolLocation       = "toolLocation"
	FieldRequiredTools      = "requiredTools"
	FieldRecurrenceInterval = "recurrenceInterval"
	FieldRecurrenceUnit     = "recurrenceUnit"
)

// Recurrence defaults applied when a recurring task is saved without them.
const (
	DefaultInterval = 2
	DefaultUnit     = model.UnitWeeks
)

// Mode selects which rules apply. Only creation enforces a future due date,
// so an overdue task stays editable without being moved.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Errors maps a field key to its message. An empty map means valid.
type Errors map[string]string

// OK reports whether there are no errors.
func (e Errors) OK() bool { return len(e) == 0 }

// Error joins the messages in field order so Errors can travel as an error.
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, len(keys))
	for i, k := range keys {
		msgs[i] = e[k]
	}
	return strings.Join(msgs, " ")
}

// Form is the raw state of the add/edit maintenance form.
type Form struct {
	Title              string
	Description        string
	DueDate            string
	Cost               string
	ToolLocation       string
	RequiredTools      string
	IsCompleted        bool
	PreserveFromPrior  bool
	RecurrenceInterval string
	RecurrenceUnit     string
}

// FormFromTask fills a form from a stored task for editing.
func FormFromTask(t model.MaintenanceTask, loc *time.Location) Form {
	f := Form{
		Title:             t.Title,
		Description:       t.Description,
		ToolLocation:      t.ToolLocation,
		RequiredTools:     strings.Join(t.RequiredTools, ", "),
		IsCompleted:       t.IsCompleted,
		PreserveFromPrior: t.PreserveFromPrior,
		RecurrenceUnit:    string(t.RecurrenceUnit),
	}
	if !t.DueDate.IsZero() {
		f.DueDate = t.DueDate.In(loc).Format(DateLayout)
	}
	if t.CostPaid != nil {
		f.Cost = strconv.FormatFloat(*t.CostPaid, 'f', -1, 64)
	}
	if t.RecurrenceInterval != nil {
		f.RecurrenceInterval = strconv.Itoa(*t.RecurrenceInterval)
	}
	return f
}

// Draft is a parsed, validated form.
type Draft struct {
	Title              string
	Description        string
	DueDate            time.Time
	CostPaid           *float64
	ToolLocation       string
	RequiredTools      []string
	IsCompleted        bool
	PreserveFromPrior  bool
	RecurrenceInterval *int
	RecurrenceUnit     model.RecurrenceUnit
}

// Parse validates f and converts it into a Draft. Dates are interpreted in
// today's location. Nothing is sent anywhere when errors are returned.
func Parse(f Form, mode Mode, today time.Time) (Draft, Errors) {
	errs := Errors{}
	d := Draft{
		Title:             strings.TrimSpace(f.Title),
		Description:       strings.TrimSpace(f.Description),
		ToolLocation:      strings.TrimSpace(f.ToolLocation),
		RequiredTools:     SplitTools(f.RequiredTools),
		IsCompleted:       f.IsCompleted,
		PreserveFromPrior: f.PreserveFromPrior,
	}

	if err := ValidateTitle(f.Title); err != nil {
		errs[FieldTitle] = err.Error()
	}
	if err := ValidateToolLocation(f.ToolLocation); err != nil {
		errs[FieldToolLocation] = err.Error()
	}

	due, err := ParseDueDate(f.DueDate, today.Location())
	if err != nil {
		errs[FieldDueDate] = err.Error()
	} else {
		d.DueDate = due
		if mode == ModeCreate && due.Before(DateOnly(today, today.Location())) {
			errs[FieldDueDate] = "Due date cannot be in the past."
		}
	}

	cost, err := ParseCost(f.Cost)
	if err != nil {
		errs[FieldCost] = err.Error()
	} else {
		d.CostPaid = cost
	}

	if f.PreserveFromPrior {
		interval, err := ParseInterval(f.RecurrenceInterval)
		if err != nil {
			errs[FieldRecurrenceInterval] = err.Error()
		} else {
			d.RecurrenceInterval = interval
		}
		unit, err := ParseUnit(f.RecurrenceUnit)
		if err != nil {
			errs[FieldRecurrenceUnit] = err.Error()
		} else {
			d.RecurrenceUnit = unit
		}
	}

	return d, errs
}

// ValidateTitle requires at least two characters after trimming.
func ValidateTitle(s string) error {
	return validateMinLen("Title", s, 2)
}

// ValidateToolLocation requires at least two characters after trimming.
func ValidateToolLocation(s string) error {
	return validateMinLen("Tool location", s, 2)
}

func validateMinLen(label, s string, n int) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("%s is required.", label)
	}
	if len([]rune(s)) < n {
		return fmt.Errorf("%s must be at least %d characters.", label, n)
	}
	return nil
}

// ParseDueDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDueDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("Due date is required.")
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, errors.New("Due date must use the YYYY-MM-DD format.")
	}
	return t, nil
}

// ParseCost parses an optional non-negative amount. An empty string means
// not provided and yields nil; "0" yields a pointer to zero.
func ParseCost(s string) (*float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, errors.New("Cost must be a number.")
	}
	if v < 0 {
		return nil, errors.New("Cost cannot be negative.")
	}
	return &v, nil
}

// ParseInterval parses an optional recurrence interval. Missing means the
// default applies later; a supplied value must be a whole number >= 1.
func ParseInterval(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return nil, errors.New("Recurrence interval must be a whole number of at least 1.")
	}
	return &n, nil
}

// ParseUnit parses an optional recurrence unit, case-insensitively.
func ParseUnit(s string) (model.RecurrenceUnit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, u := range model.RecurrenceUnits {
		if strings.EqualFold(s, string(u)) {
			return u, nil
		}
	}
	return "", errors.New("Recurrence unit must be one of Days, Weeks, Months or Years.")
}

// SplitTools turns "a, b ,, c" into [a b c].
func SplitTools(s string) []string {
	tools := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tools = append(tools, part)
		}
	}
	return tools
}
