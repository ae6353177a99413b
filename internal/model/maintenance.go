package model

import "time"

// RecurrenceUnit is the calendar unit a recurring task advances by.
type RecurrenceUnit string

const (
	UnitDays   RecurrenceUnit = "Days"
	UnitWeeks  RecurrenceUnit = "Weeks"
	UnitMonths RecurrenceUnit = "Months"
	UnitYears  RecurrenceUnit = "Years"
)

// RecurrenceUnits lists the supported units in display order.
var RecurrenceUnits = []RecurrenceUnit{UnitDays, UnitWeeks, UnitMonths, UnitYears}

// Valid reports whether u is one of the supported recurrence units.
func (u RecurrenceUnit) Valid() bool {
	for _, known := range RecurrenceUnits {
		if u == known {
			return true
		}
	}
	return false
}

// Stored maintenance status values. The displayed status (overdue,
// pending, completed) is derived on every read and never written.
const (
	MaintenanceStatusPending   = "pending"
	MaintenanceStatusCompleted = "completed"
)

// AssetSnapshot holds asset attributes copied onto a maintenance task when
// it is created. Later asset edits do not change existing tasks.
type AssetSnapshot struct {
	BrandName        string   `json:"brandName,omitempty"`
	ProductName      string   `json:"productName,omitempty"`
	AssetCategory    string   `json:"assetCategory,omitempty"`
	PurchaseCost     *float64 `json:"purchaseCost,omitempty"`
	PurchaseLocation string   `json:"purchaseLocation,omitempty"`
}

// MaintenanceTask is one upkeep action tied to one asset.
type MaintenanceTask struct {
	ID          string    `json:"id,omitempty"`
	AssetID     string    `json:"assetId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueDate     time.Time `json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
	Status      string    `json:"status,omitempty"`

	// CostPaid is nil when no cost was entered; zero is a real value.
	CostPaid      *float64 `json:"costPaid,omitempty"`
	ToolLocation  string   `json:"toolLocation"`
	RequiredTools []string `json:"requiredTools"`

	PreserveFromPrior  bool           `json:"preserveFromPrior"`
	RecurrenceInterval *int           `json:"recurrenceInterval,omitempty"`
	RecurrenceUnit     RecurrenceUnit `json:"recurrenceUnit,omitempty"`

	AssetSnapshot
}

// Clone returns a deep copy of t.
func (t MaintenanceTask) Clone() MaintenanceTask {
	c := t
	if t.CostPaid != nil {
		v := *t.CostPaid
		c.CostPaid = &v
	}
	if t.RecurrenceInterval != nil {
		v := *t.RecurrenceInterval
		c.RecurrenceInterval = &v
	}
	if t.PurchaseCost != nil {
		v := *t.PurchaseCost
		c.PurchaseCost = &v
	}
	if t.RequiredTools != nil {
		c.RequiredTools = append([]string(nil), t.RequiredTools...)
	}
	return c
}
