package maintenance

import (
	"strings"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// Normalize builds the payload written to the API from a validated draft
// and the owning asset's snapshot.
func Normalize(d Draft, assetID string, snap model.AssetSnapshot) model.MaintenanceTask {
	t := model.MaintenanceTask{
		AssetID:           assetID,
		Title:             strings.TrimSpace(d.Title),
		Description:       strings.TrimSpace(d.Description),
		DueDate:           d.DueDate,
		IsCompleted:       d.IsCompleted,
		ToolLocation:      strings.TrimSpace(d.ToolLocation),
		RequiredTools:     d.RequiredTools,
		PreserveFromPrior: d.PreserveFromPrior,
		AssetSnapshot:     NormalizeSnapshot(snap),
	}
	if t.RequiredTools == nil {
		t.RequiredTools = []string{}
	}
	if d.CostPaid != nil {
		v := *d.CostPaid
		t.CostPaid = &v
	}
	if d.RecurrenceInterval != nil {
		v := *d.RecurrenceInterval
		t.RecurrenceInterval = &v
	}
	t.RecurrenceUnit = d.RecurrenceUnit
	t.Status = storedStatus(t.IsCompleted)
	return StripRecurrence(t)
}

// StripRecurrence enforces the recurrence invariant on t: a non-recurring
// task carries no interval or unit, and a recurring one always carries
// both, defaulting to every two weeks.
func StripRecurrence(t model.MaintenanceTask) model.MaintenanceTask {
	if !t.PreserveFromPrior {
		t.RecurrenceInterval = nil
		t.RecurrenceUnit = ""
		return t
	}
	if t.RecurrenceInterval == nil {
		n := DefaultInterval
		t.RecurrenceInterval = &n
	}
	if t.RecurrenceUnit == "" {
		t.RecurrenceUnit = DefaultUnit
	}
	return t
}

// NormalizeSnapshot trims the snapshot strings and defaults the category.
func NormalizeSnapshot(s model.AssetSnapshot) model.AssetSnapshot {
	s.BrandName = strings.TrimSpace(s.BrandName)
	s.ProductName = strings.TrimSpace(s.ProductName)
	s.PurchaseLocation = strings.TrimSpace(s.PurchaseLocation)
	s.AssetCategory = strings.TrimSpace(s.AssetCategory)
	if s.AssetCategory == "" {
		s.AssetCategory = model.DefaultCategory
	}
	return s
}

// WithCompletion returns a copy of t with its completion flag and stored
// status set to done.
func WithCompletion(t model.MaintenanceTask, done bool) model.MaintenanceTask {
	c := t.Clone()
	c.IsCompleted = done
	c.Status = storedStatus(done)
	return c
}

func storedStatus(done bool) string {
	if done {
		return model.MaintenanceStatusCompleted
	}
	return model.MaintenanceStatusPending
}
