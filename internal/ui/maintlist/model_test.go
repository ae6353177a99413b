package maintlist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func views() []maintenance.View {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []maintenance.View{
		{Task: model.MaintenanceTask{ID: "t1", Title: "Oil", DueDate: due}, Status: maintenance.StatusOverdue},
		{Task: model.MaintenanceTask{ID: "t2", Title: "Wax", DueDate: due.AddDate(0, 1, 0)}, Status: maintenance.StatusPending},
		{Task: model.MaintenanceTask{ID: "t3", Title: "Tires", DueDate: due, IsCompleted: true}, Status: maintenance.StatusCompleted},
	}
}

func loadedModel() Model {
	m := New(keys.DefaultKeyMap(), 100, 20)
	m.SetScope("", "")
	m, _ = m.Update(LoadedMsg{Views: views()})
	return m
}

func TestCycleFilterNarrowsItems(t *testing.T) {
	m := loadedModel()
	assert.Len(t, m.list.Items(), 3)

	m, _ = m.Update(runeKey('s'))
	assert.Equal(t, maintenance.FilterOverdue, m.Filter())
	require.Len(t, m.list.Items(), 1)
	assert.Equal(t, "t1", m.list.Items()[0].(TaskItem).View.Task.ID)

	m, _ = m.Update(runeKey('s'))
	m, _ = m.Update(runeKey('s'))
	assert.Equal(t, maintenance.FilterCompleted, m.Filter())
	m, _ = m.Update(runeKey('s'))
	assert.Equal(t, maintenance.FilterAll, m.Filter())
}

func TestLoadedForOtherScopeIsIgnored(t *testing.T) {
	m := loadedModel()
	m, _ = m.Update(LoadedMsg{AssetID: "elsewhere", Views: nil})
	assert.Len(t, m.list.Items(), 3)
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	m := loadedModel()

	m, cmd := m.Update(runeKey('d'))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), `Delete "Oil"?`)

	m, cmd = m.Update(runeKey('y'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(DeleteTaskMsg)
	require.True(t, ok)
	assert.Equal(t, "t1", msg.Task.ID)
	assert.Nil(t, m.confirming)
}

func TestToggleSkipsPendingTask(t *testing.T) {
	m := loadedModel()
	m.SetPending("t1", "saving...")

	_, cmd := m.Update(runeKey('x'))
	assert.Nil(t, cmd)

	m.SetPending("t1", "")
	_, cmd = m.Update(runeKey('x'))
	require.NotNil(t, cmd)
	assert.Equal(t, "t1", cmd().(ToggleTaskMsg).Task.ID)
}

func TestRecurrenceLabel(t *testing.T) {
	n := 3
	v := maintenance.View{Task: model.MaintenanceTask{PreserveFromPrior: true, RecurrenceInterval: &n, RecurrenceUnit: model.UnitMonths}}
	assert.Equal(t, "every 3 months", recurrenceLabel(v))

	v.Task.RecurrenceInterval = nil
	v.Task.RecurrenceUnit = ""
	assert.Equal(t, "every 2 weeks", recurrenceLabel(v))

	v.Task.PreserveFromPrior = false
	assert.Empty(t, recurrenceLabel(v))
}
