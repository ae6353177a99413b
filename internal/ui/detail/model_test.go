package detail

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

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func TestNextDueSkipsCompleted(t *testing.T) {
	views := []maintenance.View{
		{Task: model.MaintenanceTask{Title: "done", DueDate: day(1)}, Status: maintenance.StatusCompleted},
		{Task: model.MaintenanceTask{Title: "later", DueDate: day(20)}, Status: maintenance.StatusPending},
		{Task: model.MaintenanceTask{Title: "soon", DueDate: day(5)}, Status: maintenance.StatusOverdue},
	}
	next, ok := nextDue(views)
	require.True(t, ok)
	assert.Equal(t, "soon", next.Task.Title)

	_, ok = nextDue(views[:1])
	assert.False(t, ok)
}

func TestLoadedRendersAssetAndSummary(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)
	m.SetLoading(true)
	m, _ = m.Update(LoadedMsg{
		Asset:  model.Asset{ID: "a1", ItemName: "Drill", BrandName: "Bosch"},
		Images: []string{"https://img/1.png"},
		Maintenance: []maintenance.View{
			{Task: model.MaintenanceTask{Title: "Oil", DueDate: day(5)}, Status: maintenance.StatusOverdue},
		},
	})

	content := m.renderContent()
	assert.Contains(t, content, "Drill")
	assert.Contains(t, content, "Bosch")
	assert.Contains(t, content, "https://img/1.png")
	assert.Contains(t, content, "1 overdue")
	assert.Contains(t, content, "next: Oil on 2024-03-05")
}

func TestOpenMaintenanceEmitsAction(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 100, 40)
	m, _ = m.Update(LoadedMsg{Asset: model.Asset{ID: "a1", ItemName: "Drill"}})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	require.NotNil(t, cmd)
	msg, ok := cmd().(ActionMsg)
	require.True(t, ok)
	assert.Equal(t, ActionMaintenance, msg.Action)
	assert.Equal(t, "a1", msg.Asset.ID)
}
