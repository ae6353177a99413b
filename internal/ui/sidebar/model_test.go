package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_ToggleEmitsState(t *testing.T) {
	m := New(true)
	cmd := m.Toggle()
	require.NotNil(t, cmd)
	assert.Equal(t, ToggledMsg{Expanded: false}, cmd())
	assert.False(t, m.Expanded())

	cmd = m.Toggle()
	assert.Equal(t, ToggledMsg{Expanded: true}, cmd())
}

func TestModel_NextWraps(t *testing.T) {
	m := New(false)
	assert.Equal(t, SectionAssets, m.Active())

	m.Next()
	assert.Equal(t, SectionMaintenance, m.Active())
	m.Next()
	assert.Equal(t, SectionBorrowing, m.Active())
	cmd := m.Next()
	assert.Equal(t, SectionAssets, m.Active())
	assert.Equal(t, SelectedMsg{Section: SectionAssets}, cmd())
}

func TestModel_ViewLabels(t *testing.T) {
	m := New(true)
	m.SetHeight(10)
	assert.Contains(t, m.View(), "Maintenance")

	m.SetExpanded(false)
	assert.NotContains(t, m.View(), "Maintenance")
}
