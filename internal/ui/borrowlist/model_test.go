package borrowlist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/keys"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

func loaded(role model.BorrowRole, status model.BorrowStatus) LoadedMsg {
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	return LoadedMsg{Role: role, Requests: []model.BorrowRequest{{
		ID: "b1", AssetID: "a1", AssetName: "Ladder",
		StartDate: start, EndDate: start.AddDate(0, 0, 3), Status: status,
	}}}
}

func TestOwnerCanApprovePending(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m, _ = m.Update(loaded(model.RoleOwner, model.BorrowPending))

	_, cmd := m.Update(runeKey('a'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(ActionMsg)
	require.True(t, ok)
	assert.Equal(t, model.ActionApprove, msg.Action)
	assert.Equal(t, "b1", msg.Request.ID)
}

func TestDisallowedActionIsIgnored(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m, _ = m.Update(loaded(model.RoleOwner, model.BorrowPending))

	assert.Nil(t, m.actionFor(runeKey('c')))
	assert.Nil(t, m.actionFor(runeKey('R')))
}

func TestSwitchTabToOutgoing(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m, _ = m.Update(loaded(model.RoleRequester, model.BorrowPending))
	assert.Equal(t, model.RoleOwner, m.Role())

	m, _ = m.Update(runeKey('l'))
	assert.Equal(t, model.RoleRequester, m.Role())
	assert.Contains(t, m.View(), "Ladder")

	_, cmd := m.Update(runeKey('c'))
	require.NotNil(t, cmd)
	assert.Equal(t, model.ActionCancel, cmd().(ActionMsg).Action)
}
