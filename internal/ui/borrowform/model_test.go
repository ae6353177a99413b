package borrowform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

func TestRequestDefaultsToOneWeek(t *testing.T) {
	m := New(80, 24)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local)
	m.StartRequest(model.Asset{ID: "a1", ItemName: "Ladder"}, today)

	msg, ok := m.handleSubmit()().(RequestSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "a1", msg.AssetID)
	assert.Equal(t, today, msg.StartDate)
	assert.Equal(t, today.AddDate(0, 0, 7), msg.EndDate)
	assert.Contains(t, m.View(), "Request to Borrow: Ladder")
}

func TestDecisionUsesEndDate(t *testing.T) {
	m := New(80, 24)
	end := time.Date(2024, 4, 4, 0, 0, 0, 0, time.Local)
	m.StartDecision(model.BorrowRequest{ID: "b1", AssetName: "Ladder", EndDate: end})
	m.fb.note = "  keep it dry "

	msg, ok := m.handleSubmit()().(DecisionSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "b1", msg.Request.ID)
	assert.Equal(t, "keep it dry", msg.Note)
	require.NotNil(t, msg.DueDate)
	assert.True(t, end.Equal(*msg.DueDate))
}

func TestDecisionWithoutDueDate(t *testing.T) {
	m := New(80, 24)
	m.StartDecision(model.BorrowRequest{ID: "b1"})

	msg := m.handleSubmit()().(DecisionSubmittedMsg)
	assert.Nil(t, msg.DueDate)
}

func TestValidateDate(t *testing.T) {
	assert.Error(t, validateDate(""))
	assert.Error(t, validateDate("tomorrow"))
	assert.NoError(t, validateDate("2024-03-15"))
	assert.NoError(t, validateOptionalDate(""))
}
