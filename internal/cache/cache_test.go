package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey_String(t *testing.T) {
	assert.Equal(t, "maintenance:*", MaintenanceAll().String())
	assert.Equal(t, "maintenance:asset-1", MaintenanceFor("asset-1").String())
	assert.Equal(t, "borrow-requests:owner", Borrow("owner").String())
}

func TestMaintenanceFor_EmptyScopeDoesNotShadowAll(t *testing.T) {
	assert.NotEqual(t, MaintenanceAll(), MaintenanceFor(""))

	c := New(0)
	c.Set(MaintenanceAll(), "all")
	c.Set(MaintenanceFor(""), "empty")

	v, ok := c.Get(MaintenanceAll())
	require.True(t, ok)
	assert.Equal(t, "all", v)
}

func TestQuery_FetchesOnce(t *testing.T) {
	c := New(0)
	calls := 0
	fetch := func(context.Context) ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Query(context.Background(), c, Assets(), fetch)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, v)
	}
	assert.Equal(t, 1, calls)
}

func TestQuery_ErrorNotCached(t *testing.T) {
	c := New(0)
	boom := errors.New("boom")
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, boom
		}
		return 7, nil
	}

	_, err := Query(context.Background(), c, Asset("a1"), fetch)
	require.ErrorIs(t, err, boom)

	v, err := Query(context.Background(), c, Asset("a1"), fetch)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 2, calls)
}

func TestQuery_TypeMismatchRefetches(t *testing.T) {
	c := New(0)
	c.Set(Assets(), "not a slice")
	v, err := Query(context.Background(), c, Assets(), func(context.Context) ([]int, error) {
		return []int{1}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
}

func TestInvalidate(t *testing.T) {
	c := New(0)
	c.Set(MaintenanceAll(), 1)
	c.Set(MaintenanceFor("a1"), 2)
	c.Set(MaintenanceFor("a2"), 3)
	c.Set(Assets(), 4)

	c.Invalidate(MaintenanceAll(), MaintenanceFor("a1"))
	_, ok := c.Get(MaintenanceAll())
	assert.False(t, ok)
	_, ok = c.Get(MaintenanceFor("a1"))
	assert.False(t, ok)
	_, ok = c.Get(MaintenanceFor("a2"))
	assert.True(t, ok)

	c.InvalidateKind(KindMaintenance)
	_, ok = c.Get(MaintenanceFor("a2"))
	assert.False(t, ok)
	_, ok = c.Get(Assets())
	assert.True(t, ok)
}

func TestCache_TTL(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set(Assets(), 1)
	_, ok := c.Get(Assets())
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = c.Get(Assets())
	assert.False(t, ok)
}

func TestMutation_Commit(t *testing.T) {
	c := New(0)
	c.Set(Assets(), []string{"a"})

	m := NewMutation[[]string](c, Assets())
	assert.NotEmpty(t, m.ID)
	prev, err := m.Begin()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, prev)

	require.NoError(t, m.Apply(append([]string{}, "a", "b")))
	require.NoError(t, m.Commit())

	v, _ := Lookup[[]string](c, Assets())
	assert.Equal(t, []string{"a", "b"}, v)
}

func TestMutation_RevertRestoresSnapshot(t *testing.T) {
	c := New(0)
	c.Set(Assets(), []string{"a"})

	m := NewMutation[[]string](c, Assets())
	_, err := m.Begin()
	require.NoError(t, err)
	require.NoError(t, m.Apply([]string{"x"}))
	require.NoError(t, m.Revert())

	v, ok := Lookup[[]string](c, Assets())
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, v)
}

func TestMutation_RevertRemovesAbsentEntry(t *testing.T) {
	c := New(0)
	m := NewMutation[int](c, Asset("a1"))
	_, err := m.Begin()
	require.NoError(t, err)
	require.NoError(t, m.Apply(5))
	require.NoError(t, m.Revert())

	_, ok := c.Get(Asset("a1"))
	assert.False(t, ok)
}

func TestMutation_InvalidTransitions(t *testing.T) {
	c := New(0)

	m := NewMutation[int](c, Assets())
	assert.ErrorIs(t, m.Apply(1), ErrInvalidTransition)
	assert.ErrorIs(t, m.Commit(), ErrInvalidTransition)
	assert.ErrorIs(t, m.Revert(), ErrInvalidTransition)

	_, err := m.Begin()
	require.NoError(t, err)
	_, err = m.Begin()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.ErrorIs(t, m.Commit(), ErrInvalidTransition)

	require.NoError(t, m.Apply(1))
	assert.ErrorIs(t, m.Apply(2), ErrInvalidTransition)
	require.NoError(t, m.Commit())
	assert.ErrorIs(t, m.Revert(), ErrInvalidTransition)
	assert.ErrorIs(t, m.Commit(), ErrInvalidTransition)
}
