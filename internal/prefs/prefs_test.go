package prefs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
	"github.com/GportDev/the-hippo-exchange-sub000/tests/testutil"
)

func newPrefs(t *testing.T) (*prefs.Preferences, prefs.Storage) {
	t.Helper()
	s := testutil.NewTestStore(t)
	return prefs.New(s, slog.New(slog.NewTextHandler(io.Discard, nil))), s
}

func TestSidebarExpanded(t *testing.T) {
	p, _ := newPrefs(t)
	ctx := context.Background()

	assert.True(t, p.SidebarExpanded(ctx))

	require.NoError(t, p.SetSidebarExpanded(ctx, false))
	assert.False(t, p.SidebarExpanded(ctx))
}

func TestSidebarExpanded_GarbageDefaultsOpen(t *testing.T) {
	p, s := newPrefs(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, prefs.KeySidebarExpanded, "maybe"))
	assert.True(t, p.SidebarExpanded(ctx))
}

func TestRecurrenceDefaults(t *testing.T) {
	p, s := newPrefs(t)
	ctx := context.Background()

	assert.Equal(t, prefs.Recurrence{Interval: 2, Unit: model.UnitWeeks}, p.RecurrenceDefaults(ctx))

	want := prefs.Recurrence{Interval: 3, Unit: model.UnitMonths}
	require.NoError(t, p.SetRecurrenceDefaults(ctx, want))
	assert.Equal(t, want, p.RecurrenceDefaults(ctx))

	assert.Error(t, p.SetRecurrenceDefaults(ctx, prefs.Recurrence{Interval: 0, Unit: model.UnitDays}))
	assert.Error(t, p.SetRecurrenceDefaults(ctx, prefs.Recurrence{Interval: 1, Unit: "Hours"}))
	assert.Equal(t, want, p.RecurrenceDefaults(ctx))

	require.NoError(t, s.Set(ctx, prefs.KeyRecurrenceDefaults, `{"interval":1,"unit":"Fortnights"}`))
	assert.Equal(t, prefs.DefaultRecurrence, p.RecurrenceDefaults(ctx))

	require.NoError(t, s.Set(ctx, prefs.KeyRecurrenceDefaults, `{`))
	assert.Equal(t, prefs.DefaultRecurrence, p.RecurrenceDefaults(ctx))
}

func TestSignupDraft(t *testing.T) {
	p, _ := newPrefs(t)
	ctx := context.Background()

	_, ok := p.SignupDraft(ctx)
	assert.False(t, ok)

	draft := prefs.SignupDraft{Email: "sam@example.com", FirstName: "Sam"}
	require.NoError(t, p.SetSignupDraft(ctx, draft))
	got, ok := p.SignupDraft(ctx)
	require.True(t, ok)
	assert.Equal(t, draft, got)

	require.NoError(t, p.ClearSignupDraft(ctx))
	_, ok = p.SignupDraft(ctx)
	assert.False(t, ok)
}

func TestOnChange(t *testing.T) {
	p, _ := newPrefs(t)
	ctx := context.Background()

	var seen []string
	unsubscribe := p.OnChange(prefs.KeySidebarExpanded, func(v string) { seen = append(seen, v) })

	require.NoError(t, p.SetSidebarExpanded(ctx, false))
	require.NoError(t, p.SetSidebarExpanded(ctx, true))
	unsubscribe()
	require.NoError(t, p.SetSidebarExpanded(ctx, false))

	assert.Equal(t, []string{"false", "true"}, seen)
}
