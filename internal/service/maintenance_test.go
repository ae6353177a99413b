package service

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
)

func recurringTask() model.MaintenanceTask {
	return model.MaintenanceTask{
		ID:                 "m-1",
		AssetID:            "a-1",
		Title:              "Change oil",
		DueDate:            date(2024, 1, 10),
		Status:             model.MaintenanceStatusPending,
		ToolLocation:       "Garage",
		RequiredTools:      []string{"Wrench"},
		PreserveFromPrior:  true,
		RecurrenceInterval: intPtr(2),
		RecurrenceUnit:     model.UnitMonths,
		AssetSnapshot:      model.AssetSnapshot{ProductName: "Mower", AssetCategory: "Garden"},
	}
}

func newMaintenanceService(f *fakeMaintenanceAPI) (*MaintenanceService, *cache.Cache) {
	c := cache.New(0)
	return NewMaintenanceService(f, c, fixedClock, discard(), nil), c
}

func TestMaintenanceService_ListClassifiesAndCaches(t *testing.T) {
	f := &fakeMaintenanceAPI{tasks: []model.MaintenanceTask{
		{ID: "1", AssetID: "a", Title: "Later", DueDate: date(2024, 4, 1)},
		{ID: "2", AssetID: "a", Title: "Late", DueDate: date(2024, 3, 1)},
		{ID: "3", AssetID: "a", Title: "Done", DueDate: date(2024, 2, 1), IsCompleted: true},
		{ID: "4", AssetID: "a", Title: "Today", DueDate: date(2024, 3, 15)},
	}}
	svc, _ := newMaintenanceService(f)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 4)

	got := map[string]maintenance.Status{}
	for _, v := range views {
		got[v.Task.ID] = v.Status
	}
	assert.Equal(t, maintenance.StatusPending, got["1"])
	assert.Equal(t, maintenance.StatusOverdue, got["2"])
	assert.Equal(t, maintenance.StatusCompleted, got["3"])
	assert.Equal(t, maintenance.StatusPending, got["4"])
	assert.Equal(t, "3", views[0].Task.ID)

	_, err = svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.listCalls)
}

func TestMaintenanceService_CreateValidationSkipsNetwork(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	svc, _ := newMaintenanceService(f)

	_, err := svc.Create(context.Background(), model.Asset{ID: "a-1"}, maintenance.Form{
		Title: "A", DueDate: "2024-03-14", ToolLocation: "Shed",
	})
	var fieldErrs maintenance.Errors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "Title must be at least 2 characters.", fieldErrs[maintenance.FieldTitle])
	assert.Equal(t, "Due date cannot be in the past.", fieldErrs[maintenance.FieldDueDate])
	assert.Empty(t, f.created)
}

func TestMaintenanceService_CreateNormalizesAndInvalidates(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	rec := &fakeRecurrenceStore{}
	c := cache.New(0)
	svc := NewMaintenanceService(f, c, fixedClock, discard(), rec)
	c.Set(cache.MaintenanceAll(), []model.MaintenanceTask{})
	c.Set(cache.MaintenanceFor("a-1"), []model.MaintenanceTask{})

	asset := model.Asset{ID: "a-1", ItemName: "Mower", BrandName: " Acme "}
	created, err := svc.Create(context.Background(), asset, maintenance.Form{
		Title:             "Sharpen blade",
		DueDate:           "2024-03-20",
		ToolLocation:      "Shed",
		RequiredTools:     "File, Gloves",
		PreserveFromPrior: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "m-1", created.ID)

	require.Len(t, f.created, 1)
	sent := f.created[0]
	assert.Equal(t, "a-1", sent.AssetID)
	assert.Equal(t, "Acme", sent.BrandName)
	assert.Equal(t, "Mower", sent.ProductName)
	assert.Equal(t, model.DefaultCategory, sent.AssetCategory)
	assert.Equal(t, []string{"File", "Gloves"}, sent.RequiredTools)
	require.NotNil(t, sent.RecurrenceInterval)
	assert.Equal(t, 2, *sent.RecurrenceInterval)
	assert.Equal(t, model.UnitWeeks, sent.RecurrenceUnit)

	_, ok := c.Get(cache.MaintenanceAll())
	assert.False(t, ok)
	_, ok = c.Get(cache.MaintenanceFor("a-1"))
	assert.False(t, ok)

	assert.Equal(t, []prefs.Recurrence{{Interval: 2, Unit: model.UnitWeeks}}, rec.saved)
}

func TestMaintenanceService_UpdateEditOverdueKeepsDate(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	svc, _ := newMaintenanceService(f)

	original := recurringTask()
	original.PreserveFromPrior = false
	original.RecurrenceInterval = nil
	original.RecurrenceUnit = ""

	form := maintenance.FormFromTask(original, today.Location())
	form.Description = "Use 10W-30"
	form.RecurrenceInterval = "5"
	form.RecurrenceUnit = "Days"

	res, err := svc.Update(context.Background(), original, form)
	require.NoError(t, err)
	assert.Nil(t, res.Successor)

	require.Len(t, f.updated, 1)
	sent := f.updated[0]
	assert.Equal(t, "m-1", sent.ID)
	assert.Equal(t, date(2024, 1, 10), sent.DueDate)
	assert.Nil(t, sent.RecurrenceInterval)
	assert.Empty(t, sent.RecurrenceUnit)
	assert.Equal(t, original.AssetSnapshot, sent.AssetSnapshot)
	assert.Empty(t, f.created)
}

func TestMaintenanceService_UpdateCompletionSpawnsSuccessor(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	svc, _ := newMaintenanceService(f)

	original := recurringTask()
	form := maintenance.FormFromTask(original, today.Location())
	form.IsCompleted = true
	// The successor follows the stored schedule, not the form.
	form.RecurrenceInterval = "9"

	res, err := svc.Update(context.Background(), original, form)
	require.NoError(t, err)
	require.NoError(t, res.SuccessorErr)
	require.NotNil(t, res.Successor)

	require.Len(t, f.created, 1)
	next := f.created[0]
	assert.Empty(t, next.ID)
	assert.Equal(t, date(2024, 3, 10), next.DueDate)
	assert.False(t, next.IsCompleted)
	assert.Equal(t, model.MaintenanceStatusPending, next.Status)
	assert.Equal(t, original.AssetSnapshot, next.AssetSnapshot)
	assert.Equal(t, original.Title, next.Title)
	assert.Equal(t, original.RequiredTools, next.RequiredTools)
}

func TestMaintenanceService_SuccessorUsesClockCalendar(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	now := func() time.Time { return time.Date(2024, 10, 22, 9, 0, 0, 0, berlin) }
	f := &fakeMaintenanceAPI{}
	svc := NewMaintenanceService(f, cache.New(0), now, discard(), nil)

	task := recurringTask()
	task.RecurrenceInterval = intPtr(1)
	task.RecurrenceUnit = model.UnitWeeks
	// Local midnight as the API returns it, in UTC.
	task.DueDate = time.Date(2024, 10, 21, 0, 0, 0, 0, berlin).UTC()

	res, err := svc.ToggleComplete(context.Background(), task)
	require.NoError(t, err)
	require.NoError(t, res.SuccessorErr)
	require.Len(t, f.created, 1)

	want := time.Date(2024, 10, 28, 0, 0, 0, 0, berlin)
	assert.True(t, want.Equal(f.created[0].DueDate), "got %s", f.created[0].DueDate)
}

func TestMaintenanceService_ToggleCompleteSpawnsOnlyWhenRecurring(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	svc, _ := newMaintenanceService(f)

	plain := recurringTask()
	plain.PreserveFromPrior = false
	res, err := svc.ToggleComplete(context.Background(), plain)
	require.NoError(t, err)
	assert.True(t, res.Task.IsCompleted)
	assert.Nil(t, res.Successor)
	assert.Empty(t, f.created)

	recurring := recurringTask()
	recurring.RecurrenceUnit = model.UnitWeeks
	res, err = svc.ToggleComplete(context.Background(), recurring)
	require.NoError(t, err)
	require.NotNil(t, res.Successor)
	assert.Equal(t, date(2024, 1, 24), res.Successor.DueDate)

	// Un-completing never spawns.
	f.created = nil
	done := recurringTask()
	done.IsCompleted = true
	res, err = svc.ToggleComplete(context.Background(), done)
	require.NoError(t, err)
	assert.False(t, res.Task.IsCompleted)
	assert.Empty(t, f.created)
	assert.Equal(t, false, f.toggled["m-1"])
}

func TestMaintenanceService_ToggleCompleteInvalidatesBothKeys(t *testing.T) {
	task := recurringTask()
	task.PreserveFromPrior = false
	f := &fakeMaintenanceAPI{tasks: []model.MaintenanceTask{task}}
	svc, c := newMaintenanceService(f)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.ListForAsset(context.Background(), "a-1")
	require.NoError(t, err)

	_, err = svc.ToggleComplete(context.Background(), task)
	require.NoError(t, err)

	_, ok := c.Get(cache.MaintenanceAll())
	assert.False(t, ok)
	_, ok = c.Get(cache.MaintenanceFor("a-1"))
	assert.False(t, ok)
}

func TestMaintenanceService_ToggleCompleteRollsBack(t *testing.T) {
	task := recurringTask()
	f := &fakeMaintenanceAPI{tasks: []model.MaintenanceTask{task}, toggleErr: errors.New("503")}
	svc, c := newMaintenanceService(f)

	_, err := svc.List(context.Background())
	require.NoError(t, err)
	_, err = svc.ListForAsset(context.Background(), "a-1")
	require.NoError(t, err)
	before, _ := cache.Lookup[[]model.MaintenanceTask](c, cache.MaintenanceAll())
	beforeAsset, _ := cache.Lookup[[]model.MaintenanceTask](c, cache.MaintenanceFor("a-1"))

	_, err = svc.ToggleComplete(context.Background(), task)
	require.Error(t, err)

	after, ok := cache.Lookup[[]model.MaintenanceTask](c, cache.MaintenanceAll())
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.False(t, after[0].IsCompleted)
	afterAsset, ok := cache.Lookup[[]model.MaintenanceTask](c, cache.MaintenanceFor("a-1"))
	require.True(t, ok)
	assert.Equal(t, beforeAsset, afterAsset)
	assert.Empty(t, f.created)
}

func TestMaintenanceService_ToggleCompleteIsOptimistic(t *testing.T) {
	task := recurringTask()
	task.PreserveFromPrior = false
	f := &fakeMaintenanceAPI{tasks: []model.MaintenanceTask{task}}
	c := cache.New(0)
	svc := NewMaintenanceService(f, c, fixedClock, discard(), nil)

	_, err := svc.List(context.Background())
	require.NoError(t, err)

	// The cached list already shows the new state when the request goes out.
	var seen bool
	spy := &observingAPI{fakeMaintenanceAPI: f, onToggle: func() {
		tasks, _ := cache.Lookup[[]model.MaintenanceTask](c, cache.MaintenanceAll())
		seen = len(tasks) == 1 && tasks[0].IsCompleted
	}}
	svc.api = spy

	_, err = svc.ToggleComplete(context.Background(), task)
	require.NoError(t, err)
	assert.True(t, seen)
}

type observingAPI struct {
	*fakeMaintenanceAPI
	onToggle func()
}

func (p *observingAPI) SetMaintenanceCompleted(ctx context.Context, id string, done bool) error {
	p.onToggle()
	return p.fakeMaintenanceAPI.SetMaintenanceCompleted(ctx, id, done)
}

func TestMaintenanceService_SuccessorFailureKeepsCompletion(t *testing.T) {
	f := &fakeMaintenanceAPI{createErr: errors.New("boom")}
	svc, _ := newMaintenanceService(f)

	res, err := svc.ToggleComplete(context.Background(), recurringTask())
	require.NoError(t, err)
	assert.True(t, res.Task.IsCompleted)
	assert.Nil(t, res.Successor)
	require.Error(t, res.SuccessorErr)
	assert.Equal(t, true, f.toggled["m-1"])
}

func TestMaintenanceService_UnknownUnitReportsSuccessorErr(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	svc, _ := newMaintenanceService(f)

	task := recurringTask()
	task.RecurrenceUnit = "Fortnights"
	res, err := svc.ToggleComplete(context.Background(), task)
	require.NoError(t, err)
	assert.ErrorIs(t, res.SuccessorErr, maintenance.ErrUnknownUnit)
	assert.Empty(t, f.created)
}

func TestMaintenanceService_Delete(t *testing.T) {
	f := &fakeMaintenanceAPI{}
	svc, c := newMaintenanceService(f)
	c.Set(cache.MaintenanceFor("a-1"), []model.MaintenanceTask{})

	require.NoError(t, svc.Delete(context.Background(), recurringTask()))
	assert.Equal(t, []string{"m-1"}, f.deleted)
	_, ok := c.Get(cache.MaintenanceFor("a-1"))
	assert.False(t, ok)
}
