package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
)

// Result is the outcome of a write that may complete a recurring task.
// SuccessorErr is set when the completion was saved but the next
// occurrence could not be created; the completion is not rolled back.
type Result struct {
	Task         model.MaintenanceTask
	Successor    *model.MaintenanceTask
	SuccessorErr error
}

// MaintenanceService manages maintenance tasks.
type MaintenanceService struct {
	api     MaintenanceAPI
	cache   *cache.Cache
	now     Clock
	logger  *slog.Logger
	recurse RecurrenceStore
}

// NewMaintenanceService creates the service. recurse may be nil.
func NewMaintenanceService(
	api MaintenanceAPI,
	c *cache.Cache,
	now Clock,
	logger *slog.Logger,
	recurse RecurrenceStore,
) *MaintenanceService {
	return &MaintenanceService{api: api, cache: c, now: now, logger: logger, recurse: recurse}
}

// List returns every task, classified against today and sorted by due date.
func (s *MaintenanceService) List(ctx context.Context) ([]maintenance.View, error) {
	tasks, err := cache.Query(ctx, s.cache, cache.MaintenanceAll(), s.api.ListMaintenance)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance: %w", err)
	}
	return s.classify(tasks), nil
}

// ListForAsset returns one asset's tasks, classified and sorted.
func (s *MaintenanceService) ListForAsset(ctx context.Context, assetID string) ([]maintenance.View, error) {
	tasks, err := cache.Query(ctx, s.cache, cache.MaintenanceFor(assetID),
		func(ctx context.Context) ([]model.MaintenanceTask, error) {
			return s.api.ListAssetMaintenance(ctx, assetID)
		})
	if err != nil {
		return nil, fmt.Errorf("listing maintenance for asset %s: %w", assetID, err)
	}
	return s.classify(tasks), nil
}

// Status is recomputed on every read, so the cache holds raw tasks only.
func (s *MaintenanceService) classify(tasks []model.MaintenanceTask) []maintenance.View {
	views := maintenance.Classify(tasks, s.now())
	maintenance.SortByDueDate(views)
	return views
}

// Create validates form and stores a new task on asset. Validation
// failures are returned as maintenance.Errors and never reach the API.
func (s *MaintenanceService) Create(
	ctx context.Context,
	asset model.Asset,
	form maintenance.Form,
) (model.MaintenanceTask, error) {
	draft, errs := maintenance.Parse(form, maintenance.ModeCreate, s.now())
	if !errs.OK() {
		return model.MaintenanceTask{}, errs
	}

	payload := maintenance.Normalize(draft, asset.ID, asset.Snapshot())
	created, err := s.api.CreateMaintenance(ctx, payload)
	if err != nil {
		return model.MaintenanceTask{}, fmt.Errorf("creating maintenance: %w", err)
	}
	s.invalidate(asset.ID)
	s.rememberRecurrence(ctx, payload)
	return *created, nil
}

// Update validates form and replaces original. The asset snapshot stays
// as it was when the task was created. Completing a recurring task here
// spawns its successor.
func (s *MaintenanceService) Update(
	ctx context.Context,
	original model.MaintenanceTask,
	form maintenance.Form,
) (Result, error) {
	draft, errs := maintenance.Parse(form, maintenance.ModeEdit, s.now())
	if !errs.OK() {
		return Result{}, errs
	}

	payload := maintenance.Normalize(draft, original.AssetID, original.AssetSnapshot)
	payload.ID = original.ID

	updated, err := s.api.UpdateMaintenance(ctx, payload)
	if err != nil {
		return Result{}, fmt.Errorf("updating maintenance %s: %w", original.ID, err)
	}
	s.invalidate(original.AssetID)
	s.rememberRecurrence(ctx, payload)

	res := Result{Task: *updated}
	if maintenance.ShouldSpawn(original, payload) {
		res.Successor, res.SuccessorErr = s.spawnSuccessor(ctx, original)
	}
	return res, nil
}

// ToggleComplete flips a task's completion flag optimistically. Cached
// lists show the new state at once and are restored exactly if the
// server rejects the change.
func (s *MaintenanceService) ToggleComplete(ctx context.Context, task model.MaintenanceTask) (Result, error) {
	toggled := maintenance.WithCompletion(task, !task.IsCompleted)

	keys := []cache.Key{cache.MaintenanceAll(), cache.MaintenanceFor(task.AssetID)}
	muts := make([]*cache.Mutation[[]model.MaintenanceTask], 0, len(keys))
	for _, k := range keys {
		m := cache.NewMutation[[]model.MaintenanceTask](s.cache, k)
		prev, err := m.Begin()
		if err != nil {
			return Result{}, err
		}
		if prev == nil {
			// Nothing cached under this key; nothing to update optimistically.
			continue
		}
		if err := m.Apply(replaceTask(prev, toggled)); err != nil {
			return Result{}, err
		}
		muts = append(muts, m)
	}

	if err := s.api.SetMaintenanceCompleted(ctx, task.ID, toggled.IsCompleted); err != nil {
		for _, m := range muts {
			if rerr := m.Revert(); rerr != nil {
				s.logger.Error("reverting optimistic toggle", slog.String("mutation", m.ID), slog.Any("error", rerr))
			}
		}
		return Result{}, fmt.Errorf("toggling maintenance %s: %w", task.ID, err)
	}
	for _, m := range muts {
		if err := m.Commit(); err != nil {
			return Result{}, err
		}
	}
	s.invalidate(task.AssetID)

	res := Result{Task: toggled}
	if maintenance.ShouldSpawn(task, toggled) {
		res.Successor, res.SuccessorErr = s.spawnSuccessor(ctx, task)
	}
	return res, nil
}

// Delete removes a task.
func (s *MaintenanceService) Delete(ctx context.Context, task model.MaintenanceTask) error {
	if err := s.api.DeleteMaintenance(ctx, task.ID); err != nil {
		return fmt.Errorf("deleting maintenance %s: %w", task.ID, err)
	}
	s.invalidate(task.AssetID)
	return nil
}

// spawnSuccessor creates the next occurrence of original. Failures are
// logged and returned to the caller for display.
func (s *MaintenanceService) spawnSuccessor(
	ctx context.Context,
	original model.MaintenanceTask,
) (*model.MaintenanceTask, error) {
	next, err := maintenance.Successor(original, s.now().Location())
	if err != nil {
		s.logger.Error("computing successor task",
			slog.String("task_id", original.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("computing next occurrence of %s: %w", original.ID, err)
	}

	created, err := s.api.CreateMaintenance(ctx, next)
	if err != nil {
		s.logger.Error("creating successor task",
			slog.String("task_id", original.ID),
			slog.String("asset_id", original.AssetID),
			slog.Time("due_date", next.DueDate),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("creating next occurrence of %s: %w", original.ID, err)
	}

	s.invalidate(original.AssetID)
	s.logger.Info("spawned successor task",
		slog.String("task_id", original.ID),
		slog.String("successor_id", created.ID),
		slog.Time("due_date", created.DueDate),
	)
	return created, nil
}

func (s *MaintenanceService) invalidate(assetID string) {
	s.cache.Invalidate(cache.MaintenanceAll(), cache.MaintenanceFor(assetID))
}

func (s *MaintenanceService) rememberRecurrence(ctx context.Context, t model.MaintenanceTask) {
	if s.recurse == nil || !t.PreserveFromPrior || t.RecurrenceInterval == nil {
		return
	}
	r := prefs.Recurrence{Interval: *t.RecurrenceInterval, Unit: t.RecurrenceUnit}
	if err := s.recurse.SetRecurrenceDefaults(ctx, r); err != nil {
		s.logger.Warn("saving recurrence defaults", slog.Any("error", err))
	}
}

// replaceTask returns a copy of tasks with the entry matching t.ID
// replaced. The input slice is left untouched so it can serve as the
// rollback snapshot.
func replaceTask(tasks []model.MaintenanceTask, t model.MaintenanceTask) []model.MaintenanceTask {
	out := make([]model.MaintenanceTask, len(tasks))
	for i, cur := range tasks {
		if cur.ID == t.ID {
			out[i] = t
		} else {
			out[i] = cur
		}
	}
	return out
}
