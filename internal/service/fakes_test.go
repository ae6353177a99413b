package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
)

var today = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(n int) *int { return &n }

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type fakeMaintenanceAPI struct {
	tasks      []model.MaintenanceTask
	listCalls  int
	created    []model.MaintenanceTask
	updated    []model.MaintenanceTask
	toggled    map[string]bool
	deleted    []string
	createErr  error
	toggleErr  error
	nextID     int
}

func (f *fakeMaintenanceAPI) ListMaintenance(context.Context) ([]model.MaintenanceTask, error) {
	f.listCalls++
	return append([]model.MaintenanceTask(nil), f.tasks...), nil
}

func (f *fakeMaintenanceAPI) ListAssetMaintenance(_ context.Context, assetID string) ([]model.MaintenanceTask, error) {
	f.listCalls++
	var out []model.MaintenanceTask
	for _, t := range f.tasks {
		if t.AssetID == assetID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceAPI) CreateMaintenance(_ context.Context, t model.MaintenanceTask) (*model.MaintenanceTask, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, t)
	f.nextID++
	t.ID = fmt.Sprintf("m-%d", f.nextID)
	return &t, nil
}

func (f *fakeMaintenanceAPI) UpdateMaintenance(_ context.Context, t model.MaintenanceTask) (*model.MaintenanceTask, error) {
	f.updated = append(f.updated, t)
	return &t, nil
}

func (f *fakeMaintenanceAPI) SetMaintenanceCompleted(_ context.Context, id string, done bool) error {
	if f.toggleErr != nil {
		return f.toggleErr
	}
	if f.toggled == nil {
		f.toggled = map[string]bool{}
	}
	f.toggled[id] = done
	return nil
}

func (f *fakeMaintenanceAPI) DeleteMaintenance(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRecurrenceStore struct {
	saved []prefs.Recurrence
}

func (f *fakeRecurrenceStore) SetRecurrenceDefaults(_ context.Context, r prefs.Recurrence) error {
	f.saved = append(f.saved, r)
	return nil
}

type fakeAssetAPI struct {
	assets      []model.Asset
	listCalls   int
	created     []model.Asset
	favoriteErr error
	favorites   map[string]bool
	deleted     []string
}

func (f *fakeAssetAPI) ListAssets(context.Context) ([]model.Asset, error) {
	f.listCalls++
	return append([]model.Asset(nil), f.assets...), nil
}

func (f *fakeAssetAPI) GetAsset(_ context.Context, id string) (*model.Asset, error) {
	for _, a := range f.assets {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, &api.APIError{StatusCode: 404, Method: "GET", Path: "/assets/" + id}
}

func (f *fakeAssetAPI) CreateAsset(_ context.Context, a model.Asset) (*model.Asset, error) {
	f.created = append(f.created, a)
	a.ID = "a-new"
	return &a, nil
}

func (f *fakeAssetAPI) UpdateAsset(_ context.Context, a model.Asset) (*model.Asset, error) {
	return &a, nil
}

func (f *fakeAssetAPI) SetFavorite(_ context.Context, id string, favorite bool) error {
	if f.favoriteErr != nil {
		return f.favoriteErr
	}
	if f.favorites == nil {
		f.favorites = map[string]bool{}
	}
	f.favorites[id] = favorite
	return nil
}

func (f *fakeAssetAPI) DeleteAsset(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeAssetAPI) AssetImages(context.Context, string) ([]string, error) {
	return []string{"https://cdn.example/1.png"}, nil
}

func (f *fakeAssetAPI) UploadImage(_ context.Context, filename string, _ io.Reader) (string, error) {
	return "https://cdn.example/" + filename, nil
}

type fakeBorrowAPI struct {
	requests    map[model.BorrowRole][]model.BorrowRequest
	listCalls   int
	transitions []model.BorrowAction
	decisions   []api.DecisionRequest
	completed   []string
	err         error
}

func (f *fakeBorrowAPI) ListBorrowRequests(_ context.Context, role model.BorrowRole) ([]model.BorrowRequest, error) {
	f.listCalls++
	return f.requests[role], nil
}

func (f *fakeBorrowAPI) CreateBorrowRequest(_ context.Context, in api.CreateBorrowRequest) (*model.BorrowRequest, error) {
	return &model.BorrowRequest{
		ID: "br-new", AssetID: in.AssetID, StartDate: in.StartDate, EndDate: in.EndDate,
		Status: model.BorrowPending, Note: in.Note,
	}, nil
}

func (f *fakeBorrowAPI) TransitionBorrowRequest(_ context.Context, _ string, action model.BorrowAction) error {
	if f.err != nil {
		return f.err
	}
	f.transitions = append(f.transitions, action)
	return nil
}

func (f *fakeBorrowAPI) DecideBorrowRequest(_ context.Context, _ string, d api.DecisionRequest) error {
	if f.err != nil {
		return f.err
	}
	f.decisions = append(f.decisions, d)
	return nil
}

func (f *fakeBorrowAPI) CompleteBorrowRequest(_ context.Context, id, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.completed = append(f.completed, id)
	return nil
}
