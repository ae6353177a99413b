// Package service holds the use cases the UI drives. Each service reads
// through the query cache, writes through the API and invalidates every
// cache key a write can make stale.
package service

import (
	"context"
	"io"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
)

// MaintenanceAPI is the part of the remote store the maintenance service uses.
type MaintenanceAPI interface {
	ListMaintenance(ctx context.Context) ([]model.MaintenanceTask, error)
	ListAssetMaintenance(ctx context.Context, assetID string) ([]model.MaintenanceTask, error)
	CreateMaintenance(ctx context.Context, t model.MaintenanceTask) (*model.MaintenanceTask, error)
	UpdateMaintenance(ctx context.Context, t model.MaintenanceTask) (*model.MaintenanceTask, error)
	SetMaintenanceCompleted(ctx context.Context, id string, done bool) error
	DeleteMaintenance(ctx context.Context, id string) error
}

// AssetAPI is the part of the remote store the asset service uses.
type AssetAPI interface {
	ListAssets(ctx context.Context) ([]model.Asset, error)
	GetAsset(ctx context.Context, id string) (*model.Asset, error)
	CreateAsset(ctx context.Context, a model.Asset) (*model.Asset, error)
	UpdateAsset(ctx context.Context, a model.Asset) (*model.Asset, error)
	SetFavorite(ctx context.Context, id string, favorite bool) error
	DeleteAsset(ctx context.Context, id string) error
	AssetImages(ctx context.Context, id string) ([]string, error)
	UploadImage(ctx context.Context, filename string, content io.Reader) (string, error)
}

// BorrowAPI is the part of the remote store the borrow service uses.
type BorrowAPI interface {
	ListBorrowRequests(ctx context.Context, role model.BorrowRole) ([]model.BorrowRequest, error)
	CreateBorrowRequest(ctx context.Context, in api.CreateBorrowRequest) (*model.BorrowRequest, error)
	TransitionBorrowRequest(ctx context.Context, id string, action model.BorrowAction) error
	DecideBorrowRequest(ctx context.Context, id string, d api.DecisionRequest) error
	CompleteBorrowRequest(ctx context.Context, id, note string) error
}

// RecurrenceStore remembers the last schedule used on a recurring task.
type RecurrenceStore interface {
	SetRecurrenceDefaults(ctx context.Context, r prefs.Recurrence) error
}

// Clock returns the current time. Tests inject a fixed one.
type Clock func() time.Time
