package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/identity"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/service"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/sync"
)

// SessionProvider is the part of identity the UI needs.
type SessionProvider interface {
	Session(ctx context.Context) (identity.Session, error)
	SignOut() error
}

// Services bundles everything the root model drives.
type Services struct {
	Assets      *service.AssetService
	Maintenance *service.MaintenanceService
	Borrow      *service.BorrowService
	Session     SessionProvider
	Prefs       *prefs.Preferences
	Cache       *cache.Cache
	Logger      *slog.Logger
	Now         func() time.Time

	// Poller drives periodic reloads. Nil disables them.
	Poller *sync.Poller
}

func (s Services) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
