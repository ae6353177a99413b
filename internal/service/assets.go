package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// ErrAssetNameRequired is returned when an asset is saved without a name.
var ErrAssetNameRequired = errors.New("asset name is required")

// AssetService manages the user's assets.
type AssetService struct {
	api    AssetAPI
	cache  *cache.Cache
	logger *slog.Logger
}

// NewAssetService creates the service.
func NewAssetService(api AssetAPI, c *cache.Cache, logger *slog.Logger) *AssetService {
	return &AssetService{api: api, cache: c, logger: logger}
}

// List returns every asset.
func (s *AssetService) List(ctx context.Context) ([]model.Asset, error) {
	assets, err := cache.Query(ctx, s.cache, cache.Assets(), s.api.ListAssets)
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return assets, nil
}

// Get returns one asset.
func (s *AssetService) Get(ctx context.Context, id string) (model.Asset, error) {
	a, err := cache.Query(ctx, s.cache, cache.Asset(id), func(ctx context.Context) (model.Asset, error) {
		a, err := s.api.GetAsset(ctx, id)
		if err != nil {
			return model.Asset{}, err
		}
		return *a, nil
	})
	if err != nil {
		return model.Asset{}, fmt.Errorf("getting asset %s: %w", id, err)
	}
	return a, nil
}

// Create stores a new asset.
func (s *AssetService) Create(ctx context.Context, a model.Asset) (model.Asset, error) {
	a = a.Normalized()
	if a.ItemName == "" {
		return model.Asset{}, ErrAssetNameRequired
	}
	created, err := s.api.CreateAsset(ctx, a)
	if err != nil {
		return model.Asset{}, fmt.Errorf("creating asset: %w", err)
	}
	s.cache.Invalidate(cache.Assets())
	return *created, nil
}

// Update replaces an asset, including its image list. Existing maintenance
// snapshots are unaffected.
func (s *AssetService) Update(ctx context.Context, a model.Asset) (model.Asset, error) {
	a = a.Normalized()
	if a.ItemName == "" {
		return model.Asset{}, ErrAssetNameRequired
	}
	updated, err := s.api.UpdateAsset(ctx, a)
	if err != nil {
		return model.Asset{}, fmt.Errorf("updating asset %s: %w", a.ID, err)
	}
	s.cache.Invalidate(cache.Assets(), cache.Asset(a.ID), cache.AssetImages(a.ID))
	return *updated, nil
}

// Delete removes an asset along with every cached view of it.
func (s *AssetService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("deleting asset %s: %w", id, err)
	}
	s.cache.Invalidate(
		cache.Assets(),
		cache.Asset(id),
		cache.AssetImages(id),
		cache.MaintenanceAll(),
		cache.MaintenanceFor(id),
	)
	return nil
}

// ToggleFavorite flips the favorite flag optimistically in the cached list.
func (s *AssetService) ToggleFavorite(ctx context.Context, a model.Asset) (model.Asset, error) {
	a.Favorite = !a.Favorite

	m := cache.NewMutation[[]model.Asset](s.cache, cache.Assets())
	prev, err := m.Begin()
	if err != nil {
		return model.Asset{}, err
	}
	applied := prev != nil
	if applied {
		if err := m.Apply(replaceAsset(prev, a)); err != nil {
			return model.Asset{}, err
		}
	}

	if err := s.api.SetFavorite(ctx, a.ID, a.Favorite); err != nil {
		if applied {
			if rerr := m.Revert(); rerr != nil {
				s.logger.Error("reverting favorite toggle", slog.String("mutation", m.ID), slog.Any("error", rerr))
			}
		}
		return model.Asset{}, fmt.Errorf("toggling favorite on asset %s: %w", a.ID, err)
	}
	if applied {
		if err := m.Commit(); err != nil {
			return model.Asset{}, err
		}
	}
	s.cache.Invalidate(cache.Asset(a.ID))
	return a, nil
}

// Images lists an asset's image URLs.
func (s *AssetService) Images(ctx context.Context, id string) ([]string, error) {
	images, err := cache.Query(ctx, s.cache, cache.AssetImages(id), func(ctx context.Context) ([]string, error) {
		return s.api.AssetImages(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("listing images for asset %s: %w", id, err)
	}
	return images, nil
}

// UploadImage uploads a file and returns its hosted URL. Attaching the
// URL to an asset is a separate Update.
func (s *AssetService) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	u, err := s.api.UploadImage(ctx, filename, content)
	if err != nil {
		return "", err
	}
	s.logger.Info("uploaded image", slog.String("filename", filename))
	return u, nil
}

// AssetFilter narrows the asset list. Zero values match everything.
type AssetFilter struct {
	Query         string
	Category      string
	FavoritesOnly bool
}

// FilterAssets returns the assets matching f. Query matches name, brand
// and category case-insensitively.
func FilterAssets(assets []model.Asset, f AssetFilter) []model.Asset {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		if f.FavoritesOnly && !a.Favorite {
			continue
		}
		if f.Category != "" && !strings.EqualFold(a.Category, f.Category) {
			continue
		}
		if q != "" && !containsFold(q, a.ItemName, a.BrandName, a.Category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func containsFold(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// AssetSort selects the asset list order.
type AssetSort string

const (
	SortByName         AssetSort = "name"
	SortByPurchaseDate AssetSort = "purchase_date"
)

// SortAssets orders assets in place. Purchase date sorts newest first with
// undated assets last; ties fall back to name.
func SortAssets(assets []model.Asset, by AssetSort) {
	byName := func(i, j int) bool {
		return strings.ToLower(assets[i].ItemName) < strings.ToLower(assets[j].ItemName)
	}
	switch by {
	case SortByPurchaseDate:
		sort.SliceStable(assets, func(i, j int) bool {
			pi, pj := assets[i].PurchaseDate, assets[j].PurchaseDate
			switch {
			case pi == nil && pj == nil:
				return byName(i, j)
			case pi == nil:
				return false
			case pj == nil:
				return true
			case !pi.Equal(*pj):
				return pi.After(*pj)
			default:
				return byName(i, j)
			}
		})
	default:
		sort.SliceStable(assets, byName)
	}
}

// Categories returns the distinct categories in assets, sorted.
func Categories(assets []model.Asset) []string {
	seen := map[string]bool{}
	var out []string
	for _, a := range assets {
		c := a.Category
		if c == "" {
			c = model.DefaultCategory
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

func replaceAsset(assets []model.Asset, a model.Asset) []model.Asset {
	out := make([]model.Asset, len(assets))
	for i, cur := range assets {
		if cur.ID == a.ID {
			out[i] = a
		} else {
			out[i] = cur
		}
	}
	return out
}
