package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func sampleAssets() []model.Asset {
	return []model.Asset{
		{ID: "1", ItemName: "drill", BrandName: "Bosch", Category: "Tools", PurchaseDate: timePtr(date(2022, 5, 1))},
		{ID: "2", ItemName: "Camera", BrandName: "Canon", Category: "Electronics", Favorite: true},
		{ID: "3", ItemName: "Bike", BrandName: "Trek", Category: "Outdoor", PurchaseDate: timePtr(date(2023, 7, 1)), Favorite: true},
	}
}

func TestAssetService_ListCaches(t *testing.T) {
	f := &fakeAssetAPI{assets: sampleAssets()}
	svc := NewAssetService(f, cache.New(0), discard())

	for i := 0; i < 2; i++ {
		assets, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, assets, 3)
	}
	assert.Equal(t, 1, f.listCalls)
}

func TestAssetService_GetNotFound(t *testing.T) {
	svc := NewAssetService(&fakeAssetAPI{}, cache.New(0), discard())
	_, err := svc.Get(context.Background(), "missing")
	assert.Equal(t, 404, api.StatusCode(err))
}

func TestAssetService_CreateNormalizes(t *testing.T) {
	f := &fakeAssetAPI{}
	c := cache.New(0)
	svc := NewAssetService(f, c, discard())
	c.Set(cache.Assets(), []model.Asset{})

	_, err := svc.Create(context.Background(), model.Asset{ItemName: "   "})
	assert.ErrorIs(t, err, ErrAssetNameRequired)
	assert.Empty(t, f.created)

	created, err := svc.Create(context.Background(), model.Asset{
		ItemName: " Ladder ", CurrentLocation: "  ", Images: []string{"", "https://cdn.example/l.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a-new", created.ID)
	require.Len(t, f.created, 1)
	assert.Equal(t, "Ladder", f.created[0].ItemName)
	assert.Equal(t, model.DefaultCategory, f.created[0].Category)
	assert.Empty(t, f.created[0].CurrentLocation)
	assert.Equal(t, []string{"https://cdn.example/l.png"}, f.created[0].Images)

	_, ok := c.Get(cache.Assets())
	assert.False(t, ok)
}

func TestAssetService_ToggleFavoriteRollsBack(t *testing.T) {
	f := &fakeAssetAPI{assets: sampleAssets(), favoriteErr: errors.New("500")}
	c := cache.New(0)
	svc := NewAssetService(f, c, discard())

	assets, err := svc.List(context.Background())
	require.NoError(t, err)

	_, err = svc.ToggleFavorite(context.Background(), assets[0])
	require.Error(t, err)

	after, ok := cache.Lookup[[]model.Asset](c, cache.Assets())
	require.True(t, ok)
	assert.Equal(t, assets, after)
}

func TestAssetService_ToggleFavoriteCommits(t *testing.T) {
	f := &fakeAssetAPI{assets: sampleAssets()}
	c := cache.New(0)
	svc := NewAssetService(f, c, discard())

	assets, err := svc.List(context.Background())
	require.NoError(t, err)

	updated, err := svc.ToggleFavorite(context.Background(), assets[0])
	require.NoError(t, err)
	assert.True(t, updated.Favorite)
	assert.True(t, f.favorites["1"])

	after, _ := cache.Lookup[[]model.Asset](c, cache.Assets())
	assert.True(t, after[0].Favorite)
	assert.False(t, assets[0].Favorite)
}

func TestAssetService_DeleteInvalidatesMaintenance(t *testing.T) {
	f := &fakeAssetAPI{}
	c := cache.New(0)
	svc := NewAssetService(f, c, discard())
	c.Set(cache.MaintenanceFor("1"), []model.MaintenanceTask{})
	c.Set(cache.MaintenanceAll(), []model.MaintenanceTask{})

	require.NoError(t, svc.Delete(context.Background(), "1"))
	assert.Equal(t, []string{"1"}, f.deleted)
	_, ok := c.Get(cache.MaintenanceFor("1"))
	assert.False(t, ok)
	_, ok = c.Get(cache.MaintenanceAll())
	assert.False(t, ok)
}

func TestAssetService_ImagesAndUpload(t *testing.T) {
	svc := NewAssetService(&fakeAssetAPI{}, cache.New(0), discard())

	images, err := svc.Images(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example/1.png"}, images)

	u, err := svc.UploadImage(context.Background(), "x.png", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/x.png", u)
}

func TestAssetService_UpdateDropsCachedImages(t *testing.T) {
	c := cache.New(0)
	svc := NewAssetService(&fakeAssetAPI{}, c, discard())

	_, err := svc.Images(context.Background(), "1")
	require.NoError(t, err)
	_, ok := c.Get(cache.AssetImages("1"))
	require.True(t, ok)

	_, err = svc.Update(context.Background(), model.Asset{
		ID: "1", ItemName: "drill",
		Images: []string{"https://cdn.example/1.png", "https://cdn.example/new.png"},
	})
	require.NoError(t, err)

	_, ok = c.Get(cache.AssetImages("1"))
	assert.False(t, ok)
	_, ok = c.Get(cache.Asset("1"))
	assert.False(t, ok)
}

func TestFilterAssets(t *testing.T) {
	assets := sampleAssets()

	tests := []struct {
		name   string
		filter AssetFilter
		want   []string
	}{
		{"all", AssetFilter{}, []string{"1", "2", "3"}},
		{"query matches brand", AssetFilter{Query: "canon"}, []string{"2"}},
		{"query matches name", AssetFilter{Query: "DRI"}, []string{"1"}},
		{"category", AssetFilter{Category: "outdoor"}, []string{"3"}},
		{"favorites", AssetFilter{FavoritesOnly: true}, []string{"2", "3"}},
		{"combined", AssetFilter{FavoritesOnly: true, Query: "bike"}, []string{"3"}},
		{"none", AssetFilter{Query: "boat"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterAssets(assets, tt.filter)
			ids := make([]string, 0, len(got))
			for _, a := range got {
				ids = append(ids, a.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestSortAssets(t *testing.T) {
	ids := func(assets []model.Asset) []string {
		out := make([]string, len(assets))
		for i, a := range assets {
			out[i] = a.ID
		}
		return out
	}

	assets := sampleAssets()
	SortAssets(assets, SortByName)
	assert.Equal(t, []string{"3", "2", "1"}, ids(assets))

	SortAssets(assets, SortByPurchaseDate)
	assert.Equal(t, []string{"3", "1", "2"}, ids(assets))
}

func TestCategories(t *testing.T) {
	assets := append(sampleAssets(), model.Asset{ID: "4"})
	assert.Equal(t, []string{"Electronics", "Outdoor", "Tools"}, Categories(assets))
}
