// Package cache is the client-side query cache. Query results are stored
// under (kind, scope) keys, dropped by invalidation and adjusted in place by
// optimistic mutations that can be rolled back.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Kinds of cached queries.
const (
	KindAssets      = "assets"
	KindAsset       = "asset"
	KindAssetImages = "asset-images"
	KindMaintenance = "maintenance"
	KindBorrow      = "borrow-requests"
)

// Key identifies one cached query. An empty Scope is the unscoped variant.
type Key struct {
	Kind  string
	Scope string
}

func (k Key) String() string { return k.Kind + ":" + k.Scope }

// ScopeAll is the scope of the cross-asset maintenance list. Asset IDs are
// never "*", so no per-asset key can collide with it.
const ScopeAll = "*"

// MaintenanceAll is the key of the cross-asset maintenance list.
func MaintenanceAll() Key { return Key{Kind: KindMaintenance, Scope: ScopeAll} }

// MaintenanceFor is the key of one asset's maintenance list.
func MaintenanceFor(assetID string) Key { return Key{Kind: KindMaintenance, Scope: assetID} }

// Assets is the key of the asset list.
func Assets() Key { return Key{Kind: KindAssets} }

// Asset is the key of one asset.
func Asset(id string) Key { return Key{Kind: KindAsset, Scope: id} }

// AssetImages is the key of one asset's image list.
func AssetImages(id string) Key { return Key{Kind: KindAssetImages, Scope: id} }

// Borrow is the key of the borrow-request list for a role.
func Borrow(role string) Key { return Key{Kind: KindBorrow, Scope: role} }

// Cache wraps go-cache. The zero TTL means entries never expire on their
// own, so the cache stays the source of truth until invalidated.
type Cache struct {
	store *gocache.Cache
}

// New returns a cache whose entries expire after ttl (0 for never).
func New(ttl time.Duration) *Cache {
	exp := gocache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		exp = ttl
		cleanup = 2 * ttl
	}
	return &Cache{store: gocache.New(exp, cleanup)}
}

// Get returns the raw entry for key.
func (c *Cache) Get(key Key) (any, bool) {
	return c.store.Get(key.String())
}

// Set stores v under key with the default expiry.
func (c *Cache) Set(key Key, v any) {
	c.store.SetDefault(key.String(), v)
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(keys ...Key) {
	for _, k := range keys {
		c.store.Delete(k.String())
	}
}

// InvalidateKind drops every entry of kind, scoped or not.
func (c *Cache) InvalidateKind(kind string) {
	prefix := kind + ":"
	for k := range c.store.Items() {
		if strings.HasPrefix(k, prefix) {
			c.store.Delete(k)
		}
	}
}

// Flush drops everything, used on sign-out.
func (c *Cache) Flush() {
	c.store.Flush()
}

// Lookup returns the entry for key typed as T.
func Lookup[T any](c *Cache, key Key) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// Query returns the cached value for key or runs fetch and stores its
// result. Failed fetches are not cached.
func Query[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := Lookup[T](c, key); ok {
		return v, nil
	}
	v, err := fetch(ctx)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("fetching %s: %w", key, err)
	}
	c.Set(key, v)
	return v, nil
}
