package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// ImageUploadField is the multipart field the upload endpoint reads.
const ImageUploadField = "image"

// ListAssets fetches every asset owned by the current user.
func (c *Client) ListAssets(ctx context.Context) ([]model.Asset, error) {
	var assets []model.Asset
	if err := c.Get(ctx, "/assets", &assets); err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}
	return assets, nil
}

// GetAsset fetches a single asset.
func (c *Client) GetAsset(ctx context.Context, id string) (*model.Asset, error) {
	var asset model.Asset
	if err := c.Get(ctx, "/assets/"+url.PathEscape(id), &asset); err != nil {
		return nil, fmt.Errorf("getting asset %s: %w", id, err)
	}
	return &asset, nil
}

// CreateAsset stores a new asset and returns it as the server saved it.
func (c *Client) CreateAsset(ctx context.Context, a model.Asset) (*model.Asset, error) {
	var created model.Asset
	if err := c.Post(ctx, "/assets", a, &created); err != nil {
		return nil, fmt.Errorf("creating asset: %w", err)
	}
	return &created, nil
}

// UpdateAsset replaces an asset.
func (c *Client) UpdateAsset(ctx context.Context, a model.Asset) (*model.Asset, error) {
	var updated model.Asset
	if err := c.Put(ctx, "/assets/"+url.PathEscape(a.ID), a, &updated); err != nil {
		return nil, fmt.Errorf("updating asset %s: %w", a.ID, err)
	}
	return &updated, nil
}

// SetFavorite patches only the favorite flag.
func (c *Client) SetFavorite(ctx context.Context, id string, favorite bool) error {
	body := map[string]bool{"favorite": favorite}
	if err := c.Patch(ctx, "/assets/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("setting favorite on asset %s: %w", id, err)
	}
	return nil
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/assets/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("deleting asset %s: %w", id, err)
	}
	return nil
}

// AssetImages lists the image URLs attached to an asset.
func (c *Client) AssetImages(ctx context.Context, id string) ([]string, error) {
	var images []string
	if err := c.Get(ctx, "/assets/"+url.PathEscape(id)+"/images", &images); err != nil {
		return nil, fmt.Errorf("listing images for asset %s: %w", id, err)
	}
	return images, nil
}

type uploadResponse struct {
	ImageURL string `json:"imageUrl"`
}

// UploadImage sends an image file and returns the hosted URL.
func (c *Client) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	var resp uploadResponse
	if err := c.Upload(ctx, "/assets/upload-image", ImageUploadField, filename, content, &resp); err != nil {
		return "", fmt.Errorf("uploading image %s: %w", filename, err)
	}
	if resp.ImageURL == "" {
		return "", fmt.Errorf("uploading image %s: response has no imageUrl", filename)
	}
	return resp.ImageURL, nil
}
