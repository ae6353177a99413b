package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// ListMaintenance fetches every maintenance task across the user's assets.
func (c *Client) ListMaintenance(ctx context.Context) ([]model.MaintenanceTask, error) {
	var tasks []model.MaintenanceTask
	if err := c.Get(ctx, "/maintenance", &tasks); err != nil {
		return nil, fmt.Errorf("listing maintenance: %w", err)
	}
	return tasks, nil
}

// ListAssetMaintenance fetches the tasks of one asset.
func (c *Client) ListAssetMaintenance(ctx context.Context, assetID string) ([]model.MaintenanceTask, error) {
	var tasks []model.MaintenanceTask
	path := "/assets/" + url.PathEscape(assetID) + "/maintenance"
	if err := c.Get(ctx, path, &tasks); err != nil {
		return nil, fmt.Errorf("listing maintenance for asset %s: %w", assetID, err)
	}
	return tasks, nil
}

// CreateMaintenance stores a task under its asset. The server assigns the ID.
func (c *Client) CreateMaintenance(ctx context.Context, t model.MaintenanceTask) (*model.MaintenanceTask, error) {
	var created model.MaintenanceTask
	path := "/assets/" + url.PathEscape(t.AssetID) + "/maintenance"
	if err := c.Post(ctx, path, t, &created); err != nil {
		return nil, fmt.Errorf("creating maintenance for asset %s: %w", t.AssetID, err)
	}
	if created.ID == "" {
		// Some deployments answer 201 with an empty body.
		created = t
	}
	return &created, nil
}

// UpdateMaintenance replaces a task.
func (c *Client) UpdateMaintenance(ctx context.Context, t model.MaintenanceTask) (*model.MaintenanceTask, error) {
	var updated model.MaintenanceTask
	if err := c.Put(ctx, "/maintenance/"+url.PathEscape(t.ID), t, &updated); err != nil {
		return nil, fmt.Errorf("updating maintenance %s: %w", t.ID, err)
	}
	if updated.ID == "" {
		updated = t
	}
	return &updated, nil
}

// SetMaintenanceCompleted patches only the completion flag and its status.
func (c *Client) SetMaintenanceCompleted(ctx context.Context, id string, done bool) error {
	status := model.MaintenanceStatusPending
	if done {
		status = model.MaintenanceStatusCompleted
	}
	body := map[string]any{"isCompleted": done, "status": status}
	if err := c.Patch(ctx, "/maintenance/"+url.PathEscape(id), body, nil); err != nil {
		return fmt.Errorf("setting completion on maintenance %s: %w", id, err)
	}
	return nil
}

// DeleteMaintenance removes a task.
func (c *Client) DeleteMaintenance(ctx context.Context, id string) error {
	if err := c.Delete(ctx, "/maintenance/"+url.PathEscape(id), nil); err != nil {
		return fmt.Errorf("deleting maintenance %s: %w", id, err)
	}
	return nil
}
