package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/identity"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/service"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/assetlist"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/borrowlist"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/detail"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/ui/maintlist"
)

// sessionMsg carries the result of the startup session check.
type sessionMsg struct {
	session identity.Session
	err     error
}

// maintenanceSavedMsg is sent after a create or edit finishes.
type maintenanceSavedMsg struct {
	form   maintenance.Form
	mode   maintenance.Mode
	result service.Result
	err    error
}

// maintenanceToggledMsg is sent after a completion toggle finishes.
type maintenanceToggledMsg struct {
	task   model.MaintenanceTask
	result service.Result
	err    error
}

// maintenanceDeletedMsg is sent after a task is deleted.
type maintenanceDeletedMsg struct {
	task model.MaintenanceTask
	err  error
}

// assetSavedMsg is sent after an asset create or edit finishes.
type assetSavedMsg struct {
	asset model.Asset
	err   error
}

// assetFavoritedMsg is sent after a favorite toggle finishes.
type assetFavoritedMsg struct {
	asset model.Asset
	err   error
}

// assetDeletedMsg is sent after an asset is deleted.
type assetDeletedMsg struct {
	id  string
	err error
}

// borrowDoneMsg is sent after any borrow request write finishes.
type borrowDoneMsg struct {
	id     string
	action string
	err    error
}

func (m Model) checkSession() tea.Cmd {
	sess := m.svc.Session
	return func() tea.Msg {
		s, err := sess.Session(context.Background())
		return sessionMsg{session: s, err: err}
	}
}

func (m Model) loadAssets() tea.Cmd {
	svc := m.svc.Assets
	return func() tea.Msg {
		assets, err := svc.List(context.Background())
		return assetlist.LoadedMsg{Assets: assets, Err: err}
	}
}

func (m Model) loadMaintenance(assetID string) tea.Cmd {
	svc := m.svc.Maintenance
	return func() tea.Msg {
		ctx := context.Background()
		var (
			views []maintenance.View
			err   error
		)
		if assetID == "" {
			views, err = svc.List(ctx)
		} else {
			views, err = svc.ListForAsset(ctx, assetID)
		}
		return maintlist.LoadedMsg{AssetID: assetID, Views: views, Err: err}
	}
}

func (m Model) loadDetail(id string) tea.Cmd {
	assets, maint := m.svc.Assets, m.svc.Maintenance
	return func() tea.Msg {
		ctx := context.Background()
		a, err := assets.Get(ctx, id)
		if err != nil {
			return detail.LoadedMsg{Err: err}
		}
		images, err := assets.Images(ctx, id)
		if err != nil {
			return detail.LoadedMsg{Err: err}
		}
		views, err := maint.ListForAsset(ctx, id)
		if err != nil {
			return detail.LoadedMsg{Err: err}
		}
		return detail.LoadedMsg{Asset: a, Images: images, Maintenance: views}
	}
}

func (m Model) loadBorrow() tea.Cmd {
	svc := m.svc.Borrow
	load := func(role model.BorrowRole, fetch func(context.Context) ([]model.BorrowRequest, error)) tea.Cmd {
		return func() tea.Msg {
			reqs, err := fetch(context.Background())
			return borrowlist.LoadedMsg{Role: role, Requests: reqs, Err: err}
		}
	}
	return tea.Batch(
		load(model.RoleOwner, svc.Incoming),
		load(model.RoleRequester, svc.Outgoing),
	)
}

func (m Model) createMaintenance(asset model.Asset, form maintenance.Form) tea.Cmd {
	svc := m.svc.Maintenance
	return func() tea.Msg {
		task, err := svc.Create(context.Background(), asset, form)
		return maintenanceSavedMsg{form: form, mode: maintenance.ModeCreate, result: service.Result{Task: task}, err: err}
	}
}

func (m Model) updateMaintenance(original model.MaintenanceTask, form maintenance.Form) tea.Cmd {
	svc := m.svc.Maintenance
	return func() tea.Msg {
		res, err := svc.Update(context.Background(), original, form)
		return maintenanceSavedMsg{form: form, mode: maintenance.ModeEdit, result: res, err: err}
	}
}

func (m Model) toggleMaintenance(task model.MaintenanceTask) tea.Cmd {
	svc := m.svc.Maintenance
	return func() tea.Msg {
		res, err := svc.ToggleComplete(context.Background(), task)
		return maintenanceToggledMsg{task: task, result: res, err: err}
	}
}

func (m Model) deleteMaintenance(task model.MaintenanceTask) tea.Cmd {
	svc := m.svc.Maintenance
	return func() tea.Msg {
		return maintenanceDeletedMsg{task: task, err: svc.Delete(context.Background(), task)}
	}
}

// saveAsset creates or updates a, first uploading imagePath when set.
func (m Model) saveAsset(a model.Asset, editing bool, imagePath string) tea.Cmd {
	svc := m.svc.Assets
	return func() tea.Msg {
		ctx := context.Background()
		if imagePath != "" {
			url, err := uploadFile(ctx, svc, imagePath)
			if err != nil {
				return assetSavedMsg{asset: a, err: err}
			}
			a.Images = append(a.Images, url)
		}
		var (
			saved model.Asset
			err   error
		)
		if editing {
			saved, err = svc.Update(ctx, a)
		} else {
			saved, err = svc.Create(ctx, a)
		}
		return assetSavedMsg{asset: saved, err: err}
	}
}

func uploadFile(ctx context.Context, svc *service.AssetService, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return svc.UploadImage(ctx, filepath.Base(path), f)
}

func (m Model) favoriteAsset(a model.Asset) tea.Cmd {
	svc := m.svc.Assets
	return func() tea.Msg {
		updated, err := svc.ToggleFavorite(context.Background(), a)
		return assetFavoritedMsg{asset: updated, err: err}
	}
}

func (m Model) deleteAsset(id string) tea.Cmd {
	svc := m.svc.Assets
	return func() tea.Msg {
		return assetDeletedMsg{id: id, err: svc.Delete(context.Background(), id)}
	}
}

func (m Model) borrowAction(id, label string, run func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return borrowDoneMsg{id: id, action: label, err: run(context.Background())}
	}
}

// errorText renders err for the status bar, preferring the server's
// message when one came back.
func errorText(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return err.Error()
}
