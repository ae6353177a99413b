// Package prefs holds client-local UX state: sidebar layout, the last-used
// recurrence schedule and an in-progress sign-up draft. Nothing here is
// authoritative; the remote API owns all domain data.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/maintenance"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// Preference keys.
const (
	KeySidebarExpanded    = "sidebar.expanded"
	KeyRecurrenceDefaults = "maintenance.recurrence_defaults"
	KeySignupDraft        = "auth.signup_draft"
)

// Storage is the persistence port Preferences reads and writes through.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Subscribe(key string, fn func(value string)) (unsubscribe func())
}

// Recurrence is the schedule prefilled into new recurring tasks.
type Recurrence struct {
	Interval int                  `json:"interval"`
	Unit     model.RecurrenceUnit `json:"unit"`
}

// DefaultRecurrence is used until the user saves a recurring task.
var DefaultRecurrence = Recurrence{
	Interval: maintenance.DefaultInterval,
	Unit:     maintenance.DefaultUnit,
}

// SignupDraft is the partially filled sign-in form, kept so an interrupted
// login can resume. It never holds the token itself.
type SignupDraft struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Preferences provides typed access to stored UX state.
type Preferences struct {
	storage Storage
	logger  *slog.Logger
}

// New returns Preferences backed by storage.
func New(storage Storage, logger *slog.Logger) *Preferences {
	return &Preferences{storage: storage, logger: logger}
}

// SidebarExpanded reports whether the sidebar is open. It defaults to true.
func (p *Preferences) SidebarExpanded(ctx context.Context) bool {
	raw, ok, err := p.storage.Get(ctx, KeySidebarExpanded)
	if err != nil {
		p.logger.Warn("reading sidebar preference", slog.Any("error", err))
		return true
	}
	if !ok {
		return true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

// SetSidebarExpanded stores the sidebar state.
func (p *Preferences) SetSidebarExpanded(ctx context.Context, expanded bool) error {
	if err := p.storage.Set(ctx, KeySidebarExpanded, strconv.FormatBool(expanded)); err != nil {
		return fmt.Errorf("saving sidebar state: %w", err)
	}
	return nil
}

// RecurrenceDefaults returns the last saved schedule, or DefaultRecurrence
// when none is stored or the stored one is unusable.
func (p *Preferences) RecurrenceDefaults(ctx context.Context) Recurrence {
	var r Recurrence
	ok, err := p.getJSON(ctx, KeyRecurrenceDefaults, &r)
	if err != nil {
		p.logger.Warn("reading recurrence defaults", slog.Any("error", err))
		return DefaultRecurrence
	}
	if !ok || r.Interval < 1 || !r.Unit.Valid() {
		return DefaultRecurrence
	}
	return r
}

// SetRecurrenceDefaults stores the schedule of the last saved recurring task.
func (p *Preferences) SetRecurrenceDefaults(ctx context.Context, r Recurrence) error {
	if r.Interval < 1 || !r.Unit.Valid() {
		return fmt.Errorf("invalid recurrence %d %q", r.Interval, r.Unit)
	}
	return p.setJSON(ctx, KeyRecurrenceDefaults, r)
}

// SignupDraft returns the cached draft, if any.
func (p *Preferences) SignupDraft(ctx context.Context) (SignupDraft, bool) {
	var d SignupDraft
	ok, err := p.getJSON(ctx, KeySignupDraft, &d)
	if err != nil {
		p.logger.Warn("reading signup draft", slog.Any("error", err))
		return SignupDraft{}, false
	}
	return d, ok
}

// SetSignupDraft caches the draft.
func (p *Preferences) SetSignupDraft(ctx context.Context, d SignupDraft) error {
	return p.setJSON(ctx, KeySignupDraft, d)
}

// ClearSignupDraft drops the draft after a successful sign-in.
func (p *Preferences) ClearSignupDraft(ctx context.Context) error {
	if err := p.storage.Delete(ctx, KeySignupDraft); err != nil {
		return fmt.Errorf("clearing signup draft: %w", err)
	}
	return nil
}

// OnChange calls fn with the raw new value whenever key changes.
func (p *Preferences) OnChange(key string, fn func(value string)) (unsubscribe func()) {
	return p.storage.Subscribe(key, fn)
}

func (p *Preferences) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := p.storage.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decoding preference %q: %w", key, err)
	}
	return true, nil
}

func (p *Preferences) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding preference %q: %w", key, err)
	}
	if err := p.storage.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("saving preference %q: %w", key, err)
	}
	return nil
}
