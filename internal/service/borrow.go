package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// ErrInvalidBorrowRange is returned when a request ends before it starts.
var ErrInvalidBorrowRange = errors.New("borrow end date is before start date")

// BorrowService negotiates loans. Every transition is decided by the
// server; the client only asks.
type BorrowService struct {
	api    BorrowAPI
	cache  *cache.Cache
	logger *slog.Logger
}

// NewBorrowService creates the service.
func NewBorrowService(api BorrowAPI, c *cache.Cache, logger *slog.Logger) *BorrowService {
	return &BorrowService{api: api, cache: c, logger: logger}
}

// Incoming lists requests for assets the user owns.
func (s *BorrowService) Incoming(ctx context.Context) ([]model.BorrowRequest, error) {
	return s.list(ctx, model.RoleOwner)
}

// Outgoing lists requests the user made.
func (s *BorrowService) Outgoing(ctx context.Context) ([]model.BorrowRequest, error) {
	return s.list(ctx, model.RoleRequester)
}

func (s *BorrowService) list(ctx context.Context, role model.BorrowRole) ([]model.BorrowRequest, error) {
	reqs, err := cache.Query(ctx, s.cache, cache.Borrow(string(role)),
		func(ctx context.Context) ([]model.BorrowRequest, error) {
			return s.api.ListBorrowRequests(ctx, role)
		})
	if err != nil {
		return nil, fmt.Errorf("listing %s requests: %w", role, err)
	}
	return reqs, nil
}

// Create asks to borrow assetID between start and end.
func (s *BorrowService) Create(
	ctx context.Context,
	assetID string,
	start, end time.Time,
	note string,
) (model.BorrowRequest, error) {
	if end.Before(start) {
		return model.BorrowRequest{}, ErrInvalidBorrowRange
	}
	created, err := s.api.CreateBorrowRequest(ctx, api.CreateBorrowRequest{
		AssetID:   assetID,
		StartDate: start,
		EndDate:   end,
		Note:      note,
	})
	if err != nil {
		return model.BorrowRequest{}, fmt.Errorf("requesting asset %s: %w", assetID, err)
	}
	s.invalidate()
	return *created, nil
}

// Approve accepts a pending request.
func (s *BorrowService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ActionApprove)
}

// Deny rejects a pending request.
func (s *BorrowService) Deny(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ActionDeny)
}

// Cancel withdraws the user's own pending request.
func (s *BorrowService) Cancel(ctx context.Context, id string) error {
	return s.transition(ctx, id, model.ActionCancel)
}

func (s *BorrowService) transition(ctx context.Context, id string, action model.BorrowAction) error {
	if err := s.api.TransitionBorrowRequest(ctx, id, action); err != nil {
		return err
	}
	s.invalidate()
	s.logger.Info("borrow request transition", slog.String("id", id), slog.String("action", string(action)))
	return nil
}

// Decide records an approve or deny decision with an optional note and
// return date.
func (s *BorrowService) Decide(
	ctx context.Context,
	id string,
	decision api.Decision,
	note string,
	dueDate *time.Time,
) error {
	if decision != api.DecisionApprove && decision != api.DecisionDeny {
		return fmt.Errorf("unknown decision %q", decision)
	}
	if err := s.api.DecideBorrowRequest(ctx, id, api.DecisionRequest{
		Decision: decision,
		Note:     note,
		DueDate:  dueDate,
	}); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Complete marks an approved loan as returned.
func (s *BorrowService) Complete(ctx context.Context, id, note string) error {
	if err := s.api.CompleteBorrowRequest(ctx, id, note); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Asset status follows loans, so the asset list goes stale too.
func (s *BorrowService) invalidate() {
	s.cache.InvalidateKind(cache.KindBorrow)
	s.cache.Invalidate(cache.Assets())
}
