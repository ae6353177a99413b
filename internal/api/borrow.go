package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
)

// Decision is the owner's verdict on a pending request.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionDeny    Decision = "deny"
)

// DecisionRequest is the body of POST /borrow-requests/{id}/decision.
type DecisionRequest struct {
	Decision Decision   `json:"decision"`
	Note     string     `json:"note,omitempty"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
}

// CreateBorrowRequest is the body of POST /borrow-requests.
type CreateBorrowRequest struct {
	AssetID   string    `json:"assetId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Note      string    `json:"note,omitempty"`
}

type noteBody struct {
	Note string `json:"note,omitempty"`
}

// ListBorrowRequests fetches the requests where the user has role.
func (c *Client) ListBorrowRequests(ctx context.Context, role model.BorrowRole) ([]model.BorrowRequest, error) {
	var reqs []model.BorrowRequest
	q := url.Values{"role": {string(role)}}
	if err := c.Get(ctx, "/borrow-requests?"+q.Encode(), &reqs); err != nil {
		return nil, fmt.Errorf("listing %s borrow requests: %w", role, err)
	}
	return reqs, nil
}

// CreateBorrowRequest asks an owner to lend an asset.
func (c *Client) CreateBorrowRequest(ctx context.Context, in CreateBorrowRequest) (*model.BorrowRequest, error) {
	var created model.BorrowRequest
	if err := c.Post(ctx, "/borrow-requests", in, &created); err != nil {
		return nil, fmt.Errorf("creating borrow request for asset %s: %w", in.AssetID, err)
	}
	return &created, nil
}

// TransitionBorrowRequest posts one of the bodiless approve, deny or cancel
// transitions.
func (c *Client) TransitionBorrowRequest(ctx context.Context, id string, action model.BorrowAction) error {
	switch action {
	case model.ActionApprove, model.ActionDeny, model.ActionCancel:
	default:
		return fmt.Errorf("unsupported borrow transition %q", action)
	}
	path := "/borrow-requests/" + url.PathEscape(id) + "/" + string(action)
	if err := c.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("%s borrow request %s: %w", action, id, err)
	}
	return nil
}

// DecideBorrowRequest records the owner's decision with an optional note
// and return date.
func (c *Client) DecideBorrowRequest(ctx context.Context, id string, d DecisionRequest) error {
	path := "/borrow-requests/" + url.PathEscape(id) + "/decision"
	if err := c.Post(ctx, path, d, nil); err != nil {
		return fmt.Errorf("deciding borrow request %s: %w", id, err)
	}
	return nil
}

// CompleteBorrowRequest marks a loan as returned.
func (c *Client) CompleteBorrowRequest(ctx context.Context, id, note string) error {
	path := "/borrow-requests/" + url.PathEscape(id) + "/complete"
	if err := c.Post(ctx, path, noteBody{Note: note}, nil); err != nil {
		return fmt.Errorf("completing borrow request %s: %w", id, err)
	}
	return nil
}
