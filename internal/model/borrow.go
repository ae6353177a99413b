package model

import "time"

// BorrowStatus is the server-adjudicated state of a borrow request.
type BorrowStatus string

const (
	BorrowPending   BorrowStatus = "pending"
	BorrowApproved  BorrowStatus = "approved"
	BorrowDenied    BorrowStatus = "denied"
	BorrowCancelled BorrowStatus = "cancelled"
	BorrowReturned  BorrowStatus = "returned"
)

// BorrowRole is the current user's side of a borrow request.
type BorrowRole string

const (
	RoleOwner     BorrowRole = "owner"
	RoleRequester BorrowRole = "requester"
)

// BorrowAction names a transition the client can ask the server for.
type BorrowAction string

const (
	ActionApprove  BorrowAction = "approve"
	ActionDeny     BorrowAction = "deny"
	ActionCancel   BorrowAction = "cancel"
	ActionComplete BorrowAction = "complete"
)

// BorrowRequest is a proposed loan of an asset from its owner to a requester.
type BorrowRequest struct {
	ID          string       `json:"id,omitempty"`
	AssetID     string       `json:"assetId"`
	AssetName   string       `json:"assetName,omitempty"`
	RequesterID string       `json:"requesterId,omitempty"`
	OwnerID     string       `json:"ownerId,omitempty"`
	StartDate   time.Time    `json:"startDate"`
	EndDate     time.Time    `json:"endDate"`
	Status      BorrowStatus `json:"status,omitempty"`
	Note        string       `json:"note,omitempty"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CreatedAt   time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt,omitempty"`
}

// AllowedActions returns the transitions offered to role for the request's
// current status. The server remains the arbiter; this only decides which
// controls are shown.
func (r BorrowRequest) AllowedActions(role BorrowRole) []BorrowAction {
	switch {
	case role == RoleOwner && r.Status == BorrowPending:
		return []BorrowAction{ActionApprove, ActionDeny}
	case role == RoleOwner && r.Status == BorrowApproved:
		return []BorrowAction{ActionComplete}
	case role == RoleRequester && r.Status == BorrowPending:
		return []BorrowAction{ActionCancel}
	default:
		return nil
	}
}

// Allows reports whether action is offered to role.
func (r BorrowRequest) Allows(role BorrowRole, action BorrowAction) bool {
	for _, a := range r.AllowedActions(role) {
		if a == action {
			return true
		}
	}
	return false
}
