package domain

import "time"

// DriverReview is a client's rating of a completed order. Reviews are
// append-only and never updated after creation.
type DriverReview struct {
	ID        string
	ProfileID string
	ClientID  string
	OrderID   string
	Rating    int // 1..5
	Comment   string
	CreatedAt time.Time
}

// AdminAction is an append-only audit record of an administrative
// operation, such as approving or rejecting a driver.
type AdminAction struct {
	ID           string
	AdminID      string
	ActionType   string
	TargetUserID string
	Details      string
	CreatedAt    time.Time
}

// Admin action types.
const (
	AdminActionApproveDriver = "approve_driver"
	AdminActionRejectDriver  = "reject_driver"
)
