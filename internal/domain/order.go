package domain

import "time"

// OrderStatus represents the current status of an order.
//
// Allowed transitions: pending -> accepted -> completed, and
// pending|accepted -> cancelled. Nothing leaves completed or cancelled.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order represents a single ride request from a client, optionally
// fulfilled by a driver.
type Order struct {
	ID              string
	ClientID        string
	DriverID        string // empty until accepted
	PickupLocation  string
	DropoffLocation string
	PickupTime      time.Time
	PassengersCount int
	LuggageCount    int
	ClientPrice     float64
	FinalPrice      float64 // set equal to ClientPrice on completion
	HasFinalPrice   bool
	Status          OrderStatus
	CreatedAt       time.Time
	AcceptedAt      time.Time
	CompletedAt     time.Time
}
