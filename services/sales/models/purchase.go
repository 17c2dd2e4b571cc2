package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	// PurchaseStatusCompleted marks a sale whose remote effects and local
	// record all succeeded.
	PurchaseStatusCompleted = "completed"
	// PurchaseStatusUnreconciled marks a sale where the wallet debit
	// succeeded, the stock decrement failed, and the compensating credit
	// also failed. These rows are the operator's reconciliation queue.
	PurchaseStatusUnreconciled = "unreconciled"
)

// Purchase is a denormalized fact record: it snapshots the price at sale
// time and never references live catalog or customer state, so later price
// or stock changes cannot rewrite history.
type Purchase struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerUsername string    `gorm:"not null;index" json:"customer_username"`
	GoodName         string    `gorm:"not null" json:"good_name"`
	Price            float64   `gorm:"not null" json:"price"`
	Status           string    `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	PurchaseDate     time.Time `gorm:"autoCreateTime" json:"purchase_date"`
}
