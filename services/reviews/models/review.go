package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusFlagged  = "flagged"
)

// Review is a customer's rating of a good. New and edited reviews sit in
// "pending" until a moderator approves or flags them.
type Review struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerUsername string    `gorm:"not null;index" json:"customer_username"`
	GoodName         string    `gorm:"not null;index" json:"good_name"`
	Rating           int       `gorm:"not null" json:"rating"`
	Comment          string    `json:"comment"`
	Status           string    `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
