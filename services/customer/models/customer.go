package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer owns a profile and a wallet. The wallet only changes through the
// dedicated credit/debit operations, never through profile updates.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName     string    `gorm:"not null" json:"first_name"`
	LastName      string    `gorm:"not null" json:"last_name"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Password      string    `gorm:"not null" json:"-"`
	Age           int       `json:"age"`
	Address       string    `json:"address"`
	Gender        string    `gorm:"type:varchar(10)" json:"gender"`
	MaritalStatus string    `gorm:"type:varchar(10)" json:"marital_status"`
	Role          string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	Wallet        float64   `gorm:"not null;default:0" json:"wallet"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
