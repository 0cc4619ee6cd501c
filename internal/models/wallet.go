package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Wallet struct {
	ID        uint            `gorm:"primarykey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0"`
	Currency  string          `gorm:"default:'NGN'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
