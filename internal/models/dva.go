package models

import "time"

// DVA binds a user one-to-one to a processor-issued dedicated virtual
// account. Inbound bank transfers to AccountNumber are reported by the
// processor via webhook against CustomerCode.
type DVA struct {
	ID            uint   `gorm:"primarykey"`
	UserID        uint   `gorm:"uniqueIndex;not null"`
	CustomerCode  string `gorm:"index;not null"`
	BankName      string
	AccountNumber string
	DVAReference  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
