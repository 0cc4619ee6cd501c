package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeCharge         = "charge"
	TransactionTypeDeposit        = "deposit"
	TransactionTypeTransfer       = "transfer"
	TransactionTypeVirtualAccount = "virtual-account-funding"
	TransactionTypeEasyBuy        = "easybuy"
	TransactionTypeCoursePayment  = "course-payment"
)

// Transaction statuses. Success and failed are terminal.
const (
	TransactionStatusPending = "pending"
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)

// Method types
const (
	MethodTypeCredit = "credit"
	MethodTypeDebit  = "debit"
)

// Merchants
const (
	MerchantPaystack    = "paystack"
	MerchantFlutterwave = "flutterwave"
	MerchantPayloow     = "payloow"
)

// Transaction is the immutable record of one balance-affecting event.
// Amount is always stored positive; MethodType carries the sign.
// Reference is the idempotency key for the logical money movement.
type Transaction struct {
	ID           uint            `gorm:"primarykey"`
	UserID       uint            `gorm:"not null;index:idx_transactions_user_status"`
	Amount       decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Type         string          `gorm:"not null"`
	Status       string          `gorm:"not null;default:'pending';index:idx_transactions_user_status"`
	MethodType   string          `gorm:"not null"`
	Merchant     string          `gorm:"not null"`
	Reference    string          `gorm:"uniqueIndex;not null"`
	TransferCode string          `gorm:"index"` // processor transfer code, set once a transfer is initiated
	Narration    string          `gorm:"default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
