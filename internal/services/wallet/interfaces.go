package wallet

import (
	"context"
	"time"

	"payloow/internal/models"

	"github.com/shopspring/decimal"
)

// Service is the wallet accessor: the only component allowed to mutate
// balances. Credit and Debit are the primitives; the AndRecord variants
// pair the balance mutation with its causing transaction record inside
// one storage transaction, which is what every orchestrator uses.
type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error)

	Credit(ctx context.Context, userID uint, amount decimal.Decimal) error
	Debit(ctx context.Context, userID uint, amount decimal.Decimal) error

	CreditAndRecord(ctx context.Context, userID uint, amount decimal.Decimal, rec *models.Transaction) error
	DebitAndRecord(ctx context.Context, userID uint, amount decimal.Decimal, rec *models.Transaction) error

	// CompensateDebit reverses a previously-debited operation: flips the
	// pending transaction to failed, credits the amount back, and records
	// the reversal, all in one storage transaction.
	CompensateDebit(ctx context.Context, params CompensationParams) error
}

// CompensationParams describes the refund of a failed debit-type flow.
type CompensationParams struct {
	PendingTxnID uint
	UserID       uint
	Amount       decimal.Decimal
	Reversal     *models.Transaction
}

// CacheOperator is the subset of the cache service the accessor needs.
type CacheOperator interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool)
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	InvalidateWallet(ctx context.Context, userID uint) error
}

// MetricsCollector receives operational signals. AlertCompensationFailure
// is the hook for money-in-limbo conditions: a refund that could not be
// persisted must reach an operator, not just an HTTP response.
type MetricsCollector interface {
	RecordTransaction(txType string, amount decimal.Decimal)
	RecordError(operation, errType string)
	RecordOperationDuration(operation string, duration time.Duration)
	AlertCompensationFailure(userID uint, reference string, err error)
}
