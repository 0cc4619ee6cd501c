package repositories

import (
	"context"
	"errors"

	"payloow/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDuplicateWallet     = errors.New("wallet already exists")
	ErrDuplicateReference  = errors.New("transaction reference already exists")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrStatusTerminal      = errors.New("transaction status is terminal")
)

// WalletRepository owns every write to wallet balances. Credit and Debit
// are single-statement balance expressions; nothing in the engine does a
// read-modify-write on a balance. CreateTransaction and
// UpdateTransactionStatus live here too so balance mutation and its
// causing transaction record can share one storage transaction via
// ExecuteInTransaction.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)

	Credit(ctx context.Context, userID uint, amount decimal.Decimal) error
	Debit(ctx context.Context, userID uint, amount decimal.Decimal) error

	CreateTransaction(txn *models.Transaction) error
	UpdateTransactionStatus(id uint, from, to string) error

	ExecuteInTransaction(fn func(WalletRepository) error) error
}
