package repositories

import (
	"context"
	"errors"
	"fmt"

	"payloow/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateWallet
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

// Credit increases the balance with a single atomic UPDATE expression.
func (r *walletRepository) Credit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return r.adjustBalance(ctx, userID, "balance + ?", amount)
}

// Debit decreases the balance. Sufficient-funds checks are the caller's
// responsibility; the statement itself never reads the balance first.
func (r *walletRepository) Debit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	return r.adjustBalance(ctx, userID, "balance - ?", amount)
}

func (r *walletRepository) adjustBalance(ctx context.Context, userID uint, expr string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ?", userID).
		UpdateColumn("balance", gorm.Expr(expr, amount))
	if res.Error != nil {
		return fmt.Errorf("failed to update balance: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWalletNotFound
	}
	return nil
}

func (r *walletRepository) CreateTransaction(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// UpdateTransactionStatus flips a transaction from one status to another.
// The WHERE clause carries the expected current status, so a transition
// out of a terminal status (or a concurrent double-settle) affects zero
// rows and is rejected.
func (r *walletRepository) UpdateTransactionStatus(id uint, from, to string) error {
	res := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrStatusTerminal
	}
	return nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
