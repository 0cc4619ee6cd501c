package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"payloow/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(txn *models.Transaction) error {
	if err := r.db.Create(txn).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateReference
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &txn, nil
}

func (r *transactionRepository) FindPendingTransfer(reference, transferCode string) (*models.Transaction, error) {
	predicate, args, ok := pendingTransferPredicate(reference, transferCode)
	if !ok {
		return nil, ErrTransactionNotFound
	}

	var txn models.Transaction
	err := r.db.
		Where("status = ?", models.TransactionStatusPending).
		Where(predicate, args...).
		First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find pending transfer: %w", err)
	}
	return &txn, nil
}

// pendingTransferPredicate builds the identifier match from the
// non-empty identifiers only. Withdrawals that have no transfer code
// attached yet store '' in transfer_code, so an empty identifier must
// never become a match condition: `transfer_code = ''` would settle an
// unrelated in-flight withdrawal.
func pendingTransferPredicate(reference, transferCode string) (string, []interface{}, bool) {
	switch {
	case reference != "" && transferCode != "":
		return "reference = ? OR transfer_code = ?", []interface{}{reference, transferCode}, true
	case reference != "":
		return "reference = ?", []interface{}{reference}, true
	case transferCode != "":
		return "transfer_code = ?", []interface{}{transferCode}, true
	default:
		return "", nil, false
	}
}

func (r *transactionRepository) UpdateTransferDetails(id uint, reference, transferCode string) error {
	res := r.db.Model(&models.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reference":     reference,
			"transfer_code": transferCode,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update transfer details: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (r *transactionRepository) PendingTransfersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ? AND created_at < ?",
			models.TransactionTypeTransfer, models.TransactionStatusPending, cutoff).
		Order("created_at ASC").
		Find(&txns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transfers: %w", err)
	}
	return txns, nil
}
