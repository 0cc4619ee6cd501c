package repositories

import (
	"context"
	"time"

	"payloow/internal/models"
)

// TransactionRepository provides reads over the append-mostly
// transaction collection, plus the standalone writes that do not need to
// share a storage transaction with a balance mutation.
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	GetByReference(reference string) (*models.Transaction, error)

	// FindPendingTransfer locates the pending transaction matching either
	// the processor reference or the transfer code.
	FindPendingTransfer(reference, transferCode string) (*models.Transaction, error)

	UpdateTransferDetails(id uint, reference, transferCode string) error

	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
	PendingTransfersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Transaction, error)
}
