// Package transaction records and reads the immutable transaction
// ledger. References are the idempotency keys: one reference per logical
// money movement, generated here (UUID) when the processor did not
// supply one.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordParams describes a transaction to be recorded.
type RecordParams struct {
	UserID     uint
	Amount     decimal.Decimal
	Type       string
	Status     string
	MethodType string
	Merchant   string
	Narration  string
	Reference  string // generated when empty
}

// Service is the transaction recorder.
type Service interface {
	Record(ctx context.Context, params RecordParams) (*models.Transaction, error)
	Get(ctx context.Context, id uint) (*models.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*models.Transaction, error)
	FindPendingTransfer(ctx context.Context, reference, transferCode string) (*models.Transaction, error)
	MarkStatus(ctx context.Context, id uint, from, to string) error
	AttachTransfer(ctx context.Context, id uint, reference, transferCode string) error
	List(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error)
	PendingTransfersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Transaction, error)
}

type service struct {
	repo       repositories.TransactionRepository
	walletRepo repositories.WalletRepository
}

// NewService creates a new transaction service.
func NewService(repo repositories.TransactionRepository, walletRepo repositories.WalletRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	if walletRepo == nil {
		panic("wallet repo is required")
	}
	return &service{repo: repo, walletRepo: walletRepo}
}

// New builds an unpersisted transaction from params, assigning a UUID
// reference when none was given. Orchestrators use this to construct the
// record they hand to the wallet accessor's paired operations.
func New(params RecordParams) *models.Transaction {
	if params.Reference == "" {
		params.Reference = uuid.NewString()
	}
	return &models.Transaction{
		UserID:     params.UserID,
		Amount:     params.Amount.Round(2),
		Type:       params.Type,
		Status:     params.Status,
		MethodType: params.MethodType,
		Merchant:   params.Merchant,
		Narration:  params.Narration,
		Reference:  params.Reference,
	}
}

func (s *service) Record(ctx context.Context, params RecordParams) (*models.Transaction, error) {
	if params.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("amount must be greater than 0")
	}

	txn := New(params)
	if err := s.repo.Create(txn); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	return txn, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	txn, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

func (s *service) GetByReference(ctx context.Context, reference string) (*models.Transaction, error) {
	txn, err := s.repo.GetByReference(reference)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

func (s *service) FindPendingTransfer(ctx context.Context, reference, transferCode string) (*models.Transaction, error) {
	txn, err := s.repo.FindPendingTransfer(reference, transferCode)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return txn, nil
}

// MarkStatus transitions a transaction between statuses. Transitions out
// of success or failed are rejected: those statuses are terminal.
func (s *service) MarkStatus(ctx context.Context, id uint, from, to string) error {
	if from != models.TransactionStatusPending {
		return domain.Validation("only pending transactions can transition")
	}
	if err := s.walletRepo.UpdateTransactionStatus(id, from, to); err != nil {
		return err
	}
	return nil
}

func (s *service) AttachTransfer(ctx context.Context, id uint, reference, transferCode string) error {
	if err := s.repo.UpdateTransferDetails(id, reference, transferCode); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) PendingTransfersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Transaction, error) {
	return s.repo.PendingTransfersOlderThan(ctx, cutoff)
}
