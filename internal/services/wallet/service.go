package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"

	"github.com/shopspring/decimal"
)

type service struct {
	repo    repositories.WalletRepository
	cache   CacheOperator
	metrics MetricsCollector
}

// NewService creates a new wallet service.
func NewService(repo repositories.WalletRepository, cache CacheOperator, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
	}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if w, ok := s.cache.GetWallet(ctx, userID); ok {
		return w, nil
	}

	w, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, domain.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	s.cache.CacheWallet(ctx, w)
	return w, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	w, err := s.GetWallet(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	return w.Balance, nil
}

func (s *service) CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error) {
	if currency == "" {
		currency = "NGN"
	}
	w := &models.Wallet{
		UserID:   userID,
		Balance:  decimal.Zero,
		Currency: currency,
	}
	if err := s.repo.Create(w); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	s.cache.CacheWallet(ctx, w)
	return w, nil
}

func (s *service) Credit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	amount, err := normalizeAmount(amount)
	if err != nil {
		s.metrics.RecordError("credit", "invalid_amount")
		return err
	}

	if err := s.repo.Credit(ctx, userID, amount); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return domain.ErrWalletNotFound
		}
		s.metrics.RecordError("credit", "storage")
		return err
	}

	s.cache.InvalidateWallet(ctx, userID)
	s.metrics.RecordTransaction("credit", amount)
	return nil
}

// Debit decreases the balance. It does not enforce sufficient funds;
// callers pre-check (see the withdrawal orchestrator).
func (s *service) Debit(ctx context.Context, userID uint, amount decimal.Decimal) error {
	amount, err := normalizeAmount(amount)
	if err != nil {
		s.metrics.RecordError("debit", "invalid_amount")
		return err
	}

	if err := s.repo.Debit(ctx, userID, amount); err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return domain.ErrWalletNotFound
		}
		s.metrics.RecordError("debit", "storage")
		return err
	}

	s.cache.InvalidateWallet(ctx, userID)
	s.metrics.RecordTransaction("debit", amount)
	return nil
}

func (s *service) CreditAndRecord(ctx context.Context, userID uint, amount decimal.Decimal, rec *models.Transaction) error {
	return s.applyAndRecord(ctx, userID, amount, rec, false)
}

func (s *service) DebitAndRecord(ctx context.Context, userID uint, amount decimal.Decimal, rec *models.Transaction) error {
	return s.applyAndRecord(ctx, userID, amount, rec, true)
}

func (s *service) applyAndRecord(ctx context.Context, userID uint, amount decimal.Decimal, rec *models.Transaction, debit bool) error {
	amount, err := normalizeAmount(amount)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.Validation("transaction record is required")
	}

	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("apply_and_record", time.Since(start)) }()

	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		var applyErr error
		if debit {
			applyErr = tx.Debit(ctx, userID, amount)
		} else {
			applyErr = tx.Credit(ctx, userID, amount)
		}
		if applyErr != nil {
			return applyErr
		}
		return tx.CreateTransaction(rec)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return domain.ErrWalletNotFound
		}
		// Duplicate reference means this logical movement was already
		// applied; surface it so the caller can treat it as processed.
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return repositories.ErrDuplicateReference
		}
		s.metrics.RecordError("apply_and_record", "storage")
		return fmt.Errorf("failed to apply wallet mutation: %w", err)
	}

	s.cache.InvalidateWallet(ctx, userID)
	s.metrics.RecordTransaction(rec.Type, amount)
	return nil
}

func (s *service) CompensateDebit(ctx context.Context, params CompensationParams) error {
	amount, err := normalizeAmount(params.Amount)
	if err != nil {
		return err
	}
	if params.Reversal == nil {
		return domain.Validation("reversal record is required")
	}

	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("compensate_debit", time.Since(start)) }()

	err = s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		if err := tx.UpdateTransactionStatus(params.PendingTxnID,
			models.TransactionStatusPending, models.TransactionStatusFailed); err != nil {
			return err
		}
		if err := tx.Credit(ctx, params.UserID, amount); err != nil {
			return err
		}
		return tx.CreateTransaction(params.Reversal)
	})
	if err != nil {
		// A transition that affects zero rows means the transaction was
		// already settled by a concurrent path; the refund must not run
		// twice, so this is not an error condition.
		if errors.Is(err, repositories.ErrStatusTerminal) {
			return nil
		}
		// Money in limbo: debited locally, failed externally, refund not
		// persisted. This goes to operational alerting, never swallowed.
		s.metrics.AlertCompensationFailure(params.UserID, params.Reversal.Reference, err)
		return fmt.Errorf("compensation failed: %w", err)
	}

	s.cache.InvalidateWallet(ctx, params.UserID)
	s.metrics.RecordTransaction("reversal", amount)
	return nil
}

func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.Validation("amount must be greater than 0")
	}
	return amount.Round(2), nil
}
