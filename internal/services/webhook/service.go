// Package webhook reconciles processor-side truth into the local
// ledger. Paystack delivers events at least once and in no particular
// order, so every path here is idempotent: reference lookup first, the
// unique index on references as the backstop.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"
	"payloow/internal/services/paystack"
	"payloow/internal/services/transaction"
	"payloow/internal/services/wallet"

	"github.com/shopspring/decimal"
)

// SignatureVerifier authenticates an inbound webhook body.
type SignatureVerifier interface {
	VerifyWebhookSignature(signature string, payload []byte) bool
}

// Service is the webhook reconciler. The Settle methods are shared with
// the reconciliation sweep, which settles the same way a webhook would.
type Service interface {
	Handle(ctx context.Context, rawBody []byte, signature string) error
	SettleTransferSuccess(ctx context.Context, reference, transferCode string) error
	SettleTransferFailure(ctx context.Context, reference, transferCode string, amountMinor int64) error
}

type service struct {
	verifier SignatureVerifier
	wallet   wallet.Service
	txns     transaction.Service
	dvaRepo  repositories.DVARepository
	userRepo repositories.UserRepository
}

func NewService(
	verifier SignatureVerifier,
	walletSvc wallet.Service,
	txns transaction.Service,
	dvaRepo repositories.DVARepository,
	userRepo repositories.UserRepository,
) Service {
	if verifier == nil {
		panic("verifier is required")
	}
	if walletSvc == nil {
		panic("wallet service is required")
	}
	if txns == nil {
		panic("transaction service is required")
	}
	return &service{
		verifier: verifier,
		wallet:   walletSvc,
		txns:     txns,
		dvaRepo:  dvaRepo,
		userRepo: userRepo,
	}
}

func (s *service) Handle(ctx context.Context, rawBody []byte, signature string) error {
	if !s.verifier.VerifyWebhookSignature(signature, rawBody) {
		return domain.ErrInvalidSignature
	}

	var event Event
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return domain.Validation("invalid webhook payload")
	}

	switch event.Event {
	case EventChargeSuccess:
		var data ChargeData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return domain.Validation("invalid charge payload")
		}
		if data.isDedicatedAccountFunding() {
			return s.handleDVAFunding(ctx, &data)
		}
		return s.handleCharge(ctx, &data)

	case EventTransferSuccess:
		var data TransferData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return domain.Validation("invalid transfer payload")
		}
		return s.SettleTransferSuccess(ctx, data.Reference, data.TransferCode)

	case EventTransferFailed:
		var data TransferData
		if err := json.Unmarshal(event.Data, &data); err != nil {
			return domain.Validation("invalid transfer payload")
		}
		return s.SettleTransferFailure(ctx, data.Reference, data.TransferCode, data.Amount)

	default:
		// Acknowledge events we don't model; telling the processor to
		// retry them would only cause redelivery storms.
		log.Printf("unhandled webhook event: %s", event.Event)
		return nil
	}
}

// handleDVAFunding credits the wallet bound to the dedicated account
// that received an inbound bank transfer.
func (s *service) handleDVAFunding(ctx context.Context, data *ChargeData) error {
	code := data.customerCode()
	if code == "" {
		return domain.Validation("customer code missing from payload")
	}

	dva, err := s.dvaRepo.GetByCustomerCode(code)
	if err != nil {
		if errors.Is(err, repositories.ErrDVANotFound) {
			return domain.ErrDVANotFound
		}
		return err
	}

	amount := paystack.FromMinorUnits(data.Amount)
	rec := transaction.New(transaction.RecordParams{
		UserID:     dva.UserID,
		Amount:     amount,
		Type:       models.TransactionTypeVirtualAccount,
		Status:     models.TransactionStatusSuccess,
		MethodType: models.MethodTypeCredit,
		Merchant:   models.MerchantPaystack,
		Narration:  fmt.Sprintf("DVA funding via %s", dva.BankName),
		Reference:  data.Reference,
	})
	return s.creditOnce(ctx, dva.UserID, amount, rec)
}

// handleCharge credits deposits and course payments confirmed by the
// processor, resolved through the paystack customer code.
func (s *service) handleCharge(ctx context.Context, data *ChargeData) error {
	var txnType string
	switch data.Metadata.Type {
	case "deposit":
		txnType = models.TransactionTypeDeposit
	case "course-payment":
		txnType = models.TransactionTypeCoursePayment
	default:
		log.Printf("unhandled charge type, reference %s", data.Reference)
		return nil
	}

	user, err := s.userRepo.GetByCustomerCode(data.customerCode())
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	amount := paystack.FromMinorUnits(data.Amount)
	rec := transaction.New(transaction.RecordParams{
		UserID:     user.ID,
		Amount:     amount,
		Type:       txnType,
		Status:     models.TransactionStatusSuccess,
		MethodType: models.MethodTypeCredit,
		Merchant:   models.MerchantPaystack,
		Narration:  fmt.Sprintf("Deposit ₦%s", amount),
		Reference:  data.Reference,
	})
	return s.creditOnce(ctx, user.ID, amount, rec)
}

// creditOnce applies a credit keyed by the processor reference exactly
// once: a prior transaction with the same reference means the event was
// already applied, and the insert's unique index catches the race
// between two concurrent deliveries.
func (s *service) creditOnce(ctx context.Context, userID uint, amount decimal.Decimal, rec *models.Transaction) error {
	if _, err := s.txns.GetByReference(ctx, rec.Reference); err == nil {
		log.Printf("webhook replay ignored, reference %s already applied", rec.Reference)
		return nil
	} else if !errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}

	if err := s.wallet.CreditAndRecord(ctx, userID, amount, rec); err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			log.Printf("webhook replay ignored, reference %s already applied", rec.Reference)
			return nil
		}
		return err
	}
	return nil
}

func (s *service) SettleTransferSuccess(ctx context.Context, reference, transferCode string) error {
	txn, err := s.txns.FindPendingTransfer(ctx, reference, transferCode)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			log.Printf("no pending transaction for transfer %s", firstNonEmpty(reference, transferCode))
			return nil
		}
		return err
	}

	// The debit already happened at withdrawal initiation; only the
	// status flips here.
	if err := s.txns.MarkStatus(ctx, txn.ID,
		models.TransactionStatusPending, models.TransactionStatusSuccess); err != nil {
		if errors.Is(err, repositories.ErrStatusTerminal) {
			return nil
		}
		return err
	}
	log.Printf("transfer successful: %s", firstNonEmpty(reference, transferCode))
	return nil
}

func (s *service) SettleTransferFailure(ctx context.Context, reference, transferCode string, amountMinor int64) error {
	txn, err := s.txns.FindPendingTransfer(ctx, reference, transferCode)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			log.Printf("no pending transaction for failed transfer %s", firstNonEmpty(reference, transferCode))
			return nil
		}
		return err
	}

	amount := txn.Amount
	if amountMinor > 0 {
		amount = paystack.FromMinorUnits(amountMinor)
	}

	reversal := transaction.New(transaction.RecordParams{
		UserID:     txn.UserID,
		Amount:     amount,
		Type:       models.TransactionTypeTransfer,
		Status:     models.TransactionStatusSuccess,
		MethodType: models.MethodTypeCredit,
		Merchant:   models.MerchantPaystack,
		Narration:  "Withdrawal reversal - transfer failed",
		Reference:  txn.Reference + "-reversal",
	})

	err = s.wallet.CompensateDebit(ctx, wallet.CompensationParams{
		PendingTxnID: txn.ID,
		UserID:       txn.UserID,
		Amount:       amount,
		Reversal:     reversal,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateReference) {
			return nil
		}
		return err
	}
	log.Printf("transfer failed, refunded ₦%s to user %d", amount, txn.UserID)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
