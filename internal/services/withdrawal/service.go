// Package withdrawal moves money out of a wallet to a bank account.
// The posting model is optimistic: the wallet is debited and a pending
// transaction recorded before the processor is contacted, then the
// webhook (or the sweep) finalizes, and a gateway failure triggers a
// compensating refund.
package withdrawal

import (
	"context"
	"errors"
	"fmt"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/services/paystack"
	"payloow/internal/services/transaction"
	"payloow/internal/services/wallet"

	"github.com/shopspring/decimal"
)

// Gateway is the slice of the payment gateway a withdrawal needs.
type Gateway interface {
	CreateTransferRecipient(ctx context.Context, details paystack.BankDetails) (string, error)
	InitiateTransfer(ctx context.Context, amountMinor int64, recipientCode, reference string) (*paystack.Transfer, error)
}

// Result is returned to the caller once the transfer is initiated.
// Finalization to success arrives later via the webhook reconciler.
type Result struct {
	Amount        decimal.Decimal `json:"amount"`
	TransferCode  string          `json:"transferCode"`
	Reference     string          `json:"reference"`
	TransactionID uint            `json:"transactionId"`
}

type Service interface {
	Withdraw(ctx context.Context, userID uint, amount decimal.Decimal, details paystack.BankDetails) (*Result, error)
}

type service struct {
	wallet  wallet.Service
	txns    transaction.Service
	gateway Gateway
}

func NewService(walletSvc wallet.Service, txns transaction.Service, gateway Gateway) Service {
	if walletSvc == nil {
		panic("wallet service is required")
	}
	if txns == nil {
		panic("transaction service is required")
	}
	if gateway == nil {
		panic("gateway is required")
	}
	return &service{wallet: walletSvc, txns: txns, gateway: gateway}
}

func (s *service) Withdraw(ctx context.Context, userID uint, amount decimal.Decimal, details paystack.BankDetails) (*Result, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.Validation("amount must be greater than 0")
	}
	amount = amount.Round(2)

	if details.Name == "" || details.AccountNumber == "" || details.BankCode == "" {
		return nil, domain.Validation("Complete bank details required")
	}

	balance, err := s.wallet.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance) {
		return nil, domain.ErrInsufficientBalance
	}

	// Reserve: debit and pending record in one storage transaction,
	// before any external state exists.
	pending := transaction.New(transaction.RecordParams{
		UserID:     userID,
		Amount:     amount,
		Type:       models.TransactionTypeTransfer,
		Status:     models.TransactionStatusPending,
		MethodType: models.MethodTypeDebit,
		Merchant:   models.MerchantPaystack,
		Narration:  fmt.Sprintf("Withdrawal to %s - %s", details.Name, details.AccountNumber),
	})
	if err := s.wallet.DebitAndRecord(ctx, userID, amount, pending); err != nil {
		return nil, err
	}

	recipientCode, err := s.gateway.CreateTransferRecipient(ctx, details)
	if err != nil {
		return nil, s.compensate(ctx, pending, userID, amount, err)
	}

	// The pending record's own reference is sent to Paystack, so the
	// webhook and the verification endpoint key on an identifier the
	// engine already stored. A timed-out transfer is still matchable.
	transfer, err := s.gateway.InitiateTransfer(ctx, paystack.ToMinorUnits(amount), recipientCode, pending.Reference)
	if err != nil {
		// A timeout is an unknown outcome: the transfer may have gone
		// through, so refunding now risks paying twice. The transaction
		// stays pending for the webhook or the sweep to settle.
		if errors.Is(err, domain.ErrUnknownOutcome) {
			return nil, err
		}
		return nil, s.compensate(ctx, pending, userID, amount, err)
	}

	reference := transfer.Reference
	if reference == "" {
		reference = pending.Reference
	}
	// Attach the processor's transfer code so transfer.success and
	// transfer.failed webhooks that carry only the code still match.
	if err := s.txns.AttachTransfer(ctx, pending.ID, reference, transfer.TransferCode); err != nil {
		return nil, fmt.Errorf("failed to attach transfer details: %w", err)
	}

	return &Result{
		Amount:        amount,
		TransferCode:  transfer.TransferCode,
		Reference:     reference,
		TransactionID: pending.ID,
	}, nil
}

// compensate refunds the reserved amount after a definitive gateway
// failure and surfaces the underlying reason to the caller.
func (s *service) compensate(ctx context.Context, pending *models.Transaction, userID uint, amount decimal.Decimal, cause error) error {
	reversal := transaction.New(transaction.RecordParams{
		UserID:     userID,
		Amount:     amount,
		Type:       models.TransactionTypeTransfer,
		Status:     models.TransactionStatusSuccess,
		MethodType: models.MethodTypeCredit,
		Merchant:   models.MerchantPaystack,
		Narration:  fmt.Sprintf("Withdrawal reversal - %s", cause.Error()),
		Reference:  pending.Reference + "-reversal",
	})

	err := s.wallet.CompensateDebit(ctx, wallet.CompensationParams{
		PendingTxnID: pending.ID,
		UserID:       userID,
		Amount:       amount,
		Reversal:     reversal,
	})
	if err != nil {
		// Debited locally, unconfirmed externally, refund not persisted.
		// CompensateDebit has already raised the operational alert; the
		// caller still needs to know the money is in limbo.
		return fmt.Errorf("withdrawal failed and compensation did not apply: %w", err)
	}

	return domain.WithdrawalFailed(cause.Error())
}
