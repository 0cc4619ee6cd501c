package reconciliation

import (
	"context"
	"errors"
	"testing"
	"time"

	"payloow/internal/models"
	"payloow/internal/services/paystack"
	"payloow/internal/services/transaction"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxnService struct {
	transaction.Service
	pending    []models.Transaction
	gotCutoff  time.Time
	pendingErr error
}

func (f *fakeTxnService) PendingTransfersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Transaction, error) {
	f.gotCutoff = cutoff
	return f.pending, f.pendingErr
}

type fakeVerifier struct {
	statuses map[string]*paystack.TransferStatus
	errs     map[string]error
}

func (f *fakeVerifier) VerifyTransfer(ctx context.Context, reference string) (*paystack.TransferStatus, error) {
	if err, ok := f.errs[reference]; ok {
		return nil, err
	}
	return f.statuses[reference], nil
}

type fakeSettler struct {
	succeeded []string
	failed    []string
}

func (f *fakeSettler) Handle(ctx context.Context, rawBody []byte, signature string) error { return nil }

func (f *fakeSettler) SettleTransferSuccess(ctx context.Context, reference, transferCode string) error {
	f.succeeded = append(f.succeeded, reference)
	return nil
}

func (f *fakeSettler) SettleTransferFailure(ctx context.Context, reference, transferCode string, amountMinor int64) error {
	f.failed = append(f.failed, reference)
	return nil
}

func pendingTransfer(reference string) models.Transaction {
	return models.Transaction{
		UserID:    1,
		Amount:    decimal.NewFromInt(100),
		Type:      models.TransactionTypeTransfer,
		Status:    models.TransactionStatusPending,
		Reference: reference,
	}
}

func TestSweep(t *testing.T) {
	txns := &fakeTxnService{pending: []models.Transaction{
		pendingTransfer("trf_ok"),
		pendingTransfer("trf_failed"),
		pendingTransfer("trf_reversed"),
		pendingTransfer("trf_inflight"),
	}}
	verifier := &fakeVerifier{statuses: map[string]*paystack.TransferStatus{
		"trf_ok":       {Status: "success", Reference: "trf_ok"},
		"trf_failed":   {Status: "failed", Reference: "trf_failed", AmountMinor: 10000},
		"trf_reversed": {Status: "reversed", Reference: "trf_reversed", AmountMinor: 10000},
		"trf_inflight": {Status: "pending", Reference: "trf_inflight"},
	}}
	settler := &fakeSettler{}

	sweeper := NewSweeper(txns, verifier, settler, Config{GracePeriod: 15 * time.Minute})
	require.NoError(t, sweeper.Sweep(context.Background()))

	assert.Equal(t, []string{"trf_ok"}, settler.succeeded)
	assert.ElementsMatch(t, []string{"trf_failed", "trf_reversed"}, settler.failed)
	assert.WithinDuration(t, time.Now().Add(-15*time.Minute), txns.gotCutoff, 5*time.Second)
}

func TestSweep_VerifyErrorSkipsTransfer(t *testing.T) {
	txns := &fakeTxnService{pending: []models.Transaction{
		pendingTransfer("trf_unreachable"),
		pendingTransfer("trf_ok"),
	}}
	verifier := &fakeVerifier{
		statuses: map[string]*paystack.TransferStatus{
			"trf_ok": {Status: "success", Reference: "trf_ok"},
		},
		errs: map[string]error{
			"trf_unreachable": errors.New("connection refused"),
		},
	}
	settler := &fakeSettler{}

	sweeper := NewSweeper(txns, verifier, settler, Config{})
	require.NoError(t, sweeper.Sweep(context.Background()))

	// The unreachable transfer is left pending for the next sweep; the
	// rest of the batch still settles.
	assert.Equal(t, []string{"trf_ok"}, settler.succeeded)
	assert.Empty(t, settler.failed)
}

func TestSweep_ListFailure(t *testing.T) {
	txns := &fakeTxnService{pendingErr: errors.New("db down")}
	sweeper := NewSweeper(txns, &fakeVerifier{}, &fakeSettler{}, Config{})

	assert.Error(t, sweeper.Sweep(context.Background()))
}

func TestNewSweeper_Defaults(t *testing.T) {
	sweeper := NewSweeper(&fakeTxnService{}, &fakeVerifier{}, &fakeSettler{}, Config{})
	assert.Equal(t, "*/10 * * * *", sweeper.config.Schedule)
	assert.Equal(t, 15*time.Minute, sweeper.config.GracePeriod)
	assert.Equal(t, 2*time.Minute, sweeper.config.Timeout)
}
