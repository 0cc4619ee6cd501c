package transaction

import (
	"context"
	"sync"
	"testing"
	"time"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTxnRepo struct {
	mu     sync.Mutex
	txns   []*models.Transaction
	nextID uint
}

func (f *fakeTxnRepo) Create(txn *models.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.txns {
		if existing.Reference == txn.Reference {
			return repositories.ErrDuplicateReference
		}
	}
	f.nextID++
	txn.ID = f.nextID
	f.txns = append(f.txns, txn)
	return nil
}

func (f *fakeTxnRepo) GetByID(id uint) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.txns {
		if txn.ID == id {
			return txn, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeTxnRepo) GetByReference(reference string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.txns {
		if txn.Reference == reference {
			return txn, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeTxnRepo) FindPendingTransfer(reference, transferCode string) (*models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.txns {
		if txn.Status != models.TransactionStatusPending {
			continue
		}
		if (reference != "" && txn.Reference == reference) ||
			(transferCode != "" && txn.TransferCode == transferCode) {
			return txn, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (f *fakeTxnRepo) UpdateTransferDetails(id uint, reference, transferCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, txn := range f.txns {
		if txn.ID == id {
			txn.Reference = reference
			txn.TransferCode = transferCode
			return nil
		}
	}
	return repositories.ErrTransactionNotFound
}

func (f *fakeTxnRepo) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, txn := range f.txns {
		if txn.UserID == userID {
			out = append(out, *txn)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeTxnRepo) PendingTransfersOlderThan(ctx context.Context, cutoff time.Time) ([]models.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Transaction
	for _, txn := range f.txns {
		if txn.Status == models.TransactionStatusPending &&
			txn.Type == models.TransactionTypeTransfer &&
			txn.CreatedAt.Before(cutoff) {
			out = append(out, *txn)
		}
	}
	return out, nil
}

// statusStore is the minimal WalletRepository slice the recorder uses.
type statusStore struct {
	fakeTxnRepo *fakeTxnRepo
}

func (s *statusStore) Create(*models.Wallet) error              { return nil }
func (s *statusStore) GetByUserID(uint) (*models.Wallet, error) { return nil, nil }

func (s *statusStore) Credit(context.Context, uint, decimal.Decimal) error { return nil }
func (s *statusStore) Debit(context.Context, uint, decimal.Decimal) error  { return nil }
func (s *statusStore) CreateTransaction(txn *models.Transaction) error {
	return s.fakeTxnRepo.Create(txn)
}

func (s *statusStore) UpdateTransactionStatus(id uint, from, to string) error {
	s.fakeTxnRepo.mu.Lock()
	defer s.fakeTxnRepo.mu.Unlock()
	for _, txn := range s.fakeTxnRepo.txns {
		if txn.ID == id && txn.Status == from {
			txn.Status = to
			return nil
		}
	}
	return repositories.ErrStatusTerminal
}

func (s *statusStore) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(s)
}

func newTestService() (Service, *fakeTxnRepo) {
	repo := &fakeTxnRepo{}
	return NewService(repo, &statusStore{fakeTxnRepo: repo}), repo
}

func TestNew_GeneratesReference(t *testing.T) {
	txn := New(RecordParams{
		UserID: 1,
		Amount: decimal.RequireFromString("10.005"),
		Type:   models.TransactionTypeDeposit,
	})

	_, err := uuid.Parse(txn.Reference)
	assert.NoError(t, err, "reference should be a generated UUID")
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("10.01")), "amount rounds to 2 places")
}

func TestNew_KeepsGivenReference(t *testing.T) {
	txn := New(RecordParams{Reference: "psk_ref_123", Amount: decimal.NewFromInt(5)})
	assert.Equal(t, "psk_ref_123", txn.Reference)
}

func TestRecord(t *testing.T) {
	svc, repo := newTestService()

	txn, err := svc.Record(context.Background(), RecordParams{
		UserID:     1,
		Amount:     decimal.NewFromInt(100),
		Type:       models.TransactionTypeDeposit,
		Status:     models.TransactionStatusSuccess,
		MethodType: models.MethodTypeCredit,
		Merchant:   models.MerchantPaystack,
	})
	require.NoError(t, err)
	assert.NotZero(t, txn.ID)
	assert.Len(t, repo.txns, 1)
}

func TestRecord_RejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Record(context.Background(), RecordParams{Amount: decimal.Zero})
	require.Error(t, err)
	de, ok := domain.AsDomain(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION", de.Code)
}

func TestRecord_DuplicateReference(t *testing.T) {
	svc, _ := newTestService()

	params := RecordParams{UserID: 1, Amount: decimal.NewFromInt(10), Reference: "dup"}
	_, err := svc.Record(context.Background(), params)
	require.NoError(t, err)

	_, err = svc.Record(context.Background(), params)
	assert.ErrorIs(t, err, repositories.ErrDuplicateReference)
}

func TestMarkStatus(t *testing.T) {
	svc, repo := newTestService()

	txn, err := svc.Record(context.Background(), RecordParams{
		UserID: 1,
		Amount: decimal.NewFromInt(10),
		Status: models.TransactionStatusPending,
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkStatus(context.Background(), txn.ID,
		models.TransactionStatusPending, models.TransactionStatusSuccess))
	assert.Equal(t, models.TransactionStatusSuccess, repo.txns[0].Status)

	// Terminal statuses never transition again.
	err = svc.MarkStatus(context.Background(), txn.ID,
		models.TransactionStatusSuccess, models.TransactionStatusFailed)
	assert.Error(t, err)
}

func TestMarkStatus_GuardedAtStorage(t *testing.T) {
	svc, repo := newTestService()

	txn, _ := svc.Record(context.Background(), RecordParams{
		UserID: 1,
		Amount: decimal.NewFromInt(10),
		Status: models.TransactionStatusPending,
	})

	// Another path settled it first.
	repo.txns[0].Status = models.TransactionStatusFailed

	err := svc.MarkStatus(context.Background(), txn.ID,
		models.TransactionStatusPending, models.TransactionStatusSuccess)
	assert.ErrorIs(t, err, repositories.ErrStatusTerminal)
}

func TestAttachTransfer(t *testing.T) {
	svc, repo := newTestService()

	txn, _ := svc.Record(context.Background(), RecordParams{
		UserID: 1,
		Amount: decimal.NewFromInt(10),
		Status: models.TransactionStatusPending,
		Type:   models.TransactionTypeTransfer,
	})

	require.NoError(t, svc.AttachTransfer(context.Background(), txn.ID, "psk_ref", "TRF_abc"))
	assert.Equal(t, "psk_ref", repo.txns[0].Reference)
	assert.Equal(t, "TRF_abc", repo.txns[0].TransferCode)

	found, err := svc.FindPendingTransfer(context.Background(), "", "TRF_abc")
	require.NoError(t, err)
	assert.Equal(t, txn.ID, found.ID)
}

func TestList_ClampsLimit(t *testing.T) {
	svc, repo := newTestService()
	for i := 0; i < 30; i++ {
		repo.Create(&models.Transaction{UserID: 1, Reference: uuid.NewString()})
	}

	txns, err := svc.List(context.Background(), 1, 0, 0)
	require.NoError(t, err)
	assert.Len(t, txns, 20, "zero limit falls back to the default page size")

	txns, err = svc.List(context.Background(), 1, 1000, 0)
	require.NoError(t, err)
	assert.Len(t, txns, 20, "oversized limit falls back to the default page size")
}
