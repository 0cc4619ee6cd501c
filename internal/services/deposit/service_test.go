package deposit

import (
	"context"
	"testing"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"
	"payloow/internal/services/paystack"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[uint]*models.User
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByCustomerCode(code string) (*models.User, error) {
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }

type fakeCheckoutGateway struct {
	gotParams paystack.InitializeParams
	err       error
}

func (f *fakeCheckoutGateway) InitializeTransaction(ctx context.Context, params paystack.InitializeParams) (string, error) {
	f.gotParams = params
	if f.err != nil {
		return "", f.err
	}
	return "https://checkout.paystack.com/abc123", nil
}

func TestInitiate(t *testing.T) {
	gateway := &fakeCheckoutGateway{}
	users := &fakeUserRepo{users: map[uint]*models.User{
		1: {Model: gorm.Model{ID: 1}, Email: "ada@example.com"},
	}}
	svc := NewService(users, gateway, "https://payloow.example/callback")

	url, err := svc.Initiate(context.Background(), 1, decimal.RequireFromString("250.50"), "")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.com/abc123", url)

	assert.Equal(t, "ada@example.com", gateway.gotParams.Email)
	assert.Equal(t, int64(25050), gateway.gotParams.AmountMinor, "amount crosses the boundary in kobo")
	assert.Equal(t, "https://payloow.example/callback", gateway.gotParams.CallbackURL)
	assert.Equal(t, "deposit", gateway.gotParams.Metadata["type"])
	assert.Equal(t, "1", gateway.gotParams.Metadata["userId"])

	_, err = uuid.Parse(gateway.gotParams.Reference)
	assert.NoError(t, err, "reference is generated per attempt")
}

func TestInitiate_RejectsNonPositiveAmount(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: map[uint]*models.User{}}, &fakeCheckoutGateway{}, "")

	_, err := svc.Initiate(context.Background(), 1, decimal.Zero, "")
	assert.Error(t, err)
}

func TestInitiate_UnsupportedMerchant(t *testing.T) {
	users := &fakeUserRepo{users: map[uint]*models.User{1: {Model: gorm.Model{ID: 1}}}}
	svc := NewService(users, &fakeCheckoutGateway{}, "")

	_, err := svc.Initiate(context.Background(), 1, decimal.NewFromInt(100), models.MerchantFlutterwave)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported yet")
}

func TestInitiate_UserNotFound(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: map[uint]*models.User{}}, &fakeCheckoutGateway{}, "")

	_, err := svc.Initiate(context.Background(), 9, decimal.NewFromInt(100), "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
