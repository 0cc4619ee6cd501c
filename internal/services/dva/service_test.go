package dva

import (
	"context"
	"testing"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"
	"payloow/internal/services/paystack"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDVARepo struct {
	byUser map[uint]*models.DVA
	bound  []*models.DVA
}

func newFakeDVARepo() *fakeDVARepo {
	return &fakeDVARepo{byUser: make(map[uint]*models.DVA)}
}

func (f *fakeDVARepo) GetByUserID(userID uint) (*models.DVA, error) {
	if dva, ok := f.byUser[userID]; ok {
		return dva, nil
	}
	return nil, repositories.ErrDVANotFound
}

func (f *fakeDVARepo) GetByCustomerCode(code string) (*models.DVA, error) {
	for _, dva := range f.byUser {
		if dva.CustomerCode == code {
			return dva, nil
		}
	}
	return nil, repositories.ErrDVANotFound
}

func (f *fakeDVARepo) Bind(dva *models.DVA, user *models.User) error {
	if _, ok := f.byUser[dva.UserID]; ok {
		return repositories.ErrDuplicateDVA
	}
	f.byUser[dva.UserID] = dva
	f.bound = append(f.bound, dva)
	user.BVNVerified = true
	user.PaystackCustomerCode = dva.CustomerCode
	return nil
}

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

type fakeBindGateway struct {
	verifyErr   error
	createErr   error
	verifyCalls int
	createCalls int
	gotProfile  paystack.AccountProfile
}

func (f *fakeBindGateway) VerifyBVN(ctx context.Context, bvn string) (*paystack.BVNIdentity, error) {
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return &paystack.BVNIdentity{FirstName: "Ada", LastName: "Obi"}, nil
}

func (f *fakeBindGateway) CreateDedicatedAccount(ctx context.Context, profile paystack.AccountProfile) (*paystack.DedicatedAccount, error) {
	f.createCalls++
	f.gotProfile = profile
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &paystack.DedicatedAccount{
		CustomerCode:  "CUS_new",
		BankName:      "Wema Bank",
		AccountNumber: "9900112233",
	}, nil
}

func testUser() *models.User {
	return &models.User{
		Model:     gorm.Model{ID: 1},
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Obi",
		Phone:     "08012345678",
	}
}

func TestBind(t *testing.T) {
	dvaRepo := newFakeDVARepo()
	gateway := &fakeBindGateway{}
	svc := NewService(dvaRepo, &fakeUserRepo{users: map[uint]*models.User{1: testUser()}}, gateway)

	result, err := svc.Bind(context.Background(), 1, "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "9900112233", result.AccountNumber)
	assert.Equal(t, "Wema Bank", result.BankName)
	assert.Equal(t, "CUS_new", result.CustomerCode)

	assert.Equal(t, "ada@example.com", gateway.gotProfile.Email)
	require.Len(t, dvaRepo.bound, 1)
	assert.Equal(t, uint(1), dvaRepo.bound[0].UserID)
}

func TestBind_UserNotFound(t *testing.T) {
	svc := NewService(newFakeDVARepo(), &fakeUserRepo{users: map[uint]*models.User{}}, &fakeBindGateway{})

	_, err := svc.Bind(context.Background(), 42, "12345678901")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestBind_AlreadyBound(t *testing.T) {
	dvaRepo := newFakeDVARepo()
	dvaRepo.byUser[1] = &models.DVA{UserID: 1, CustomerCode: "CUS_old"}
	gateway := &fakeBindGateway{}
	svc := NewService(dvaRepo, &fakeUserRepo{users: map[uint]*models.User{1: testUser()}}, gateway)

	_, err := svc.Bind(context.Background(), 1, "12345678901")
	assert.ErrorIs(t, err, domain.ErrDVAExists)
	assert.Zero(t, gateway.verifyCalls, "no external calls when already bound")
}

func TestBind_VerificationFailureStopsBinding(t *testing.T) {
	gateway := &fakeBindGateway{verifyErr: domain.Verification("BVN not resolved")}
	dvaRepo := newFakeDVARepo()
	svc := NewService(dvaRepo, &fakeUserRepo{users: map[uint]*models.User{1: testUser()}}, gateway)

	_, err := svc.Bind(context.Background(), 1, "12345678901")
	require.Error(t, err)
	assert.Zero(t, gateway.createCalls, "no account creation after failed verification")
	assert.Empty(t, dvaRepo.bound)
}

func TestGetByUserID_NotFound(t *testing.T) {
	svc := NewService(newFakeDVARepo(), &fakeUserRepo{users: map[uint]*models.User{}}, &fakeBindGateway{})

	_, err := svc.GetByUserID(context.Background(), 9)
	assert.ErrorIs(t, err, domain.ErrDVANotFound)
}
