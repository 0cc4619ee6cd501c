// Package dva binds users to processor-issued dedicated virtual
// accounts. Binding is UNBOUND → VERIFYING → BOUND: identity
// verification first, account creation second, local persistence last.
package dva

import (
	"context"
	"errors"
	"fmt"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"
	"payloow/internal/services/paystack"
)

// Gateway is the slice of the payment gateway the binding flow needs.
type Gateway interface {
	VerifyBVN(ctx context.Context, bvn string) (*paystack.BVNIdentity, error)
	CreateDedicatedAccount(ctx context.Context, profile paystack.AccountProfile) (*paystack.DedicatedAccount, error)
}

// BindResult is what the caller shows the user after a successful bind.
type BindResult struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	CustomerCode  string `json:"customerCode"`
}

type Service interface {
	Bind(ctx context.Context, userID uint, bvn string) (*BindResult, error)
	GetByUserID(ctx context.Context, userID uint) (*models.DVA, error)
}

type service struct {
	dvaRepo  repositories.DVARepository
	userRepo repositories.UserRepository
	gateway  Gateway
}

func NewService(dvaRepo repositories.DVARepository, userRepo repositories.UserRepository, gateway Gateway) Service {
	if dvaRepo == nil {
		panic("dva repo is required")
	}
	if userRepo == nil {
		panic("user repo is required")
	}
	if gateway == nil {
		panic("gateway is required")
	}
	return &service{dvaRepo: dvaRepo, userRepo: userRepo, gateway: gateway}
}

// Bind verifies the user's BVN, requests a dedicated account from the
// processor, and persists the binding. If persistence fails after the
// external account was created, a retried Bind converges: the processor
// returns the already-assigned account for the same customer, so the
// external resource is never lost.
func (s *service) Bind(ctx context.Context, userID uint, bvn string) (*BindResult, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.dvaRepo.GetByUserID(userID); err == nil {
		return nil, domain.ErrDVAExists
	} else if !errors.Is(err, repositories.ErrDVANotFound) {
		return nil, err
	}

	if _, err := s.gateway.VerifyBVN(ctx, bvn); err != nil {
		return nil, err
	}

	account, err := s.gateway.CreateDedicatedAccount(ctx, paystack.AccountProfile{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
	})
	if err != nil {
		return nil, err
	}

	dva := &models.DVA{
		UserID:        user.ID,
		CustomerCode:  account.CustomerCode,
		BankName:      account.BankName,
		AccountNumber: account.AccountNumber,
		DVAReference:  account.AccountReference,
	}

	if err := s.dvaRepo.Bind(dva, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateDVA) {
			return nil, domain.ErrDVAExists
		}
		return nil, fmt.Errorf("failed to persist dva binding: %w", err)
	}

	return &BindResult{
		AccountNumber: dva.AccountNumber,
		BankName:      dva.BankName,
		CustomerCode:  dva.CustomerCode,
	}, nil
}

func (s *service) GetByUserID(ctx context.Context, userID uint) (*models.DVA, error) {
	dva, err := s.dvaRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrDVANotFound) {
			return nil, domain.ErrDVANotFound
		}
		return nil, err
	}
	return dva, nil
}
