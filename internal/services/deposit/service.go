// Package deposit initiates hosted-checkout wallet top-ups. The actual
// credit happens later, when the processor confirms the charge through
// the webhook reconciler.
package deposit

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/repositories"
	"payloow/internal/services/paystack"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gateway is the checkout slice of the payment gateway.
type Gateway interface {
	InitializeTransaction(ctx context.Context, params paystack.InitializeParams) (string, error)
}

type Service interface {
	// Initiate returns the checkout URL the user completes payment on.
	Initiate(ctx context.Context, userID uint, amount decimal.Decimal, merchant string) (string, error)
}

type service struct {
	userRepo    repositories.UserRepository
	gateway     Gateway
	callbackURL string
}

func NewService(userRepo repositories.UserRepository, gateway Gateway, callbackURL string) Service {
	if userRepo == nil {
		panic("user repo is required")
	}
	if gateway == nil {
		panic("gateway is required")
	}
	return &service{userRepo: userRepo, gateway: gateway, callbackURL: callbackURL}
}

func (s *service) Initiate(ctx context.Context, userID uint, amount decimal.Decimal, merchant string) (string, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return "", domain.Validation("amount must be greater than 0")
	}
	if merchant == "" {
		merchant = models.MerchantPaystack
	}
	if merchant != models.MerchantPaystack {
		return "", domain.Validation(fmt.Sprintf("%s is not supported yet on our platform", merchant))
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	checkoutURL, err := s.gateway.InitializeTransaction(ctx, paystack.InitializeParams{
		Email:       user.Email,
		AmountMinor: paystack.ToMinorUnits(amount),
		Reference:   uuid.NewString(),
		CallbackURL: s.callbackURL,
		Metadata: map[string]string{
			"userId": strconv.FormatUint(uint64(user.ID), 10),
			"type":   "deposit",
		},
	})
	if err != nil {
		return "", err
	}
	return checkoutURL, nil
}
