package handlers

import (
	"errors"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/services/deposit"
	"payloow/internal/services/dva"
	"payloow/internal/services/paystack"
	"payloow/internal/services/transaction"
	"payloow/internal/services/wallet"
	"payloow/internal/services/withdrawal"
	"payloow/internal/utils/response"
	"payloow/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WalletHandler struct {
	walletService     wallet.Service
	withdrawalService withdrawal.Service
	depositService    deposit.Service
	dvaService        dva.Service
	txnService        transaction.Service
}

func NewWalletHandler(
	walletService wallet.Service,
	withdrawalService withdrawal.Service,
	depositService deposit.Service,
	dvaService dva.Service,
	txnService transaction.Service,
) *WalletHandler {
	return &WalletHandler{
		walletService:     walletService,
		withdrawalService: withdrawalService,
		depositService:    depositService,
		dvaService:        dvaService,
		txnService:        txnService,
	}
}

// extractUserClaims is a helper function to reduce duplication
func extractUserClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok || claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return claims, nil
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}

	return response.Success(c, "Wallet balance retrieved", fiber.Map{
		"balance":  w.Balance,
		"currency": w.Currency,
	})
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	w, err := h.walletService.GetWallet(c.Context(), claims.UserID)
	if err != nil {
		return response.Domain(c, err)
	}

	return response.Success(c, "Wallet retrieved", fiber.Map{
		"wallet": w,
	})
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Amount      decimal.Decimal      `json:"amount"`
		BankDetails paystack.BankDetails `json:"bankDetails"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if err := validation.ValidateAmount(input.Amount); err != nil {
		return response.Domain(c, err)
	}
	if err := validation.ValidateBankDetails(input.BankDetails); err != nil {
		return response.Domain(c, err)
	}

	result, err := h.withdrawalService.Withdraw(c.Context(), claims.UserID, input.Amount, input.BankDetails)
	if err != nil {
		// A timed-out transfer is pending, not rejected: the webhook or
		// the sweep settles it later, so the client gets an accepted
		// response rather than an error body.
		if errors.Is(err, domain.ErrUnknownOutcome) {
			return response.Accepted(c, "Withdrawal pending confirmation")
		}
		return response.Domain(c, err)
	}

	return response.Success(c, "Withdrawal initiated", result)
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Amount   decimal.Decimal `json:"amount"`
		Merchant string          `json:"merchant"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	checkoutURL, err := h.depositService.Initiate(c.Context(), claims.UserID, input.Amount, input.Merchant)
	if err != nil {
		return response.Domain(c, err)
	}

	return response.Success(c, "Deposit initialized", fiber.Map{
		"checkout_url": checkoutURL,
	})
}

func (h *WalletHandler) BindBVN(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		BVN string `json:"bvn"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	if err := validation.ValidateBVN(input.BVN); err != nil {
		return response.Domain(c, err)
	}

	result, err := h.dvaService.Bind(c.Context(), claims.UserID, input.BVN)
	if err != nil {
		return response.Domain(c, err)
	}

	return response.Success(c, "Virtual account created", result)
}

func (h *WalletHandler) GetTransactions(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	txns, err := h.txnService.List(c.Context(), claims.UserID, limit, offset)
	if err != nil {
		return response.Domain(c, err)
	}

	return response.Success(c, "Transactions retrieved", fiber.Map{
		"transactions": txns,
		"limit":        limit,
		"offset":       offset,
	})
}
