package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	domain "payloow/internal/errors"
	"payloow/internal/models"
	"payloow/internal/services/paystack"
	"payloow/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWithdrawalService scripts the orchestrator outcome.
type fakeWithdrawalService struct {
	result *withdrawal.Result
	err    error
}

func (f *fakeWithdrawalService) Withdraw(ctx context.Context, userID uint, amount decimal.Decimal, details paystack.BankDetails) (*withdrawal.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newWithdrawApp(svc withdrawal.Service) *fiber.App {
	handler := NewWalletHandler(nil, svc, nil, nil, nil)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("claims", &models.UserClaims{UserID: 1})
		return c.Next()
	})
	app.Post("/api/wallet/withdraw", handler.Withdraw)
	return app
}

const withdrawBody = `{"amount": "400", "bankDetails": {"name": "Ada Obi", "accountNumber": "0123456789", "bankCode": "058"}}`

func postWithdraw(t *testing.T, app *fiber.App) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/wallet/withdraw", strings.NewReader(withdrawBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	return resp.StatusCode, body
}

func TestWithdraw_Success(t *testing.T) {
	svc := &fakeWithdrawalService{result: &withdrawal.Result{
		Amount:       decimal.NewFromInt(400),
		TransferCode: "TRF_test",
		Reference:    "wtd-1",
	}}
	app := newWithdrawApp(svc)

	status, body := postWithdraw(t, app)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Withdrawal initiated", body["message"])
	assert.NotContains(t, body, "error")
}

func TestWithdraw_UnknownOutcomeIsAcceptedNotError(t *testing.T) {
	svc := &fakeWithdrawalService{err: domain.ErrUnknownOutcome}
	app := newWithdrawApp(svc)

	status, body := postWithdraw(t, app)
	assert.Equal(t, fiber.StatusAccepted, status)
	assert.NotContains(t, body, "error")
	assert.Equal(t, "Withdrawal pending confirmation", body["message"])
	assert.Equal(t, "pending", body["status"])
}

func TestWithdraw_DomainErrorBody(t *testing.T) {
	svc := &fakeWithdrawalService{err: domain.ErrInsufficientBalance}
	app := newWithdrawApp(svc)

	status, body := postWithdraw(t, app)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "error")
}
