// Package paystack is the outbound client for the Paystack API. It is
// the only place where monetary amounts cross between the engine's
// major-unit decimals and the processor's minor units (kobo), and the
// only holder of the webhook signing secret.
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	domain "payloow/internal/errors"
)

const defaultBaseURL = "https://api.paystack.co"

// Client is a stateless Paystack API client.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

// NewClient creates a Paystack client. The timeout bounds every call;
// Paystack's side effects outlive a timed-out request, so callers must
// treat transfer timeouts as unknown outcomes, not failures.
func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// VerifyBVN resolves a Bank Verification Number to identity attributes.
func (c *Client) VerifyBVN(ctx context.Context, bvn string) (*BVNIdentity, error) {
	var resp bvnResolveResponse
	path := "/bank/resolve_bvn/" + url.PathEscape(bvn)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Verification(resp.Message)
	}
	return &resp.Data, nil
}

// CreateDedicatedAccount requests a dedicated virtual account for the
// given profile. Paystack is idempotent per customer here: re-requesting
// for an already-assigned customer returns the existing account.
func (c *Client) CreateDedicatedAccount(ctx context.Context, profile AccountProfile) (*DedicatedAccount, error) {
	if profile.PreferredBank == "" {
		profile.PreferredBank = "wema-bank"
	}
	req := dedicatedAccountRequest{
		Email:         profile.Email,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Phone:         profile.Phone,
		PreferredBank: profile.PreferredBank,
	}

	var resp dedicatedAccountResponse
	if err := c.do(ctx, http.MethodPost, "/dedicated_account", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Gateway(resp.Message)
	}

	customerCode := resp.Data.Customer.CustomerCode
	if customerCode == "" {
		customerCode = resp.Data.CustomerCode
	}
	return &DedicatedAccount{
		CustomerCode:     customerCode,
		BankName:         resp.Data.Bank.Name,
		AccountNumber:    resp.Data.AccountNumber,
		AccountReference: resp.Data.AccountReference,
	}, nil
}

// CreateTransferRecipient registers a bank account as a transfer
// destination and returns its recipient code.
func (c *Client) CreateTransferRecipient(ctx context.Context, details BankDetails) (string, error) {
	req := transferRecipientRequest{
		Type:          "nuban",
		Name:          details.Name,
		AccountNumber: details.AccountNumber,
		BankCode:      details.BankCode,
		Currency:      "NGN",
	}

	var resp transferRecipientResponse
	if err := c.do(ctx, http.MethodPost, "/transferrecipient", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", domain.Gateway(resp.Message)
	}
	return resp.Data.RecipientCode, nil
}

// InitiateTransfer moves amountMinor (kobo) from the platform balance to
// a recipient. The caller-supplied reference is sent to Paystack so that
// webhooks and transfer verification key on an identifier the engine
// already stored; a timed-out request stays matchable. A timeout returns
// ErrUnknownOutcome: the transfer may still succeed processor-side, so
// the caller must not compensate.
func (c *Client) InitiateTransfer(ctx context.Context, amountMinor int64, recipientCode, reference string) (*Transfer, error) {
	req := transferRequest{
		Source:    "balance",
		Amount:    amountMinor,
		Recipient: recipientCode,
		Reason:    "User withdrawal request",
		Reference: reference,
	}

	var resp transferResponse
	if err := c.do(ctx, http.MethodPost, "/transfer", req, &resp); err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnknownOutcome, err)
		}
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Gateway(resp.Message)
	}
	return &Transfer{
		TransferCode: resp.Data.TransferCode,
		Reference:    resp.Data.Reference,
	}, nil
}

// VerifyTransfer fetches the processor-side status of a transfer by its
// reference. Used by the reconciliation sweep when webhooks go missing.
func (c *Client) VerifyTransfer(ctx context.Context, reference string) (*TransferStatus, error) {
	var resp verifyTransferResponse
	path := "/transfer/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Gateway(resp.Message)
	}
	return &TransferStatus{
		Status:      resp.Data.Status,
		Reference:   resp.Data.Reference,
		AmountMinor: resp.Data.Amount,
	}, nil
}

// VerifyTransaction fetches the processor-side status of a charge.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*ChargeStatus, error) {
	var resp verifyTransactionResponse
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Status {
		return nil, domain.Gateway(resp.Message)
	}
	return &ChargeStatus{
		Status:      resp.Data.Status,
		Reference:   resp.Data.Reference,
		AmountMinor: resp.Data.Amount,
	}, nil
}

// InitializeTransaction opens a hosted checkout session for a deposit
// and returns the authorization URL the user completes payment on.
func (c *Client) InitializeTransaction(ctx context.Context, params InitializeParams) (string, error) {
	req := initializeRequest{
		Email:       params.Email,
		Amount:      strconv.FormatInt(params.AmountMinor, 10),
		Reference:   params.Reference,
		CallbackURL: params.CallbackURL,
		Metadata:    params.Metadata,
	}

	var resp initializeResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", req, &resp); err != nil {
		return "", err
	}
	if !resp.Status {
		return "", domain.Gateway(resp.Message)
	}
	return resp.Data.AuthorizationURL, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
			return domain.Gateway(env.Message)
		}
		return domain.Gateway(fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to decode paystack response: %w", err)
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
