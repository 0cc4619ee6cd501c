package paystack

// envelope is Paystack's standard response wrapper.
type envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// BVNIdentity holds the identity attributes the processor reports for a
// resolved BVN.
type BVNIdentity struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Mobile    string `json:"mobile"`
}

// AccountProfile is the user profile sent when requesting a dedicated
// virtual account.
type AccountProfile struct {
	Email         string
	FirstName     string
	LastName      string
	Phone         string
	PreferredBank string
}

// DedicatedAccount is the processor-issued virtual account binding.
type DedicatedAccount struct {
	CustomerCode     string
	BankName         string
	AccountNumber    string
	AccountReference string
}

// BankDetails identifies an external bank account for outbound transfers.
type BankDetails struct {
	Name          string `json:"name"`
	AccountNumber string `json:"accountNumber"`
	BankCode      string `json:"bankCode"`
}

// Transfer is the processor's handle on an initiated transfer.
type Transfer struct {
	TransferCode string
	Reference    string
}

// TransferStatus is the verification-endpoint view of a transfer.
type TransferStatus struct {
	Status      string
	Reference   string
	AmountMinor int64
}

// ChargeStatus is the verification-endpoint view of a charge.
type ChargeStatus struct {
	Status      string
	Reference   string
	AmountMinor int64
}

// InitializeParams configures a hosted checkout session for a deposit.
type InitializeParams struct {
	Email       string
	AmountMinor int64
	Reference   string
	CallbackURL string
	Metadata    map[string]string
}

// wire types

type bvnResolveResponse struct {
	envelope
	Data BVNIdentity `json:"data"`
}

type dedicatedAccountRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	PreferredBank string `json:"preferred_bank"`
}

type dedicatedAccountResponse struct {
	envelope
	Data struct {
		AccountNumber string `json:"account_number"`
		Bank          struct {
			Name string `json:"name"`
		} `json:"bank"`
		Customer struct {
			CustomerCode string `json:"customer_code"`
		} `json:"customer"`
		CustomerCode     string `json:"customer_code"`
		AccountReference string `json:"account_reference"`
	} `json:"data"`
}

type transferRecipientRequest struct {
	Type          string `json:"type"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	BankCode      string `json:"bank_code"`
	Currency      string `json:"currency"`
}

type transferRecipientResponse struct {
	envelope
	Data struct {
		RecipientCode string `json:"recipient_code"`
	} `json:"data"`
}

type transferRequest struct {
	Source    string `json:"source"`
	Amount    int64  `json:"amount"`
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
}

type transferResponse struct {
	envelope
	Data struct {
		TransferCode string `json:"transfer_code"`
		Reference    string `json:"reference"`
	} `json:"data"`
}

type verifyTransferResponse struct {
	envelope
	Data struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

type verifyTransactionResponse struct {
	envelope
	Data struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}

type initializeRequest struct {
	Email       string            `json:"email"`
	Amount      string            `json:"amount"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type initializeResponse struct {
	envelope
	Data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}
