package webhook

import "encoding/json"

// Paystack event names the reconciler models. Everything else is
// acknowledged and ignored.
const (
	EventChargeSuccess   = "charge.success"
	EventTransferSuccess = "transfer.success"
	EventTransferFailed  = "transfer.failed"
)

const channelDedicatedNuban = "dedicated_nuban"

// Event is the outer webhook envelope. Data stays raw until the event
// type is known.
type Event struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Metadata is the charge metadata the platform attaches when
// initializing a checkout. Paystack sends an empty string instead of an
// object when no metadata was set, so unmarshalling is tolerant.
type Metadata struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

func (m *Metadata) UnmarshalJSON(data []byte) error {
	type alias Metadata
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		// Non-object metadata (usually "") carries no information.
		*m = Metadata{}
		return nil
	}
	*m = Metadata(a)
	return nil
}

// ChargeData is the charge.success payload subset the reconciler reads.
type ChargeData struct {
	Amount    int64    `json:"amount"` // minor units
	Reference string   `json:"reference"`
	Channel   string   `json:"channel"`
	Metadata  Metadata `json:"metadata"`
	Customer  struct {
		CustomerCode string `json:"customer_code"`
	} `json:"customer"`
	CustomerCode  string `json:"customer_code"`
	Authorization struct {
		Channel string `json:"channel"`
	} `json:"authorization"`
}

func (d *ChargeData) customerCode() string {
	if d.Customer.CustomerCode != "" {
		return d.Customer.CustomerCode
	}
	return d.CustomerCode
}

func (d *ChargeData) isDedicatedAccountFunding() bool {
	return d.Channel == channelDedicatedNuban ||
		d.Authorization.Channel == channelDedicatedNuban ||
		d.Metadata.Type == "dva-funding"
}

// TransferData is the transfer.success / transfer.failed payload subset.
type TransferData struct {
	Amount       int64  `json:"amount"` // minor units
	Reference    string `json:"reference"`
	TransferCode string `json:"transfer_code"`
}
