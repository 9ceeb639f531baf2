package payments

import (
	"encoding/json"
	"strings"
)

// Daraja posts the STK result as a nested envelope. Every field the reconciler
// depends on is optional here; absence is reported as ErrMalformedCallback by
// ParseCallback, never a panic.
type CallbackEnvelope struct {
	Body struct {
		STKCallback *STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

type STKCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        *int   `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []MetadataItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// Outcome is the terminal state a callback resolves a payment to.
type Outcome struct {
	ResultCode      int
	Amount          float64
	TransactionCode string
}

func (o Outcome) Success() bool { return o.ResultCode == 0 }

// ParseCallback decodes a raw notification body. The provider is untrusted:
// a missing envelope, missing correlation identifier or missing result code
// all come back as ErrMalformedCallback.
func ParseCallback(raw []byte) (*STKCallback, error) {
	var env CallbackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrMalformedCallback
	}
	cb := env.Body.STKCallback
	if cb == nil || cb.MerchantRequestID == "" || cb.CheckoutRequestID == "" || cb.ResultCode == nil {
		return nil, ErrMalformedCallback
	}
	return cb, nil
}

// Outcome extracts the terminal fields from a parsed callback.
//
// On success the settled amount and receipt code live in the metadata item
// list; the receipt item name varies by channel (MpesaReceiptNumber on the
// live rails), so the scan matches any name containing "Receipt". A missing
// item falls back to 0 / "N/A" rather than failing the whole callback.
func (cb *STKCallback) Outcome() Outcome {
	code := *cb.ResultCode
	if code != 0 {
		return Outcome{ResultCode: code, Amount: 0, TransactionCode: StatusFailed}
	}

	amount := 0.0
	receipt := ReceiptNA
	for _, item := range cb.CallbackMetadata.Item {
		switch {
		case item.Name == "Amount":
			if v, ok := item.Value.(float64); ok {
				amount = v
			}
		case strings.Contains(item.Name, "Receipt"):
			if v, ok := item.Value.(string); ok && receipt == ReceiptNA {
				receipt = v
			}
		}
	}
	return Outcome{ResultCode: 0, Amount: amount, TransactionCode: receipt}
}
