package payments

import "context"

type STKPushRequest struct {
	Amount           float64
	PhoneNumber      string
	AccountReference string
	Description      string
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// Provider starts a collection request on the payer's handset. The result of
// that request arrives later through the callback endpoint, not here.
type Provider interface {
	Name() string
	STKPush(ctx context.Context, req STKPushRequest) (STKPushResponse, error)
}
