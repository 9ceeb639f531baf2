package payments

import (
	"context"
	"net/http"
	"testing"

	"myduka.app/pos/internal/shared/apperr"
)

func TestService_Initiate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending record after provider accepts", func(t *testing.T) {
		store := NewMockStore()
		provider := &MockProvider{}
		svc := NewService(store, provider)

		p, resp, err := svc.Initiate(ctx, 150, "254708374149", "sale-1")
		if err != nil {
			t.Fatalf("Initiate failed: %v", err)
		}
		if resp.MerchantRequestID != "mr-0001" {
			t.Errorf("provider response not returned: %+v", resp)
		}
		if p.ID == "" {
			t.Error("payment id not assigned")
		}
		if p.SaleID != "sale-1" {
			t.Errorf("SaleID = %q", p.SaleID)
		}
		if p.TransactionCode != StatusPending {
			t.Errorf("TransactionCode = %q, want %q", p.TransactionCode, StatusPending)
		}
		if p.Amount != 0 {
			t.Errorf("Amount = %v, want 0 while pending", p.Amount)
		}
		if store.CreateCalls != 1 {
			t.Errorf("CreateCalls = %d, want 1", store.CreateCalls)
		}
		if provider.LastReq.AccountReference != "sale-1" {
			t.Errorf("AccountReference = %q", provider.LastReq.AccountReference)
		}
	})

	t.Run("provider error creates no record", func(t *testing.T) {
		store := NewMockStore()
		provider := &MockProvider{
			PushFunc: func(context.Context, STKPushRequest) (STKPushResponse, error) {
				return STKPushResponse{}, ErrMockProvider
			},
		}
		svc := NewService(store, provider)

		_, _, err := svc.Initiate(ctx, 150, "254708374149", "sale-1")
		if err == nil {
			t.Fatal("Initiate succeeded despite provider error")
		}
		if apperr.HTTPStatus(err) != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", apperr.HTTPStatus(err))
		}
		if store.CreateCalls != 0 {
			t.Errorf("CreateCalls = %d, want 0 (no partial state)", store.CreateCalls)
		}
	})

	t.Run("missing correlation identifiers create no record", func(t *testing.T) {
		tests := []struct {
			name string
			resp STKPushResponse
		}{
			{"no merchant id", STKPushResponse{CheckoutRequestID: "cr-1", ResponseCode: "0"}},
			{"no checkout id", STKPushResponse{MerchantRequestID: "mr-1", ResponseCode: "0"}},
			{"neither", STKPushResponse{ResponseCode: "0"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				store := NewMockStore()
				provider := &MockProvider{
					PushFunc: func(context.Context, STKPushRequest) (STKPushResponse, error) {
						return tt.resp, nil
					},
				}
				svc := NewService(store, provider)

				_, _, err := svc.Initiate(ctx, 150, "254708374149", "sale-1")
				if err == nil {
					t.Fatal("Initiate accepted an incomplete provider response")
				}
				if apperr.HTTPStatus(err) != http.StatusBadRequest {
					t.Errorf("status = %d, want 400", apperr.HTTPStatus(err))
				}
				if store.CreateCalls != 0 {
					t.Errorf("CreateCalls = %d, want 0", store.CreateCalls)
				}
			})
		}
	})

	t.Run("store failure surfaces as internal", func(t *testing.T) {
		store := NewMockStore()
		store.FailCreate = true
		svc := NewService(store, &MockProvider{})

		_, _, err := svc.Initiate(ctx, 150, "254708374149", "sale-1")
		if err == nil {
			t.Fatal("Initiate swallowed a store error")
		}
		if apperr.HTTPStatus(err) != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", apperr.HTTPStatus(err))
		}
	})
}
