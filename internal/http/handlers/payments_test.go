package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/modules/payments"
)

// stubPaymentStore serves the status query from a fixed map, returning the
// same not-found sentinel as the gorm repo for sales it has never seen.
type stubPaymentStore struct {
	bySale map[string]payments.Payment
}

func (s *stubPaymentStore) Create(context.Context, *payments.Payment) error { return nil }

func (s *stubPaymentStore) LatestBySale(_ context.Context, saleID string) (payments.Payment, error) {
	p, ok := s.bySale[saleID]
	if !ok {
		return payments.Payment{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *stubPaymentStore) List(context.Context) ([]payments.Payment, error) { return nil, nil }

func (s *stubPaymentStore) Resolve(context.Context, string, string, payments.Outcome, []byte) (payments.ResolveStatus, error) {
	return payments.ResolveUnknown, nil
}

func (s *stubPaymentStore) RecordEvent(context.Context, *payments.CallbackEvent) error { return nil }

func newStatusRouter(store payments.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))

	h := NewPaymentHandlers(nil, store)
	r.GET("/payments/status/:saleId", h.Status)
	return r
}

func getStatus(t *testing.T, r *gin.Engine, saleID string) (int, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/status/"+saleID, nil)
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (body %q)", err, w.Body.String())
	}
	return w.Code, body
}

func TestPaymentStatus(t *testing.T) {
	now := time.Now()
	store := &stubPaymentStore{bySale: map[string]payments.Payment{
		"sale-pending": {
			ID: "pay-1", SaleID: "sale-pending",
			TransactionCode: payments.StatusPending,
			CreatedAt:       now,
		},
		"sale-paid": {
			ID: "pay-2", SaleID: "sale-paid",
			Amount: 150, TransactionCode: "NLJ7RT61SV",
			CreatedAt: now,
		},
	}}
	r := newStatusRouter(store)

	t.Run("unknown sale returns 404", func(t *testing.T) {
		code, body := getStatus(t, r, "sale-missing")
		if code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", code, http.StatusNotFound)
		}
		if body["error"] != "no payment for this sale" {
			t.Errorf("error = %v, want %q", body["error"], "no payment for this sale")
		}
	})

	t.Run("pending payment returns sentinels", func(t *testing.T) {
		code, body := getStatus(t, r, "sale-pending")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want %d", code, http.StatusOK)
		}
		if body["transactionCode"] != payments.StatusPending {
			t.Errorf("transactionCode = %v, want %q", body["transactionCode"], payments.StatusPending)
		}
		if body["amount"] != float64(0) {
			t.Errorf("amount = %v, want 0", body["amount"])
		}
	})

	t.Run("terminal payment is stable across polls", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			code, body := getStatus(t, r, "sale-paid")
			if code != http.StatusOK {
				t.Fatalf("poll %d: status = %d, want %d", i, code, http.StatusOK)
			}
			if body["transactionCode"] != "NLJ7RT61SV" {
				t.Errorf("poll %d: transactionCode = %v, want %q", i, body["transactionCode"], "NLJ7RT61SV")
			}
			if body["amount"] != float64(150) {
				t.Errorf("poll %d: amount = %v, want 150", i, body["amount"])
			}
		}
	})
}
