package payments

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"myduka.app/pos/internal/shared/apperr"
)

// Service initiates collections: one synchronous provider call, then a
// PENDING record write. The provider call comes first on purpose: a crash
// before the write leaves no record, and the later callback simply resolves
// to "unknown transaction".
type Service struct {
	store    Store
	provider Provider
	logger   *slog.Logger
}

func NewService(store Store, provider Provider) *Service {
	return &Service{store: store, provider: provider, logger: slog.Default()}
}

func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

func (s *Service) Initiate(ctx context.Context, amount float64, phoneNumber, saleID string) (Payment, STKPushResponse, error) {
	resp, err := s.provider.STKPush(ctx, STKPushRequest{
		Amount:           amount,
		PhoneNumber:      phoneNumber,
		AccountReference: saleID,
		Description:      "POS sale payment",
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "stk push failed", "provider", s.provider.Name(), "sale_id", saleID, "err", err)
		initiationsTotal.WithLabelValues("provider_error").Inc()
		return Payment{}, STKPushResponse{}, apperr.InvalidErr("payment provider request failed", nil)
	}

	// A nominally successful push without both correlation identifiers can
	// never be matched to its callback. Treat it as a provider failure.
	if resp.MerchantRequestID == "" || resp.CheckoutRequestID == "" {
		s.logger.WarnContext(ctx, "stk push response missing correlation ids",
			"provider", s.provider.Name(), "sale_id", saleID, "response_code", resp.ResponseCode)
		initiationsTotal.WithLabelValues("provider_error").Inc()
		return Payment{}, STKPushResponse{}, apperr.InvalidErr("payment provider returned an incomplete response", nil)
	}

	p := Payment{
		ID:                uuid.NewString(),
		SaleID:            saleID,
		MerchantRequestID: resp.MerchantRequestID,
		CheckoutRequestID: resp.CheckoutRequestID,
		Amount:            0,
		TransactionCode:   StatusPending,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if err := s.store.Create(ctx, &p); err != nil {
		if isDuplicateKey(err) {
			return Payment{}, STKPushResponse{}, apperr.ConflictErr("payment already initiated for this provider request")
		}
		return Payment{}, STKPushResponse{}, apperr.Wrap(err)
	}

	s.logger.InfoContext(ctx, "payment initiated",
		"payment_id", p.ID,
		"sale_id", saleID,
		"merchant_request_id", p.MerchantRequestID,
		"checkout_request_id", p.CheckoutRequestID)
	initiationsTotal.WithLabelValues("pending").Inc()

	return p, resp, nil
}
