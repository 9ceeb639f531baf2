package payments

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	OutcomeApplied   = "applied"
	OutcomeDuplicate = "duplicate"
	OutcomeUnknown   = "unknown"
	OutcomeMalformed = "malformed"
)

// Result is what the callback endpoint reports back to the provider. Every
// outcome is acknowledged with HTTP 200; Acknowledged picks the body shape.
type Result struct {
	Outcome string
	Reason  string
}

// Acknowledged reports whether the notification was accepted (applied or a
// benign duplicate) as opposed to rejected (malformed or unmatched).
func (r Result) Acknowledged() bool {
	return r.Outcome == OutcomeApplied || r.Outcome == OutcomeDuplicate
}

// ReconcileService matches provider notifications to payment records and
// applies a terminal status exactly once. Delivery is at-least-once and
// out-of-order; everything short of a store fault is handled, not failed.
type ReconcileService struct {
	store  Store
	logger *slog.Logger
}

func NewReconcileService(store Store) *ReconcileService {
	return &ReconcileService{store: store, logger: slog.Default()}
}

func (s *ReconcileService) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// HandleCallback processes one raw notification body. The returned error is
// non-nil only for store faults, which the handler surfaces as a 500 so the
// provider retries.
func (s *ReconcileService) HandleCallback(ctx context.Context, raw []byte) (Result, error) {
	cb, err := ParseCallback(raw)
	if err != nil {
		// No correlation identifiers to match on; keep the payload for the
		// audit trail and reject in the response body only.
		s.logger.WarnContext(ctx, "malformed provider callback", "body_len", len(raw))
		if aerr := s.store.RecordEvent(ctx, &CallbackEvent{
			ID:          uuid.NewString(),
			ResultCode:  -1,
			Outcome:     OutcomeMalformed,
			PayloadJSON: datatypes.JSON(raw),
			ReceivedAt:  time.Now(),
		}); aerr != nil {
			s.logger.ErrorContext(ctx, "failed to record malformed callback", "err", aerr)
		}
		callbacksTotal.WithLabelValues(OutcomeMalformed).Inc()
		return Result{Outcome: OutcomeMalformed, Reason: "malformed payload"}, nil
	}

	out := cb.Outcome()
	status, err := s.store.Resolve(ctx, cb.MerchantRequestID, cb.CheckoutRequestID, out, raw)
	if err != nil {
		// Persistence fault, not a matching miss. Propagate so the endpoint
		// answers 500 and the provider redelivers.
		s.logger.ErrorContext(ctx, "callback resolve failed",
			"merchant_request_id", cb.MerchantRequestID,
			"checkout_request_id", cb.CheckoutRequestID,
			"err", err)
		return Result{}, err
	}

	switch status {
	case ResolveUnknown:
		s.logger.InfoContext(ctx, "callback matched no payment record",
			"merchant_request_id", cb.MerchantRequestID,
			"checkout_request_id", cb.CheckoutRequestID)
		callbacksTotal.WithLabelValues(OutcomeUnknown).Inc()
		return Result{Outcome: OutcomeUnknown, Reason: "unknown transaction"}, nil

	case ResolveDuplicate:
		// Terminal state already set; at-least-once delivery makes this a
		// normal occurrence, acknowledged without mutation.
		s.logger.InfoContext(ctx, "duplicate callback ignored",
			"merchant_request_id", cb.MerchantRequestID,
			"checkout_request_id", cb.CheckoutRequestID)
		callbacksTotal.WithLabelValues(OutcomeDuplicate).Inc()
		return Result{Outcome: OutcomeDuplicate}, nil

	default:
		s.logger.InfoContext(ctx, "callback applied",
			"merchant_request_id", cb.MerchantRequestID,
			"checkout_request_id", cb.CheckoutRequestID,
			"result_code", out.ResultCode,
			"transaction_code", out.TransactionCode)
		callbacksTotal.WithLabelValues(OutcomeApplied).Inc()
		return Result{Outcome: OutcomeApplied}, nil
	}
}
