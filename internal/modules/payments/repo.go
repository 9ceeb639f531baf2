package payments

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResolveStatus int

const (
	ResolveApplied ResolveStatus = iota
	ResolveDuplicate
	ResolveUnknown
)

// Store is the durable payment-record store shared by the initiator, the
// reconciler and the status query.
type Store interface {
	Create(ctx context.Context, p *Payment) error
	LatestBySale(ctx context.Context, saleID string) (Payment, error)
	List(ctx context.Context) ([]Payment, error)
	// Resolve matches a callback outcome to the record keyed by the
	// correlation pair and applies it exactly once, inside one transaction.
	Resolve(ctx context.Context, merchantRequestID, checkoutRequestID string, out Outcome, rawPayload []byte) (ResolveStatus, error)
	RecordEvent(ctx context.Context, ev *CallbackEvent) error
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, p *Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *Repo) LatestBySale(ctx context.Context, saleID string) (Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("created_at DESC").
		First(&p).Error
	return p, err
}

func (r *Repo) List(ctx context.Context) ([]Payment, error) {
	var items []Payment
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) RecordEvent(ctx context.Context, ev *CallbackEvent) error {
	return r.db.WithContext(ctx).Create(ev).Error
}

// Resolve runs the read-check-write sequence as a single transaction. The row
// lock serializes near-simultaneous duplicate callbacks: the loser re-reads a
// terminal record and no-ops.
func (r *Repo) Resolve(ctx context.Context, merchantRequestID, checkoutRequestID string, out Outcome, rawPayload []byte) (ResolveStatus, error) {
	status := ResolveUnknown

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		audit := func(outcome string) error {
			return tx.WithContext(ctx).Create(&CallbackEvent{
				ID:                uuid.NewString(),
				MerchantRequestID: merchantRequestID,
				CheckoutRequestID: checkoutRequestID,
				ResultCode:        out.ResultCode,
				Outcome:           outcome,
				PayloadJSON:       datatypes.JSON(rawPayload),
				ReceivedAt:        time.Now(),
			}).Error
		}

		var p Payment
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "merchant_request_id = ? AND checkout_request_id = ?", merchantRequestID, checkoutRequestID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Expected: duplicate of an already-pruned flow, another
			// environment's record, or a callback racing the initiation
			// write. The provider's retry is the recovery mechanism.
			status = ResolveUnknown
			return audit(OutcomeUnknown)
		}
		if err != nil {
			return err
		}

		if p.Terminal() {
			status = ResolveDuplicate
			return audit(OutcomeDuplicate)
		}

		if err := tx.WithContext(ctx).Model(&Payment{}).
			Where("id = ?", p.ID).
			Updates(map[string]any{
				"amount":           out.Amount,
				"transaction_code": out.TransactionCode,
				"updated_at":       time.Now(),
			}).Error; err != nil {
			return err
		}

		status = ResolveApplied
		return audit(OutcomeApplied)
	})

	return status, err
}

func isDuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
