package payments

import (
	"time"

	"gorm.io/datatypes"
)

// transaction_code sentinels. A record is terminal once the code is anything
// other than StatusPending; a successful record carries the provider receipt
// code instead of a sentinel.
const (
	StatusPending = "PENDING"
	StatusFailed  = "FAILED"
	ReceiptNA     = "N/A"
)

type Payment struct {
	ID                string    `gorm:"type:char(36);primaryKey" json:"id"`
	SaleID            string    `gorm:"type:char(36);not null;index:ix_payments_sale_id" json:"saleId"`
	MerchantRequestID string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_payments_correlation,priority:1" json:"merchantRequestId"`
	CheckoutRequestID string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_payments_correlation,priority:2" json:"checkoutRequestId"`
	Amount            float64   `gorm:"not null;default:0" json:"amount"`
	TransactionCode   string    `gorm:"type:varchar(100);not null" json:"transactionCode"`
	CreatedAt         time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time `gorm:"not null" json:"updatedAt"`
}

func (Payment) TableName() string { return "payments" }

func (p Payment) Terminal() bool { return p.TransactionCode != StatusPending }

// CallbackEvent is the audit row written for every inbound provider
// notification, whatever its match outcome. Daraja carries no event id, so
// duplicates are stored as separate rows.
type CallbackEvent struct {
	ID                string         `gorm:"type:char(36);primaryKey"`
	MerchantRequestID string         `gorm:"type:varchar(100);not null;index:ix_callback_events_correlation,priority:1"`
	CheckoutRequestID string         `gorm:"type:varchar(100);not null;index:ix_callback_events_correlation,priority:2"`
	ResultCode        int            `gorm:"not null"`
	Outcome           string         `gorm:"type:varchar(16);not null"`
	PayloadJSON       datatypes.JSON `gorm:"type:json;not null"`
	ReceivedAt        time.Time      `gorm:"not null"`
}

func (CallbackEvent) TableName() string { return "callback_events" }
