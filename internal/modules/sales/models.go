package sales

import "time"

type Sale struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	ProductID string    `gorm:"type:char(36);not null;index:ix_sales_product_id" json:"productId"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (Sale) TableName() string { return "sales" }
