package products

import "time"

type Product struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	BuyingPrice  float64   `gorm:"not null" json:"buyingPrice"`
	SellingPrice float64   `gorm:"not null" json:"sellingPrice"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }
