package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) List(ctx context.Context) ([]Sale, error) {
	var items []Sale
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id string) (Sale, error) {
	var s Sale
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return s, err
}

func (r *Repo) Create(ctx context.Context, productID string, quantity int) (Sale, error) {
	s := Sale{
		ID:        uuid.NewString(),
		ProductID: productID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return Sale{}, err
	}
	return s, nil
}
