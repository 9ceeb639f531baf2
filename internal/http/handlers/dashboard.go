package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/modules/payments"
	"myduka.app/pos/internal/modules/products"
	"myduka.app/pos/internal/modules/sales"
	"myduka.app/pos/internal/shared/apperr"
)

type DashboardHandlers struct {
	db *gorm.DB
}

func NewDashboardHandlers(db *gorm.DB) *DashboardHandlers {
	return &DashboardHandlers{db: db}
}

// GET /dashboard/summary — peripheral read-only aggregates for the shop owner.
func (h *DashboardHandlers) Summary(c *gin.Context) {
	ctx := c.Request.Context()

	var productCount, saleCount int64
	if err := h.db.WithContext(ctx).Model(&products.Product{}).Count(&productCount).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if err := h.db.WithContext(ctx).Model(&sales.Sale{}).Count(&saleCount).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var unitsSold int64
	if err := h.db.WithContext(ctx).Model(&sales.Sale{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&unitsSold).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	var collected float64
	if err := h.db.WithContext(ctx).Model(&payments.Payment{}).
		Where("transaction_code NOT IN ?", []string{payments.StatusPending, payments.StatusFailed}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&collected).Error; err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":        productCount,
		"sales":           saleCount,
		"unitsSold":       unitsSold,
		"amountCollected": collected,
	})
}
