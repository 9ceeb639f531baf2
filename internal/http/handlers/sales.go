package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/http/validation"
	"myduka.app/pos/internal/modules/products"
	"myduka.app/pos/internal/modules/sales"
	"myduka.app/pos/internal/shared/apperr"
)

type SaleHandlers struct {
	repo     *sales.Repo
	products *products.Repo
}

func NewSaleHandlers(repo *sales.Repo, productsRepo *products.Repo) *SaleHandlers {
	return &SaleHandlers{repo: repo, products: productsRepo}
}

type saleInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// GET /sales
func (h *SaleHandlers) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /sales
func (h *SaleHandlers) Create(c *gin.Context) {
	var in saleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("validation failed", errs))
		return
	}

	if _, err := h.products.Get(c.Request.Context(), in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.InvalidErr("unknown product", map[string]string{"productId": "No such product."}))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	s, err := h.repo.Create(c.Request.Context(), in.ProductID, in.Quantity)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, s)
}
