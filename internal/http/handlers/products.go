package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/http/validation"
	"myduka.app/pos/internal/modules/products"
	"myduka.app/pos/internal/shared/apperr"
)

type ProductHandlers struct {
	repo *products.Repo
}

func NewProductHandlers(repo *products.Repo) *ProductHandlers {
	return &ProductHandlers{repo: repo}
}

type productInput struct {
	Name         string  `json:"name" binding:"required"`
	BuyingPrice  float64 `json:"buyingPrice" binding:"required,gt=0"`
	SellingPrice float64 `json:"sellingPrice" binding:"required,gt=0"`
}

// GET /products
func (h *ProductHandlers) List(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// POST /products
func (h *ProductHandlers) Create(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("validation failed", errs))
		return
	}

	p, err := h.repo.Create(c.Request.Context(), in.Name, in.BuyingPrice, in.SellingPrice)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /products/:id
func (h *ProductHandlers) Update(c *gin.Context) {
	id := c.Param("id")

	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("validation failed", errs))
		return
	}

	if _, err := h.repo.Get(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("product not found"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, in.Name, in.BuyingPrice, in.SellingPrice); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /products/:id
func (h *ProductHandlers) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.Status(http.StatusNoContent)
}
