package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/http/validation"
	"myduka.app/pos/internal/modules/payments"
	"myduka.app/pos/internal/shared/apperr"
)

type PaymentHandlers struct {
	svc   *payments.Service
	store payments.Store
}

func NewPaymentHandlers(svc *payments.Service, store payments.Store) *PaymentHandlers {
	return &PaymentHandlers{svc: svc, store: store}
}

type initiateInput struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	PhoneNumber string  `json:"phoneNumber" binding:"required"`
	SaleID      string  `json:"saleId" binding:"required"`
}

// POST /payments/initiate
func (h *PaymentHandlers) Initiate(c *gin.Context) {
	var in initiateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("validation failed", errs))
		return
	}

	p, providerResp, err := h.svc.Initiate(c.Request.Context(), in.Amount, in.PhoneNumber, in.SaleID)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"providerResponse": providerResp,
		"paymentId":        p.ID,
	})
}

// GET /payments
func (h *PaymentHandlers) List(c *gin.Context) {
	items, err := h.store.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

// GET /payments/status/:saleId
//
// Safe to poll: returns the pending sentinels until the callback lands, then
// the terminal values forever after.
func (h *PaymentHandlers) Status(c *gin.Context) {
	saleID := c.Param("saleId")

	p, err := h.store.LatestBySale(c.Request.Context(), saleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("no payment for this sale"))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactionCode": p.TransactionCode,
		"amount":          p.Amount,
	})
}
