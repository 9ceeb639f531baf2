package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/modules/auth"
)

type UserHandlers struct {
	svc *auth.Service
}

func NewUserHandlers(svc *auth.Service) *UserHandlers {
	return &UserHandlers{svc: svc}
}

// GET /users
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
