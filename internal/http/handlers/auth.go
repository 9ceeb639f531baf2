package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"myduka.app/pos/internal/http/middleware"
	"myduka.app/pos/internal/http/validation"
	"myduka.app/pos/internal/modules/auth"
	"myduka.app/pos/internal/shared/apperr"
)

type AuthHandlers struct {
	svc    *auth.Service
	tokens *auth.TokenService
}

func NewAuthHandlers(svc *auth.Service, tokens *auth.TokenService) *AuthHandlers {
	return &AuthHandlers{svc: svc, tokens: tokens}
}

type registerInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// POST /auth/register
func (h *AuthHandlers) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		errs := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr("validation failed", errs))
		return
	}

	user, err := h.svc.Register(c.Request.Context(), in.FullName, in.Email, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":        user,
		"accessToken": token,
		"tokenType":   "bearer",
	})
}

type tokenInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// POST /auth/token (form-encoded, OAuth2 password style)
func (h *AuthHandlers) Token(c *gin.Context) {
	var in tokenInput
	if err := c.ShouldBind(&in); err != nil {
		middleware.Fail(c, apperr.UnauthorizedErr("invalid email or password"))
		return
	}

	user, err := h.svc.Authenticate(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	token, err := h.tokens.Issue(user.Email)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"tokenType":   "bearer",
	})
}
