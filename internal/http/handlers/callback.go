package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"myduka.app/pos/internal/modules/payments"
)

type CallbackHandler struct {
	logger *slog.Logger
	svc    *payments.ReconcileService
}

func NewCallbackHandler(logger *slog.Logger, svc *payments.ReconcileService) *CallbackHandler {
	return &CallbackHandler{logger: logger, svc: svc}
}

// POST /payments/callback
//
// Unauthenticated: invoked by the provider. Always answers 200 whatever the
// match outcome — the success/error distinction lives in the body. A non-200
// would make the provider retry a notification that can never resolve.
// The only 500 is a genuine persistence fault, where a retry can help.
func (h *CallbackHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Warn("failed to read callback body", "err", err)
		c.JSON(http.StatusOK, gin.H{"error": "malformed payload"})
		return
	}

	res, err := h.svc.HandleCallback(c.Request.Context(), body)
	if err != nil {
		h.logger.Error("callback processing failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if res.Acknowledged() {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": res.Reason})
}
