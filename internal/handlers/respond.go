package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestika/ledger/internal/apperrors"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps application errors onto HTTP statuses. The order matters:
// the most specific categories are matched first, everything unknown becomes
// a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var unbalanced *apperrors.UnbalancedEntryError
	var appErr *apperrors.AppError

	switch {
	case errors.As(err, &unbalanced):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": unbalanced.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &appErr):
		if appErr.Code >= 400 && appErr.Code < 500 {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireActor pulls the authenticated actor from the context or aborts.
func requireActor(c *gin.Context) (string, bool) {
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return actorID, true
}
