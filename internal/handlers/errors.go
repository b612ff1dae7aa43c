package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prospel/prospel_backend/internal/apperrors"
	"github.com/prospel/prospel_backend/internal/middleware"
)

// ErrorResponse is the generic error payload of every handler.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service errors onto HTTP statuses. Known sentinel errors
// surface their message; anything else is logged and hidden behind msg.
func respondError(c *gin.Context, err error, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// requireUserID pulls the authenticated user ID out of the request context.
// The auth middleware guarantees it for /api/v1 routes; a miss means the
// route was wired without it.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}
