package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spacebook/backend/internal/logging"
	"github.com/spacebook/backend/internal/model"
	"github.com/spacebook/backend/internal/service"
)

// errorMapping is the single translation from service errors to HTTP.
// An empty message means the error text itself is shown; it states the
// violated rule.
var errorMapping = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
	{service.ErrUnauthorized, http.StatusUnauthorized, "Could not validate credentials"},
	{service.ErrForbidden, http.StatusForbidden, "Not allowed to access this resource"},
	{service.ErrDuplicateEmail, http.StatusBadRequest, "Email already registered"},
	{service.ErrWeakPassword, http.StatusBadRequest, ""},
	{service.ErrInvalidEmail, http.StatusBadRequest, ""},
	{service.ErrInvalidAssertion, http.StatusBadRequest, "Invalid Google token"},
	{service.ErrInvalidInput, http.StatusBadRequest, ""},
	{service.ErrConflict, http.StatusBadRequest, "Record already exists"},
	{service.ErrNotFound, http.StatusNotFound, "Record not found"},
	{service.ErrRateLimited, http.StatusTooManyRequests, "Too many requests, please try again later"},
	{service.ErrFederationDisabled, http.StatusNotImplemented, "Google login is not configured"},
	{service.ErrGenerationExhausted, http.StatusInternalServerError, "server error"},
}

func statusFor(err error) (int, string) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			msg := m.message
			if msg == "" {
				msg = err.Error()
			}
			return m.status, msg
		}
	}
	return http.StatusInternalServerError, "server error"
}

func writeError(c *gin.Context, logger *slog.Logger, err error) {
	status, msg := statusFor(err)
	log := logging.FromContext(c, logger)
	if log == nil {
		log = slog.Default()
	}
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed", "error", err)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		log.Warn("request rejected", "status", status, "error", err)
	default:
		log.Debug("request rejected", "status", status, "error", err)
	}
	c.AbortWithStatusJSON(status, model.ErrorResponse{Error: msg})
}

func writeBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, model.ErrorResponse{Error: msg})
}
