package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/spacebook/backend/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
		{"bad token", fmt.Errorf("%w: expired", service.ErrUnauthorized), http.StatusUnauthorized, "Could not validate credentials"},
		{"not owner", service.ErrForbidden, http.StatusForbidden, "Not allowed to access this resource"},
		{"duplicate email", service.ErrDuplicateEmail, http.StatusBadRequest, "Email already registered"},
		{"weak password states rule", fmt.Errorf("%w: at least 8 characters", service.ErrWeakPassword), http.StatusBadRequest, "weak password: at least 8 characters"},
		{"assertion", fmt.Errorf("%w: bad audience", service.ErrInvalidAssertion), http.StatusBadRequest, "Invalid Google token"},
		{"conflict", service.ErrConflict, http.StatusBadRequest, "Record already exists"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "Record not found"},
		{"rate limited", service.ErrRateLimited, http.StatusTooManyRequests, "Too many requests, please try again later"},
		{"federation off", service.ErrFederationDisabled, http.StatusNotImplemented, "Google login is not configured"},
		{"exhausted", service.ErrGenerationExhausted, http.StatusInternalServerError, "server error"},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError, "server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
