package http

import (
	"errors"
	"net/http"

	"github.com/custodia-labs/briefvault/internal/core/domain"
)

// errorStatuses maps the domain taxonomy to HTTP status codes. Order matters:
// the first match wins.
var errorStatuses = []struct {
	err    error
	status int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrEmptyInput, http.StatusBadRequest},
	{domain.ErrOversizeInput, http.StatusRequestEntityTooLarge},
	{domain.ErrUnsupportedFormat, http.StatusUnsupportedMediaType},
	{domain.ErrCorruptDocument, http.StatusUnprocessableEntity},
	{domain.ErrIngestionInProgress, http.StatusConflict},
	{domain.ErrAlreadyExists, http.StatusConflict},
	{domain.ErrRateLimited, http.StatusTooManyRequests},
	{domain.ErrEmptyResponse, http.StatusBadGateway},
	{domain.ErrUpstreamRejected, http.StatusBadGateway},
	{domain.ErrServiceUnavailable, http.StatusServiceUnavailable},
	{domain.ErrCheckoutUnavailable, http.StatusServiceUnavailable},
	{domain.ErrPaymentVerification, http.StatusPaymentRequired},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized},
	{domain.ErrTokenExpired, http.StatusUnauthorized},
	{domain.ErrTokenInvalid, http.StatusUnauthorized},
	{domain.ErrSessionNotFound, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
}

// statusFor returns the HTTP status for err, 500 when unknown
func statusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeDomainError writes err with its mapped status. The body carries the
// user-facing message for the error kind, or fallback when there is none.
func writeDomainError(w http.ResponseWriter, err error, fallback string) {
	msg := domain.UserMessage(err)
	if msg == "" {
		msg = fallback
	}
	writeError(w, statusFor(err), msg)
}
