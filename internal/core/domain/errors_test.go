package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsAreDistinct(t *testing.T) {
	allErrors := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized, ErrForbidden,
		ErrTokenExpired, ErrTokenInvalid, ErrSessionNotFound, ErrInvalidCredentials,
		ErrInvalidProvider, ErrServiceUnavailable,
		ErrOversizeInput, ErrUnsupportedFormat, ErrCorruptDocument, ErrEmptyInput,
		ErrIngestionInProgress, ErrEmptyResponse, ErrRateLimited, ErrUpstreamRejected,
		ErrPersistence, ErrDeleteFailed, ErrPaymentVerification, ErrCheckoutUnavailable,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("errors %v and %v should be distinct", err1, err2)
			}
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"oversize", ErrOversizeInput, "File exceeds the vault size limit."},
		{"wrapped rate limit", fmt.Errorf("%w: 429 from provider", ErrRateLimited), "Rate limit exceeded. Please wait a moment."},
		{"delete", ErrDeleteFailed, "Delete failed. Please retry."},
		{"unknown", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage_DistinguishesEveryIngestionFailure(t *testing.T) {
	seen := make(map[string]error)
	for _, err := range []error{
		ErrOversizeInput, ErrUnsupportedFormat, ErrCorruptDocument, ErrRateLimited,
		ErrUpstreamRejected, ErrEmptyResponse, ErrPersistence, ErrDeleteFailed,
	} {
		msg := UserMessage(err)
		if msg == "" {
			t.Errorf("%v has no user message", err)
			continue
		}
		if prev, ok := seen[msg]; ok {
			t.Errorf("%v and %v share message %q", prev, err, msg)
		}
		seen[msg] = err
	}
}
