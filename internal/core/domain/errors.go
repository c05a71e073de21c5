package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrServiceUnavailable indicates the synthesis model is not configured
	ErrServiceUnavailable = errors.New("service unavailable")
)

// Ingestion errors
var (
	// ErrOversizeInput indicates the input exceeds the configured byte limit
	ErrOversizeInput = errors.New("input exceeds size limit")

	// ErrUnsupportedFormat indicates the media type is neither plain text nor PDF
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrCorruptDocument indicates the PDF structure could not be parsed
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrEmptyInput indicates there is neither text nor a file to synthesize
	ErrEmptyInput = errors.New("empty input")

	// ErrIngestionInProgress indicates the user already has an ingestion in flight
	ErrIngestionInProgress = errors.New("ingestion already in progress")

	// ErrEmptyResponse indicates the model returned no text
	ErrEmptyResponse = errors.New("empty model response")

	// ErrRateLimited indicates the model provider reported a rate limit
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstreamRejected indicates any other model provider failure
	ErrUpstreamRejected = errors.New("upstream rejected")

	// ErrPersistence indicates the store rejected a record insert
	ErrPersistence = errors.New("persistence failed")

	// ErrDeleteFailed indicates the store rejected a record delete
	ErrDeleteFailed = errors.New("delete failed")
)

// Subscription errors
var (
	// ErrPaymentVerification indicates the payment signature did not verify
	ErrPaymentVerification = errors.New("payment verification failed")

	// ErrCheckoutUnavailable indicates the checkout gateway could not create an order
	ErrCheckoutUnavailable = errors.New("checkout unavailable")
)

var userMessages = []struct {
	err error
	msg string
}{
	{ErrOversizeInput, "File exceeds the vault size limit."},
	{ErrUnsupportedFormat, "Format not supported. Upload plain text or PDF."},
	{ErrCorruptDocument, "Could not read PDF: document structure is unreadable."},
	{ErrEmptyInput, "Provide text or a document to analyze."},
	{ErrIngestionInProgress, "A briefing is already being synthesized. Wait for it to finish."},
	{ErrRateLimited, "Rate limit exceeded. Please wait a moment."},
	{ErrEmptyResponse, "The analysis engine returned nothing. Try again or use plain text."},
	{ErrUpstreamRejected, "Analysis engine failed. Please try a smaller file or plain text."},
	{ErrServiceUnavailable, "The analysis engine is not configured."},
	{ErrPersistence, "The briefing was generated but could not be saved. Please try again."},
	{ErrDeleteFailed, "Delete failed. Please retry."},
	{ErrPaymentVerification, "Payment could not be verified. No upgrade was applied."},
	{ErrCheckoutUnavailable, "Payment gateway is unavailable. Please try again later."},
	{ErrNotFound, "Briefing not found."},
}

// UserMessage returns a short message explaining err to an end user.
// Returns an empty string when err is not part of the user-facing taxonomy.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, m := range userMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return ""
}
