package driven

// Normaliser cleans raw extracted text before synthesis.
// Implementations must be pure and idempotent.
type Normaliser interface {
	Normalise(content string) string
}
