package domain

// SynthesisStatus tags the result of a model call
type SynthesisStatus string

const (
	SynthesisOK               SynthesisStatus = "ok"
	SynthesisRateLimited      SynthesisStatus = "rate_limited"
	SynthesisUpstreamRejected SynthesisStatus = "upstream_rejected"
	SynthesisEmptyResponse    SynthesisStatus = "empty_response"
)

// SynthesisOutcome is the tagged result of one model call.
// Text is set only when Status is SynthesisOK.
type SynthesisOutcome struct {
	Status SynthesisStatus
	Text   string
	Detail string // provider message, for logs only
}

// SynthesisOk builds a successful outcome
func SynthesisOk(text string) SynthesisOutcome {
	return SynthesisOutcome{Status: SynthesisOK, Text: text}
}

// SynthesisFailed builds a failed outcome with a diagnostic detail
func SynthesisFailed(status SynthesisStatus, detail string) SynthesisOutcome {
	return SynthesisOutcome{Status: status, Detail: detail}
}

// Err maps the outcome to the domain error taxonomy (nil when ok)
func (o SynthesisOutcome) Err() error {
	switch o.Status {
	case SynthesisOK:
		return nil
	case SynthesisRateLimited:
		return ErrRateLimited
	case SynthesisEmptyResponse:
		return ErrEmptyResponse
	default:
		return ErrUpstreamRejected
	}
}

// GenerateRequest is a single model call
type GenerateRequest struct {
	SystemInstruction string
	Text              string
	Payload           *BinaryPart
	Temperature       float64
	TopP              float64 // zero leaves the provider default
}

// ModelProvider identifies a synthesis backend
type ModelProvider string

const (
	ModelProviderGemini ModelProvider = "gemini"
	ModelProviderOpenAI ModelProvider = "openai"
)

// ModelSettings configures the synthesis backend
type ModelSettings struct {
	Provider ModelProvider `json:"provider"`
	Model    string        `json:"model"`
	APIKey   string        `json:"-"`
	BaseURL  string        `json:"base_url,omitempty"`
}

// IsConfigured checks if enough settings are present to build a model
func (s *ModelSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}
