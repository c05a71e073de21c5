package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Ensure Gemini implements SynthesisModel
var _ driven.SynthesisModel = (*Gemini)(nil)

const (
	defaultGeminiModel   = "gemini-3-flash-preview"
	defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Gemini implements SynthesisModel against the Generative Language REST API
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGemini creates a Gemini client. model and baseURL fall back to defaults.
func NewGemini(apiKey, model, baseURL string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}

	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}, nil
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"topP,omitempty"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	Error *geminiError `json:"error,omitempty"`
}

type geminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Generate issues one generateContent call. The binary part, when present,
// precedes the text part.
func (g *Gemini) Generate(ctx context.Context, req domain.GenerateRequest) domain.SynthesisOutcome {
	var parts []geminiPart
	if req.Payload != nil && len(req.Payload.Data) > 0 {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: req.Payload.MimeType,
			Data:     req.Payload.Base64(),
		}})
	}
	if req.Text != "" {
		parts = append(parts, geminiPart{Text: req.Text})
	}

	body := geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: parts}},
		GenerationConfig: geminiGenerationConfig{Temperature: req.Temperature, TopP: req.TopP},
	}
	if req.SystemInstruction != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.SystemInstruction}}}
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, url.PathEscape(g.model))
	status, raw, err := postJSON(ctx, g.client, endpoint, map[string]string{"x-goog-api-key": g.apiKey}, body)
	if err != nil {
		return domain.SynthesisFailed(domain.SynthesisUpstreamRejected, err.Error())
	}

	var resp geminiResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if status < 200 || status > 299 || resp.Error != nil {
		var providerStatus, message string
		if resp.Error != nil {
			providerStatus, message = resp.Error.Status, resp.Error.Message
		}
		return classifyFailure(status, providerStatus, message, raw)
	}
	if decodeErr != nil {
		return domain.SynthesisFailed(domain.SynthesisUpstreamRejected, "parse response: "+decodeErr.Error())
	}

	var sb strings.Builder
	if len(resp.Candidates) > 0 {
		for _, p := range resp.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return textOutcome(sb.String())
}

// Ping fetches the model resource, which checks both key and model name
func (g *Gemini) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/models/%s", g.baseURL, url.PathEscape(g.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.apiKey)

	status, raw, err := do(g.client, req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("Gemini returned status %d: %s", status, truncate(string(raw), maxErrorBody))
	}
	return nil
}

// Model returns the model name being used
func (g *Gemini) Model() string {
	return g.model
}

// Close releases idle connections
func (g *Gemini) Close() error {
	g.client.CloseIdleConnections()
	return nil
}
