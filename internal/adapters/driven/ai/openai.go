package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Ensure OpenAI implements SynthesisModel
var _ driven.SynthesisModel = (*OpenAI)(nil)

const (
	defaultOpenAIModel   = "gpt-4o-mini"
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// OpenAI implements SynthesisModel using the chat completions API.
// BaseURL may point at any compatible server.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates an OpenAI client. model and baseURL fall back to defaults.
func NewOpenAI(apiKey, model, baseURL string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	return &OpenAI{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
	}, nil
}

type chatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	File     *chatFile     `json:"file,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatFile struct {
	Filename string `json:"filename"`
	FileData string `json:"file_data"`
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []chatContentPart
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Generate issues one chat completion. A PDF payload goes as a file part,
// an image payload as a data URL.
func (o *OpenAI) Generate(ctx context.Context, req domain.GenerateRequest) domain.SynthesisOutcome {
	var parts []chatContentPart
	if p := req.Payload; p != nil && len(p.Data) > 0 {
		dataURL := "data:" + p.MimeType + ";base64," + p.Base64()
		if strings.HasPrefix(p.MimeType, "image/") {
			parts = append(parts, chatContentPart{Type: "image_url", ImageURL: &chatImageURL{URL: dataURL}})
		} else {
			parts = append(parts, chatContentPart{Type: "file", File: &chatFile{Filename: "document.pdf", FileData: dataURL}})
		}
	}
	if req.Text != "" {
		parts = append(parts, chatContentPart{Type: "text", Text: req.Text})
	}

	var messages []chatMessage
	if req.SystemInstruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	messages = append(messages, chatMessage{Role: "user", Content: parts})

	body := chatRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	}

	status, raw, err := postJSON(ctx, o.client, o.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + o.apiKey}, body)
	if err != nil {
		return domain.SynthesisFailed(domain.SynthesisUpstreamRejected, err.Error())
	}

	var resp chatResponse
	decodeErr := json.Unmarshal(raw, &resp)

	if status < 200 || status > 299 || resp.Error != nil {
		var code, message string
		if resp.Error != nil {
			code, message = resp.Error.Code, resp.Error.Message
		}
		if code == "rate_limit_exceeded" {
			code = "RESOURCE_EXHAUSTED"
		}
		return classifyFailure(status, code, message, raw)
	}
	if decodeErr != nil {
		return domain.SynthesisFailed(domain.SynthesisUpstreamRejected, "parse response: "+decodeErr.Error())
	}

	if len(resp.Choices) == 0 {
		return textOutcome("")
	}
	return textOutcome(resp.Choices[0].Message.Content)
}

// Ping lists models, which fails fast on a bad key
func (o *OpenAI) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	status, raw, err := do(o.client, req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("OpenAI returned status %d: %s", status, truncate(string(raw), maxErrorBody))
	}
	return nil
}

// Model returns the model name being used
func (o *OpenAI) Model() string {
	return o.model
}

// Close releases idle connections
func (o *OpenAI) Close() error {
	o.client.CloseIdleConnections()
	return nil
}
