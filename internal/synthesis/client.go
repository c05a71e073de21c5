// Package synthesis produces briefings and titles from extracted documents.
package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

const (
	// DefaultWordLimit caps the briefing length
	DefaultWordLimit = 120

	// TitleContentLimit is how much content the title request sees
	TitleContentLimit = 1000

	// FallbackTitle replaces a title when the model call fails
	FallbackTitle = "New Intel Report"

	// UntitledTitle replaces a title the model returned empty
	UntitledTitle = "Untitled Directory Entry"

	// VisualOnlyContent stands in for text when only a binary payload exists
	VisualOnlyContent = "Document provides visual data only."
)

const (
	summaryTemperature = 0.1
	summaryTopP        = 0.9
	titleTemperature   = 0.2
)

const titleInstruction = "Identify the core subject. Return a 3-5 word formal title. NO punctuation. NO noise."

// ModelSource provides the current synthesis model
type ModelSource interface {
	SynthesisModel() driven.SynthesisModel
}

// Config holds client settings
type Config struct {
	WordLimit int
	Logger    *slog.Logger
}

// DefaultConfig returns the default client settings
func DefaultConfig() Config {
	return Config{WordLimit: DefaultWordLimit}
}

// Client issues summary and title requests against the configured model
type Client struct {
	models    ModelSource
	wordLimit int
	logger    *slog.Logger
}

// NewClient creates a synthesis client
func NewClient(models ModelSource, cfg Config) *Client {
	if cfg.WordLimit <= 0 {
		cfg.WordLimit = DefaultWordLimit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{models: models, wordLimit: cfg.WordLimit, logger: logger}
}

// Summarize returns a briefing for text. payload, when non-nil, is sent
// alongside the text for multimodal analysis. It makes exactly one model
// call and never retries.
func (c *Client) Summarize(ctx context.Context, text string, category domain.Category, payload *domain.BinaryPart) (string, error) {
	model := c.models.SynthesisModel()
	if model == nil {
		return "", domain.ErrServiceUnavailable
	}

	content := text
	if content == "" {
		if payload == nil {
			return "", domain.ErrEmptyInput
		}
		content = VisualOnlyContent
	}

	outcome := model.Generate(ctx, domain.GenerateRequest{
		SystemInstruction: summaryInstruction(category, c.wordLimit),
		Text:              "Analyze this content for strategic value. Ignore noise. Source Content: " + content,
		Payload:           payload,
		Temperature:       summaryTemperature,
		TopP:              summaryTopP,
	})
	if outcome.Status == domain.SynthesisOK {
		outcome.Text = strings.TrimSpace(outcome.Text)
		if outcome.Text == "" {
			outcome = domain.SynthesisFailed(domain.SynthesisEmptyResponse, "blank text")
		}
	}

	switch outcome.Status {
	case domain.SynthesisOK:
		return BoundWords(outcome.Text, c.wordLimit), nil
	default:
		c.logger.Error("synthesis failed",
			"model", model.Model(),
			"status", outcome.Status,
			"detail", outcome.Detail)
		return "", fmt.Errorf("%w: %s", outcome.Err(), outcome.Detail)
	}
}

// GenerateTitle returns a short formal title. It never fails: model errors
// yield FallbackTitle and an empty answer yields UntitledTitle.
func (c *Client) GenerateTitle(ctx context.Context, content string, payload *domain.BinaryPart) string {
	model := c.models.SynthesisModel()
	if model == nil {
		return FallbackTitle
	}

	outcome := model.Generate(ctx, domain.GenerateRequest{
		SystemInstruction: titleInstruction,
		Text:              truncateRunes(content, TitleContentLimit),
		Payload:           payload,
		Temperature:       titleTemperature,
	})

	switch outcome.Status {
	case domain.SynthesisOK:
		if title := CleanTitle(outcome.Text); title != "" {
			return title
		}
		return UntitledTitle
	case domain.SynthesisEmptyResponse:
		return UntitledTitle
	default:
		c.logger.Warn("title generation failed, using fallback",
			"status", outcome.Status,
			"detail", outcome.Detail)
		return FallbackTitle
	}
}

func summaryInstruction(category domain.Category, wordLimit int) string {
	return fmt.Sprintf(`You are a Strategic Intelligence Analyst for a high-level executive vault.

TASK: Synthesize the provided %s into a concise, actionable BRIEFING.

OUTPUT STRUCTURE (Strictly follow this):
1. **EXECUTIVE THESIS**: A single bolded sentence defining the document's core purpose.
2. **PRIMARY INSIGHTS**:
   - [Insight]: [Implication] (Brief and punchy)
   - [Insight]: [Implication] (Brief and punchy)
   - [Insight]: [Implication] (Brief and punchy)
3. **VERDICT**: A one-sentence final strategic takeaway.

CRITICAL RULES:
- IGNORE all structural artifacts, page markers (e.g., "[PAGE X]"), headers, footers, and OCR extraction noise.
- DO NOT include nonsensical characters, broken formatting markers, or technical meta-tags.
- If the input is fragmented, reconstruct the semantic meaning into a coherent summary.
- NO greetings, NO intro, NO conversational filler.
- Use Markdown for hierarchy.
- Maximum word count: %d words. Be ruthless with fluff.
- Tone: Objective, high-density, professional.`, category, wordLimit)
}

// BoundWords drops lines once the word count would exceed limit. The first
// line and the closing VERDICT section are always kept, so the briefing keeps
// its opening and its takeaway; lines are dropped from the middle. When those
// alone exceed limit the result is longer than limit.
func BoundWords(text string, limit int) string {
	if limit <= 0 || len(strings.Fields(text)) <= limit {
		return text
	}

	lines := strings.Split(text, "\n")
	verdict := verdictLine(lines)

	var tail []string
	body := lines
	if verdict > 0 {
		tail = lines[verdict:]
		body = lines[:verdict]
	}

	budget := limit - len(strings.Fields(strings.Join(tail, " ")))
	kept := []string{body[0]}
	words := len(strings.Fields(body[0]))
	for _, line := range body[1:] {
		n := len(strings.Fields(line))
		if words+n > budget {
			break
		}
		words += n
		kept = append(kept, line)
	}
	kept = append(kept, tail...)
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// verdictLine returns the index of the last line that opens the VERDICT
// section, or -1
func verdictLine(lines []string) int {
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.Contains(strings.ToUpper(lines[i]), "VERDICT") {
			return i
		}
	}
	return -1
}

var titleReplacer = strings.NewReplacer(
	"#", "", "*", "", "_", "", "`", "",
	`"`, "", "“", "", "”", "", "‘", "", "’", "",
)

// CleanTitle strips markdown markers and quotes and collapses whitespace
func CleanTitle(raw string) string {
	cleaned := titleReplacer.Replace(raw)
	cleaned = strings.Trim(cleaned, "' \t\r\n")
	return strings.Join(strings.Fields(cleaned), " ")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
