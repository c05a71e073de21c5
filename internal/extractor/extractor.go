// Package extractor turns raw user input into normalized text and classifies
// PDFs as text-dominant or visual-dominant.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/briefvault/internal/core/domain"
	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Config holds extraction limits
type Config struct {
	MaxBytes int64
	MaxPages int
	Logger   *slog.Logger
}

// DefaultConfig returns the standard limits: 25 MiB and 20 pages
func DefaultConfig() Config {
	return Config{
		MaxBytes: domain.DefaultMaxInputBytes,
		MaxPages: domain.DefaultMaxPDFPages,
	}
}

// Extractor implements the document extraction stage of ingestion
type Extractor struct {
	cfg        Config
	normaliser driven.Normaliser
	pdf        driven.PDFReader
	logger     *slog.Logger
}

// New creates an Extractor
func New(cfg Config, normaliser driven.Normaliser, pdf driven.PDFReader) *Extractor {
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = domain.DefaultMaxInputBytes
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = domain.DefaultMaxPDFPages
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{cfg: cfg, normaliser: normaliser, pdf: pdf, logger: logger}
}

// MaxBytes returns the configured input limit
func (e *Extractor) MaxBytes() int64 {
	return e.cfg.MaxBytes
}

// Extract validates and extracts input. The size check runs before anything
// else so an oversize file is never parsed.
func (e *Extractor) Extract(ctx context.Context, input domain.RawInput) (*domain.ExtractedDocument, error) {
	if input.Size() > e.cfg.MaxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", domain.ErrOversizeInput, input.Size(), e.cfg.MaxBytes)
	}

	if !input.IsFile() {
		return e.extractText(input.Text, ""), nil
	}

	switch mediaType(input.MediaType) {
	case domain.MediaTypeText:
		return e.extractText(string(input.Data), input.FileName), nil
	case domain.MediaTypePDF:
		return e.extractPDF(ctx, input)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, input.MediaType)
	}
}

func (e *Extractor) extractText(text, fileName string) *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		NormalizedText: e.normaliser.Normalise(text),
		IsVisual:       false,
		SourceFileName: fileName,
		Category:       domain.CategoryText,
	}
}

func (e *Extractor) extractPDF(ctx context.Context, input domain.RawInput) (*domain.ExtractedDocument, error) {
	doc, err := e.pdf.Open(input.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}

	pages := min(doc.PageCount(), e.cfg.MaxPages)

	var full strings.Builder
	hasText := false
	totalChars := 0
	for pageNr := 1; pageNr <= pages; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := doc.PageText(pageNr)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrCorruptDocument, pageNr, err)
		}
		if nonSpaceCount(raw) > domain.MinPageTextChars {
			hasText = true
		}
		pageText := e.normaliser.Normalise(raw)
		totalChars += utf8.RuneCountInString(pageText)

		full.WriteString("[PAGE ")
		full.WriteString(strconv.Itoa(pageNr))
		full.WriteString("]\n")
		full.WriteString(pageText)
		full.WriteString("\n\n")
	}

	isVisual := IsVisual(hasText, totalChars, pages)

	var preview []byte
	if pages > 0 {
		preview, err = doc.RenderPreview(1, domain.PreviewScale)
		if err != nil {
			e.logger.Warn("preview generation failed", "file", input.FileName, "error", err)
			preview = nil
		}
	}

	e.logger.Debug("pdf extracted",
		"file", input.FileName,
		"pages", pages,
		"total_pages", doc.PageCount(),
		"chars", totalChars,
		"visual", isVisual)

	// Markers alone are not content
	text := ""
	if hasText {
		text = e.normaliser.Normalise(full.String())
	}

	return &domain.ExtractedDocument{
		NormalizedText: text,
		PreviewImage:   preview,
		IsVisual:       isVisual,
		SourceFileName: input.FileName,
		PageCount:      doc.PageCount(),
		Category:       domain.CategoryDocument,
		Payload:        &domain.BinaryPart{Data: input.Data, MimeType: domain.MediaTypePDF},
	}, nil
}

// IsVisual classifies a PDF as image-dominant when no page carried text or
// the average text per processed page is below the density threshold.
func IsVisual(hasText bool, totalChars, pages int) bool {
	if !hasText || pages == 0 {
		return true
	}
	return TextDensity(totalChars, pages) < domain.VisualDensityThreshold
}

// TextDensity returns extracted characters per processed page
func TextDensity(totalChars, pages int) float64 {
	if pages == 0 {
		return 0
	}
	return float64(totalChars) / float64(pages)
}

func nonSpaceCount(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// mediaType strips parameters such as charset and lowercases the type.
func mediaType(declared string) string {
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(declared))
	}
	return mt
}
