package domain

import "encoding/base64"

// Media types accepted by the extractor
const (
	MediaTypeText = "text/plain"
	MediaTypePDF  = "application/pdf"
)

// Extraction limits
const (
	// DefaultMaxInputBytes is the largest accepted input (25 MiB)
	DefaultMaxInputBytes int64 = 25 * 1024 * 1024

	// DefaultMaxPDFPages caps how many PDF pages are read
	DefaultMaxPDFPages = 20

	// MinPageTextChars is the non-whitespace count a page must exceed to count as text
	MinPageTextChars = 5

	// VisualDensityThreshold is the chars-per-page below which a PDF is visual
	VisualDensityThreshold = 100

	// PreviewScale is the scale applied to page 1 for the preview image
	PreviewScale = 0.5
)

// RawInput is either inline text or an uploaded file.
// It lives only for the duration of one ingestion.
type RawInput struct {
	Text      string `json:"text,omitempty"`
	Data      []byte `json:"-"`
	MediaType string `json:"media_type,omitempty"`
	FileName  string `json:"file_name,omitempty"`
}

// IsFile reports whether the input carries a binary file
func (r RawInput) IsFile() bool {
	return r.Data != nil
}

// Size returns the byte length of the input
func (r RawInput) Size() int64 {
	if r.IsFile() {
		return int64(len(r.Data))
	}
	return int64(len(r.Text))
}

// BinaryPart is an inline binary payload for a multimodal model
type BinaryPart struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mime_type"`
}

// Base64 returns the payload in standard base64 encoding
func (b *BinaryPart) Base64() string {
	return base64.StdEncoding.EncodeToString(b.Data)
}

// ExtractedDocument is the extractor's output
type ExtractedDocument struct {
	NormalizedText string      `json:"normalized_text"`
	PreviewImage   []byte      `json:"preview_image,omitempty"`
	IsVisual       bool        `json:"is_visual"`
	SourceFileName string      `json:"source_file_name,omitempty"`
	PageCount      int         `json:"page_count,omitempty"`
	Category       Category    `json:"category"`
	Payload        *BinaryPart `json:"-"` // original bytes, kept for multimodal synthesis
}

// HasText reports whether extraction produced any usable text
func (d *ExtractedDocument) HasText() bool {
	return d.NormalizedText != ""
}
