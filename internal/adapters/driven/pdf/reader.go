// Package pdf reads page text and page imagery out of PDF documents with pdfcpu.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

// Verify interface compliance
var (
	_ driven.PDFReader   = (*Reader)(nil)
	_ driven.PDFDocument = (*Document)(nil)
)

// ErrNoRaster is returned by RenderPreview for pages without embedded images
var ErrNoRaster = errors.New("page has no raster content")

// Reader opens PDFs with pdfcpu's default (relaxed) validation
type Reader struct{}

// NewReader creates a Reader
func NewReader() *Reader {
	return &Reader{}
}

// Open parses and validates the document structure
func (r *Reader) Open(data []byte) (driven.PDFDocument, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return &Document{ctx: ctx}, nil
}

// Document is a parsed PDF
type Document struct {
	ctx *model.Context
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// PageText decodes the text-showing operators of a 1-based page.
// A page with an empty content stream yields "".
func (d *Document) PageText(pageNr int) (string, error) {
	if pageNr < 1 || pageNr > d.ctx.PageCount {
		return "", fmt.Errorf("page %d out of range 1..%d", pageNr, d.ctx.PageCount)
	}

	r, err := pdfcpu.ExtractPageContent(d.ctx, pageNr)
	if err != nil {
		return "", fmt.Errorf("page %d content: %w", pageNr, err)
	}
	if r == nil {
		return "", nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("page %d content: %w", pageNr, err)
	}
	return textFromContentStream(data), nil
}

// RenderPreview returns the largest image drawn on the page, scaled and
// re-encoded as JPEG. pdfcpu does not rasterise vector content, so pages
// without embedded images report ErrNoRaster.
func (d *Document) RenderPreview(pageNr int, scale float64) ([]byte, error) {
	images, err := pdfcpu.ExtractPageImages(d.ctx, pageNr, false)
	if err != nil {
		return nil, fmt.Errorf("page %d images: %w", pageNr, err)
	}

	var best model.Image
	var bestArea int
	for _, img := range images {
		if area := img.Width * img.Height; img.Reader != nil && area >= bestArea {
			best, bestArea = img, area
		}
	}
	if best.Reader == nil {
		return nil, ErrNoRaster
	}

	src, err := decodeImage(best.Reader, best.FileType)
	if err != nil {
		return nil, fmt.Errorf("page %d image %s: %w", pageNr, best.Name, err)
	}
	return encodePreview(src, scale)
}
