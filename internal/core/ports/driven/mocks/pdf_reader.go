package mocks

import (
	"errors"

	"github.com/custodia-labs/briefvault/internal/core/ports/driven"
)

var (
	_ driven.PDFReader   = (*MockPDFReader)(nil)
	_ driven.PDFDocument = (*MockPDFDocument)(nil)
)

// ErrMockPDF is returned by MockPDFReader for documents it was told to reject
var ErrMockPDF = errors.New("mock: malformed pdf")

// MockPDFReader hands out Doc for every Open call unless OpenErr is set
type MockPDFReader struct {
	Doc     *MockPDFDocument
	OpenErr error
	Opened  int
}

func (m *MockPDFReader) Open(data []byte) (driven.PDFDocument, error) {
	m.Opened++
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	return m.Doc, nil
}

// MockPDFDocument serves page text from Pages (index 0 is page 1)
type MockPDFDocument struct {
	Pages      []string
	PageErr    map[int]error
	Preview    []byte
	PreviewErr error

	// TextCalls records which pages were read
	TextCalls []int
}

func (d *MockPDFDocument) PageCount() int { return len(d.Pages) }

func (d *MockPDFDocument) PageText(pageNr int) (string, error) {
	d.TextCalls = append(d.TextCalls, pageNr)
	if err, ok := d.PageErr[pageNr]; ok {
		return "", err
	}
	if pageNr < 1 || pageNr > len(d.Pages) {
		return "", errors.New("mock: page out of range")
	}
	return d.Pages[pageNr-1], nil
}

func (d *MockPDFDocument) RenderPreview(pageNr int, scale float64) ([]byte, error) {
	if d.PreviewErr != nil {
		return nil, d.PreviewErr
	}
	return d.Preview, nil
}
