package driven

// PDFReader opens PDF bytes for page-wise extraction
type PDFReader interface {
	// Open parses the document structure.
	// Any error means the document is unreadable.
	Open(data []byte) (PDFDocument, error)
}

// PDFDocument is a parsed PDF
type PDFDocument interface {
	// PageCount returns the total number of pages
	PageCount() int

	// PageText returns the raw text of a 1-based page
	PageText(pageNr int) (string, error)

	// RenderPreview returns a compressed image of a 1-based page at the given scale
	RenderPreview(pageNr int, scale float64) ([]byte, error)
}
