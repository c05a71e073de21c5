package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTextPDF writes a minimal single-page PDF whose content stream is stream
func buildTextPDF(stream string) []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, 6)
	offsets[1] = b.Len()
	b.WriteString("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	offsets[2] = b.Len()
	b.WriteString("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	offsets[3] = b.Len()
	b.WriteString("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	offsets[4] = b.Len()
	fmt.Fprintf(&b, "4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream)
	offsets[5] = b.Len()
	b.WriteString("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xref := b.Len()
	b.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&b, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)

	return []byte(b.String())
}

func TestReader_OpenAndPageText(t *testing.T) {
	doc, err := NewReader().Open(buildTextPDF("BT\n/F1 12 Tf\n72 720 Td\n(Quarterly margins rose) Tj\nT*\n(Costs fell) Tj\nET"))
	require.NoError(t, err)
	assert.Equal(t, 1, doc.PageCount())

	text, err := doc.PageText(1)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly margins rose\nCosts fell", text)

	_, err = doc.PageText(2)
	assert.Error(t, err, "out of range page")

	_, err = doc.RenderPreview(1, 0.5)
	assert.Error(t, err, "text-only page has nothing to rasterise")
}

func TestReader_PageTextIgnoresLineLayout(t *testing.T) {
	streams := map[string]string{
		"single line": "BT /F1 12 Tf 72 720 Td (Quarterly margins rose sharply this year) Tj ET",
		"CR endings":  "BT\r/F1 12 Tf\r72 720 Td\r(Quarterly margins rose sharply this year) Tj\rET",
	}
	for name, stream := range streams {
		t.Run(name, func(t *testing.T) {
			doc, err := NewReader().Open(buildTextPDF(stream))
			require.NoError(t, err)

			text, err := doc.PageText(1)
			require.NoError(t, err)
			assert.Equal(t, "Quarterly margins rose sharply this year", text)
		})
	}
}

func TestReader_OpenGarbage(t *testing.T) {
	_, err := NewReader().Open([]byte("this is not a pdf"))
	assert.Error(t, err)
}

func TestTextFromContentStream(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{
			name:   "Tj with positioning",
			stream: "BT\n72 720 Td\n(Hello) Tj\n0 -14 Td\n(World) Tj\nET",
			want:   "Hello World",
		},
		{
			name:   "TJ array with kerning",
			stream: "BT\n[(Exec) -20 (utive) 100 ( Thesis)] TJ\nET",
			want:   "Executive Thesis",
		},
		{
			name:   "quote operator starts a line",
			stream: "BT\n(first) Tj\n(second) '\nET",
			want:   "first\nsecond",
		},
		{
			name:   "escaped parens stay in the literal",
			stream: `BT` + "\n" + `(Revenue \(net\) up) Tj` + "\nET",
			want:   "Revenue (net) up",
		},
		{
			name:   "single-line stream",
			stream: "BT /F1 12 Tf 72 720 Td (Quarterly margins rose sharply this year) Tj ET",
			want:   "Quarterly margins rose sharply this year",
		},
		{
			name:   "carriage return line endings",
			stream: "BT\r/F1 12 Tf\r72 720 Td\r(Costs fell) Tj\rT*\r(Margins rose) Tj\rET",
			want:   "Costs fell\nMargins rose",
		},
		{
			name:   "operators packed without spaces",
			stream: "BT/F1 12 Tf 72 720 Td(Packed)Tj ET",
			want:   "Packed",
		},
		{
			name:   "hex string",
			stream: "BT <48656C6C6F2C20776F726C64> Tj ET",
			want:   "Hello, world",
		},
		{
			name:   "hex strings and wide kerning in TJ",
			stream: "BT [<4E6574> -40 (profit) -350 (grew)] TJ ET",
			want:   "Netprofit grew",
		},
		{
			name:   "double quote operator",
			stream: "BT (one) Tj 0 0 (two) \" ET",
			want:   "one\ntwo",
		},
		{
			name:   "separate text blocks",
			stream: "BT (Heading) Tj ET BT (Body) Tj ET",
			want:   "Heading\nBody",
		},
		{
			name:   "nested parens and marked content dict",
			stream: "/Span <</ActualText (ignored)>> BDC BT (f(x) rises) Tj ET EMC",
			want:   "f(x) rises",
		},
		{
			name:   "inline image data is skipped",
			stream: "BI /W 9 /H 1 /BPC 8 /CS /G ID (Leak) Tj EI BT (After image) Tj ET",
			want:   "After image",
		},
		{
			name:   "comments are ignored",
			stream: "% (hidden) Tj\nBT (Shown) Tj ET",
			want:   "Shown",
		},
		{
			name:   "no text operators",
			stream: "q 100 0 0 100 72 692 cm /Im1 Do Q",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, textFromContentStream([]byte(tt.stream)))
		})
	}
}

func TestDecodeLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\\b`, `a\b`},
		{`tab\there`, "tab\there"},
		{`\101\102C`, "ABC"},
		{`\40x`, " x"},
		{`\7`, "\a"},
		{`trailing\`, `trailing\`},
		{`\q`, "q"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, decodeLiteral([]byte(tt.in)), "decodeLiteral(%q)", tt.in)
	}
}

func TestCleanLines(t *testing.T) {
	assert.Equal(t, "a b\nc", cleanLines("  a \t b \n\n \x01 \n c  "))
	assert.Equal(t, "", cleanLines(" \n\t\n"))
}

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodePreview_HalfScale(t *testing.T) {
	out, err := encodePreview(testImage(200, 100), 0.5)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), decoded.Bounds())
}

func TestEncodePreview_TinyImageKeepsOnePixel(t *testing.T) {
	out, err := encodePreview(testImage(1, 1), 0.5)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 1, decoded.Bounds().Dx())
}

func TestEncodePreview_RejectsBadScale(t *testing.T) {
	for _, scale := range []float64{0, -1, 1.5} {
		_, err := encodePreview(testImage(4, 4), scale)
		assert.Error(t, err, "scale %v", scale)
	}
}

func TestDecodeImage(t *testing.T) {
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, testImage(3, 2)))

	img, err := decodeImage(&pngBuf, "png")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	var jpgBuf bytes.Buffer
	require.NoError(t, jpeg.Encode(&jpgBuf, testImage(3, 2), nil))
	_, err = decodeImage(&jpgBuf, "jpg")
	require.NoError(t, err)

	_, err = decodeImage(strings.NewReader("x"), "jpx")
	assert.Error(t, err)
}
