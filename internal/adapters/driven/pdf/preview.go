package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// previewQuality is the JPEG quality of preview images
const previewQuality = 75

// decodeImage decodes an extracted image by the file type pdfcpu reports
func decodeImage(r io.Reader, fileType string) (image.Image, error) {
	switch fileType {
	case "jpg", "jpeg":
		return jpeg.Decode(r)
	case "png":
		return png.Decode(r)
	case "tif", "tiff":
		return tiff.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image type %q", fileType)
	}
}

// encodePreview scales src by factor (0 < factor <= 1) and encodes it as JPEG
func encodePreview(src image.Image, factor float64) ([]byte, error) {
	if factor <= 0 || factor > 1 {
		return nil, fmt.Errorf("preview scale %v out of range (0, 1]", factor)
	}

	b := src.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*factor)))
	h := max(1, int(math.Round(float64(b.Dy())*factor)))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: previewQuality}); err != nil {
		return nil, fmt.Errorf("encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
