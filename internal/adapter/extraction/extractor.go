package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
)

// DocumentExtractor implements domain.TextExtractor by dispatching on the
// document's MIME type: PDFs go through the PDF text reader, raster images
// through Tesseract OCR.
type DocumentExtractor struct {
	ocrLanguage string
}

// NewDocumentExtractor creates a DocumentExtractor. ocrLanguage is the
// Tesseract language code (e.g. "eng").
func NewDocumentExtractor(ocrLanguage string) *DocumentExtractor {
	if ocrLanguage == "" {
		ocrLanguage = "eng"
	}
	return &DocumentExtractor{ocrLanguage: ocrLanguage}
}

// ExtractText extracts plain text from a document.
func (e *DocumentExtractor) ExtractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", domain.NewExtractionError("document is empty", nil)
	}

	switch {
	case mimeType == "application/pdf":
		return extractPDFText(data)
	case strings.HasPrefix(mimeType, "image/"):
		return extractImageText(data, e.ocrLanguage)
	default:
		return "", domain.NewError(domain.CodeUnsupportedFile,
			fmt.Sprintf("unsupported MIME type: %s", mimeType), nil)
	}
}

var _ domain.TextExtractor = (*DocumentExtractor)(nil)
