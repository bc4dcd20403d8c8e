package extraction

import (
	"bytes"
	"io"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"

	"github.com/ledongthuc/pdf"
)

// extractPDFText pulls the plain text out of a PDF document.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewExtractionError("failed to read PDF", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", domain.NewExtractionError("failed to extract text from PDF", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", domain.NewExtractionError("failed to extract text from PDF", err)
	}
	return buf.String(), nil
}
