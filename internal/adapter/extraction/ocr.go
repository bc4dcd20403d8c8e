package extraction

import (
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"

	"github.com/otiai10/gosseract/v2"
)

// extractImageText runs Tesseract OCR over an image. A gosseract client is
// not safe for concurrent use, so one is created per call.
func extractImageText(data []byte, language string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", domain.NewExtractionError("failed to configure OCR language", err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", domain.NewExtractionError("failed to load image for OCR", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", domain.NewExtractionError("failed to extract text from image", err)
	}
	return text, nil
}
