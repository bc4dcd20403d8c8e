package domain

import "context"

// Accepted upload MIME types. PDFs go through the PDF text extractor,
// everything else through OCR.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
}

// UploadedFile carries one uploaded document through the generation pipeline.
type UploadedFile struct {
	Filename     string
	OriginalName string
	MimeType     string
	Data         []byte
}

// TextExtractor turns a document's bytes into plain text. Implementations
// return a CodeExtractionFailed DomainError on unreadable content.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, mimeType string) (string, error)
}
