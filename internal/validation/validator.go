package validation

import (
	"regexp"
	"strings"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
)

// Validator provides request validation functionality
type Validator struct {
	gen config.GenerationConfig
}

// NewValidator creates a new validator instance
func NewValidator(gen config.GenerationConfig) *Validator {
	return &Validator{gen: gen}
}

// ValidateUploadRequest validates the metadata of a quiz generation upload.
// File contents are validated separately during extraction.
func (v *Validator) ValidateUploadRequest(files []domain.UploadedFile, language string, numQuestions int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if len(files) == 0 {
		errors = append(errors, domain.NewMissingFieldError("files"))
	} else if len(files) > v.gen.MaxFiles {
		errors = append(errors, domain.NewOutOfRangeError("files", len(files), 1, v.gen.MaxFiles))
	}

	maxBytes := v.gen.MaxFileSizeMB * 1024 * 1024
	for _, f := range files {
		if len(f.Data) > maxBytes {
			errors = append(errors, domain.NewOutOfRangeError("files."+f.OriginalName, len(f.Data), 1, maxBytes))
		}
		if !domain.AllowedMimeTypes[f.MimeType] {
			errors = append(errors, domain.NewInvalidFormatError("files."+f.OriginalName, f.MimeType))
		}
	}

	if strings.TrimSpace(language) == "" {
		errors = append(errors, domain.NewMissingFieldError("language"))
	}

	if numQuestions < v.gen.MinQuestions || numQuestions > v.gen.MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("numQuestions", numQuestions, v.gen.MinQuestions, v.gen.MaxQuestions))
	}

	return errors
}

// ValidateSubmission validates a quiz submission body.
func (v *Validator) ValidateSubmission(quizID string, answers map[string]*int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(quizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	} else if !isValidULID(quizID) {
		errors = append(errors, domain.NewInvalidFormatError("quiz_id", quizID))
	}

	if answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
		return errors
	}

	for questionID, selected := range answers {
		if !isValidULID(questionID) {
			errors = append(errors, domain.NewInvalidFormatError("answers."+questionID, questionID))
			continue
		}
		if selected != nil && (*selected < 0 || *selected >= domain.MaxOptions) {
			errors = append(errors, domain.NewOutOfRangeError("answers."+questionID, *selected, 0, domain.MaxOptions-1))
		}
	}

	return errors
}

// ValidateID validates a resource identifier path parameter.
func (v *Validator) ValidateID(field, id string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError(field))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError(field, id))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	if len(s) != 26 {
		return false
	}
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
