package domain

import (
	"time"
)

const (
	MinOptions = 2
	MaxOptions = 6
)

// Question represents a single multiple-choice question inside a quiz.
// Display order of Options is significant and preserved end-to-end.
type Question struct {
	ID            string
	Text          string
	Options       []string
	CorrectAnswer int
	Explanation   string
}

// Validate checks the structural invariants of a generated question.
func (q *Question) Validate() error {
	if q.Text == "" {
		return NewValidationError("question", "is required")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return NewValidationError("options", "must contain between 2 and 6 entries")
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return NewValidationError("correctAnswer", "index must be within options range")
	}
	return nil
}

// NewValidationError builds a single-field ValidationError as an error value.
func NewValidationError(field, message string) error {
	return ValidationError{Field: field, Message: message}
}

// SourceFile records the provenance of an uploaded document. It is kept for
// display only and is not re-derivable from the quiz content.
type SourceFile struct {
	Filename     string
	OriginalName string
	MimeType     string
}

// Quiz represents a generated quiz. It is created once, after a successful
// generation, and is immutable afterwards.
type Quiz struct {
	ID          string
	Title       string
	Language    string
	Questions   []Question
	CreatedBy   string
	SourceFiles []SourceFile
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewQuiz creates a new Quiz instance owned by the given user.
func NewQuiz(title, language string, questions []Question, createdBy string, sourceFiles []SourceFile) *Quiz {
	if title == "" {
		title = "Generated Quiz"
	}
	now := time.Now()
	return &Quiz{
		Title:       title,
		Language:    language,
		Questions:   questions,
		CreatedBy:   createdBy,
		SourceFiles: sourceFiles,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate validates the quiz
func (q *Quiz) Validate() error {
	if q.Language == "" {
		return NewValidationError("language", "is required")
	}
	if q.CreatedBy == "" {
		return NewValidationError("createdBy", "is required")
	}
	if len(q.Questions) == 0 {
		return NewValidationError("questions", "at least one question is required")
	}
	for i := range q.Questions {
		if err := q.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// QuestionByID looks a question up by its opaque identifier.
func (q *Quiz) QuestionByID(id string) (*Question, bool) {
	for i := range q.Questions {
		if q.Questions[i].ID == id {
			return &q.Questions[i], true
		}
	}
	return nil, false
}
