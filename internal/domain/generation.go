package domain

import "context"

// QuestionGenerator produces a validated question set from extracted document
// text. Implementations hide the completion backend and the response
// recovery parsing behind this port.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, text, language string, numQuestions int) ([]Question, error)
}
