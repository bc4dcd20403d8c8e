package domain

import (
	"math"
	"time"
)

// ResultItem is a frozen snapshot of one question at attempt time, together
// with the user's answer. It stays valid independently of the Quiz record.
type ResultItem struct {
	Question      string
	Options       []string
	CorrectAnswer int
	UserAnswer    *int // nil when the question was left unanswered
	IsCorrect     bool
	Explanation   string
}

// QuizAttemptResult is the immutable record of one quiz submission.
// Invariants: Score == round(100 * CorrectCount / TotalQuestions) and
// CorrectCount equals the number of items with IsCorrect set.
type QuizAttemptResult struct {
	ID             string
	UserID         string
	QuizID         string
	QuizTitle      string
	Score          int
	CorrectCount   int
	TotalQuestions int
	Results        []ResultItem
	CreatedAt      time.Time
}

// ScoreSubmission grades a submitted answer set against the quiz's answer
// key. Answers are addressed by question ID; a missing entry or a nil
// selection counts as unanswered and therefore incorrect. The percentage is
// rounded half-up, which is user-visible and must stay stable.
func ScoreSubmission(quiz *Quiz, answers map[string]*int) *QuizAttemptResult {
	items := make([]ResultItem, 0, len(quiz.Questions))
	correctCount := 0

	for _, q := range quiz.Questions {
		item := ResultItem{
			Question:      q.Text,
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if selected, ok := answers[q.ID]; ok && selected != nil {
			idx := *selected
			item.UserAnswer = &idx
			item.IsCorrect = idx == q.CorrectAnswer
		}
		if item.IsCorrect {
			correctCount++
		}
		items = append(items, item)
	}

	total := len(quiz.Questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correctCount) / float64(total) * 100))
	}

	return &QuizAttemptResult{
		UserID:         quiz.CreatedBy,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: total,
		Results:        items,
		CreatedAt:      time.Now(),
	}
}

// UserStats aggregates a user's attempt history.
type UserStats struct {
	TotalAttempts          int
	AverageScore           float64
	BestScore              int
	TotalQuestionsAnswered int
}

// AttemptSummary is one row of the reverse-chronological history listing.
type AttemptSummary struct {
	ID             string
	QuizID         string
	QuizTitle      string
	Score          int
	CorrectCount   int
	TotalQuestions int
	CreatedAt      time.Time
}
