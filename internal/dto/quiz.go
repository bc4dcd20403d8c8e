package dto

import "time"

// UploadQuizRequest carries the multipart form fields of a quiz upload.
// The files themselves are read from the multipart form separately.
type UploadQuizRequest struct {
	Language     string `form:"language"`
	NumQuestions int    `form:"numQuestions"`
	Title        string `form:"title"`
}

// QuestionView is a question as shown to a user taking the quiz. It
// deliberately carries no correct answer and no explanation.
// @Description Question presented during an attempt, without the answer key
type QuestionView struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizResponse represents a quiz in the API response.
// @Description Quiz ready to be taken
type QuizResponse struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Language      string         `json:"language"`
	QuestionCount int            `json:"question_count"`
	Questions     []QuestionView `json:"questions"`
	CreatedAt     time.Time      `json:"created_at"`
}

// SubmitQuizRequest represents a user's submitted answers.
// Answers maps question ID to the selected option index; a null or
// missing entry means the question was left unanswered.
// @Description Request body for submitting quiz answers
type SubmitQuizRequest struct {
	Answers map[string]*int `json:"answers"`
}

// ResultItemResponse is the per-question breakdown of a graded attempt.
type ResultItemResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	UserAnswer    *int     `json:"userAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuizResultResponse represents a graded attempt in the API response.
// @Description Graded quiz attempt with per-question breakdown
type QuizResultResponse struct {
	ID             string               `json:"id"`
	QuizID         string               `json:"quiz_id"`
	QuizTitle      string               `json:"quiz_title"`
	Score          int                  `json:"score"`
	CorrectCount   int                  `json:"correct_count"`
	TotalQuestions int                  `json:"total_questions"`
	Results        []ResultItemResponse `json:"results"`
	CreatedAt      time.Time            `json:"created_at"`
}

// AttemptSummaryResponse is one row of the attempt history listing.
type AttemptSummaryResponse struct {
	ID             string    `json:"id"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// Pagination defines parameters for paginated requests.
type Pagination struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// AttemptHistoryResponse is the paginated attempt history.
// @Description Paginated reverse-chronological attempt history
type AttemptHistoryResponse struct {
	Attempts []AttemptSummaryResponse `json:"attempts"`
	Total    int                      `json:"total"`
	Limit    int                      `json:"limit"`
	Offset   int                      `json:"offset"`
}

// UserStatsResponse aggregates a user's attempt history.
// @Description Aggregate statistics over all of a user's attempts
type UserStatsResponse struct {
	TotalAttempts          int     `json:"total_attempts"`
	AverageScore           float64 `json:"average_score"`
	BestScore              int     `json:"best_score"`
	TotalQuestionsAnswered int     `json:"total_questions_answered"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}
