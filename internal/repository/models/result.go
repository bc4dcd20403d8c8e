package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ResultItem is the stored per-question breakdown inside a quiz result's
// JSONB column. UserAnswer is null when the question was left unanswered.
type ResultItem struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	UserAnswer    *int     `json:"userAnswer"`
	IsCorrect     bool     `json:"isCorrect"`
	Explanation   string   `json:"explanation"`
}

// ResultItemSlice is a custom type for storing result items as a JSONB column.
type ResultItemSlice []ResultItem

// Value implements the driver.Valuer interface
func (s ResultItemSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *ResultItemSlice) Scan(value interface{}) error {
	*s = ResultItemSlice{}
	return scanJSON(value, s)
}

// QuizResult is the database model for the quiz_results table.
type QuizResult struct {
	ID             string          `db:"id"`
	UserID         string          `db:"user_id"`
	QuizID         string          `db:"quiz_id"`
	QuizTitle      string          `db:"quiz_title"`
	Score          int             `db:"score"`
	CorrectCount   int             `db:"correct_count"`
	TotalQuestions int             `db:"total_questions"`
	Results        ResultItemSlice `db:"results"`
	CreatedAt      time.Time       `db:"created_at"`
}
