package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// scanJSON decodes a JSONB column value into dest, treating NULL and empty
// payloads as "leave dest at its zero value".
func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("jsonb scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		return nil
	}
	return json.Unmarshal(bytesToParse, dest)
}

// Question is the stored shape of one quiz question inside the quizzes
// JSONB column.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// QuestionSlice is a custom type for storing questions as a JSONB column.
type QuestionSlice []Question

// Value implements the driver.Valuer interface
func (s QuestionSlice) Value() (driver.Value, error) {
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
func (s *QuestionSlice) Scan(value interface{}) error {
	*s = QuestionSlice{}
	return scanJSON(value, s)
}

// SourceFile records the provenance of one uploaded document.
type SourceFile struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
}

// SourceFileSlice is a custom type for storing source files as a JSONB column.
type SourceFileSlice []SourceFile

// Value implements the driver.Valuer interface
func (s SourceFileSlice) Value() (driver.Value, error) {
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
func (s *SourceFileSlice) Scan(value interface{}) error {
	*s = SourceFileSlice{}
	return scanJSON(value, s)
}

// Quiz is the database model for the quizzes table.
type Quiz struct {
	ID          string          `db:"id"`
	Title       string          `db:"title"`
	Language    string          `db:"language"`
	Questions   QuestionSlice   `db:"questions"`
	CreatedBy   string          `db:"created_by"`
	SourceFiles SourceFileSlice `db:"source_files"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}
