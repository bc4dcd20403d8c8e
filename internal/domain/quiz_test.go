package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionValidate(t *testing.T) {
	tests := []struct {
		name     string
		question Question
		wantErr  bool
	}{
		{
			name: "valid question",
			question: Question{
				Text:          "What is the capital of France?",
				Options:       []string{"Paris", "Lyon", "Nice", "Lille"},
				CorrectAnswer: 0,
				Explanation:   "Paris is the capital of France.",
			},
			wantErr: false,
		},
		{
			name: "empty text",
			question: Question{
				Options:       []string{"A", "B"},
				CorrectAnswer: 0,
			},
			wantErr: true,
		},
		{
			name: "too few options",
			question: Question{
				Text:          "Q",
				Options:       []string{"only one"},
				CorrectAnswer: 0,
			},
			wantErr: true,
		},
		{
			name: "too many options",
			question: Question{
				Text:          "Q",
				Options:       []string{"a", "b", "c", "d", "e", "f", "g"},
				CorrectAnswer: 0,
			},
			wantErr: true,
		},
		{
			name: "correct answer out of range",
			question: Question{
				Text:          "Q",
				Options:       []string{"a", "b"},
				CorrectAnswer: 2,
			},
			wantErr: true,
		},
		{
			name: "negative correct answer",
			question: Question{
				Text:          "Q",
				Options:       []string{"a", "b"},
				CorrectAnswer: -1,
			},
			wantErr: true,
		},
		{
			name: "empty explanation is fine",
			question: Question{
				Text:          "Q",
				Options:       []string{"a", "b"},
				CorrectAnswer: 1,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuizValidate(t *testing.T) {
	valid := Question{
		Text:          "Q1",
		Options:       []string{"a", "b", "c"},
		CorrectAnswer: 2,
	}

	quiz := NewQuiz("", "English", []Question{valid}, "user-1", nil)
	assert.Equal(t, "Generated Quiz", quiz.Title)
	assert.NoError(t, quiz.Validate())

	quiz.Language = ""
	assert.Error(t, quiz.Validate())

	quiz.Language = "English"
	quiz.Questions = nil
	assert.Error(t, quiz.Validate())

	quiz.Questions = []Question{{Text: "bad", Options: []string{"x"}, CorrectAnswer: 0}}
	assert.Error(t, quiz.Validate())
}

func TestQuizQuestionByID(t *testing.T) {
	quiz := &Quiz{
		Questions: []Question{
			{ID: "q1", Text: "first"},
			{ID: "q2", Text: "second"},
		},
	}

	q, ok := quiz.QuestionByID("q2")
	assert.True(t, ok)
	assert.Equal(t, "second", q.Text)

	_, ok = quiz.QuestionByID("missing")
	assert.False(t, ok)
}
