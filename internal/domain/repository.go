package domain

import "context"

// QuizRepository defines persistence for quizzes.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
}

// ResultRepository defines persistence for quiz attempt results.
// Results are append-only; there is no update path.
type ResultRepository interface {
	SaveResult(ctx context.Context, result *QuizAttemptResult) error
	GetResultByID(ctx context.Context, id string) (*QuizAttemptResult, error)
	GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]AttemptSummary, int, error)
	GetUserStats(ctx context.Context, userID string) (*UserStats, error)
}

// UserRepository defines persistence for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByGoogleID(ctx context.Context, googleID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
}
