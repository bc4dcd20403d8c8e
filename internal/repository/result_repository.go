package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxResultRepository implements domain.ResultRepository using sqlx.
type sqlxResultRepository struct {
	db *sqlx.DB
}

// NewSQLXResultRepository creates a new instance of sqlxResultRepository.
func NewSQLXResultRepository(db *sqlx.DB) domain.ResultRepository {
	return &sqlxResultRepository{db: db}
}

func toDomainQuizResult(modelResult *models.QuizResult) *domain.QuizAttemptResult {
	if modelResult == nil {
		return nil
	}

	items := make([]domain.ResultItem, len(modelResult.Results))
	for i, item := range modelResult.Results {
		items[i] = domain.ResultItem{
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			UserAnswer:    item.UserAnswer,
			IsCorrect:     item.IsCorrect,
			Explanation:   item.Explanation,
		}
	}

	return &domain.QuizAttemptResult{
		ID:             modelResult.ID,
		UserID:         modelResult.UserID,
		QuizID:         modelResult.QuizID,
		QuizTitle:      modelResult.QuizTitle,
		Score:          modelResult.Score,
		CorrectCount:   modelResult.CorrectCount,
		TotalQuestions: modelResult.TotalQuestions,
		Results:        items,
		CreatedAt:      modelResult.CreatedAt,
	}
}

func fromDomainQuizResult(domainResult *domain.QuizAttemptResult) *models.QuizResult {
	if domainResult == nil {
		return nil
	}

	items := make(models.ResultItemSlice, len(domainResult.Results))
	for i, item := range domainResult.Results {
		items[i] = models.ResultItem{
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			UserAnswer:    item.UserAnswer,
			IsCorrect:     item.IsCorrect,
			Explanation:   item.Explanation,
		}
	}

	return &models.QuizResult{
		ID:             domainResult.ID,
		UserID:         domainResult.UserID,
		QuizID:         domainResult.QuizID,
		QuizTitle:      domainResult.QuizTitle,
		Score:          domainResult.Score,
		CorrectCount:   domainResult.CorrectCount,
		TotalQuestions: domainResult.TotalQuestions,
		Results:        items,
		CreatedAt:      domainResult.CreatedAt,
	}
}

// SaveResult inserts a new quiz attempt result. Results are append-only.
func (r *sqlxResultRepository) SaveResult(ctx context.Context, domainResult *domain.QuizAttemptResult) error {
	modelResult := fromDomainQuizResult(domainResult)

	if modelResult.CreatedAt.IsZero() {
		modelResult.CreatedAt = time.Now()
	}

	query := `INSERT INTO quiz_results (id, user_id, quiz_id, quiz_title, score, correct_count, total_questions, results, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		modelResult.ID,
		modelResult.UserID,
		modelResult.QuizID,
		modelResult.QuizTitle,
		modelResult.Score,
		modelResult.CorrectCount,
		modelResult.TotalQuestions,
		modelResult.Results,
		modelResult.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz result: %w", err)
	}
	return nil
}

// GetResultByID retrieves a single quiz attempt result by its ID.
func (r *sqlxResultRepository) GetResultByID(ctx context.Context, id string) (*domain.QuizAttemptResult, error) {
	var modelResult models.QuizResult

	query := `SELECT id, user_id, quiz_id, quiz_title, score, correct_count, total_questions, results, created_at
	          FROM quiz_results WHERE id = $1`

	err := r.db.GetContext(ctx, &modelResult, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewResultNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get quiz result by id %s: %w", id, err)
	}

	return toDomainQuizResult(&modelResult), nil
}

// resultSummaryRow is the projection used by the history listing. The
// per-question breakdown stays in the database.
type resultSummaryRow struct {
	ID             string    `db:"id"`
	QuizID         string    `db:"quiz_id"`
	QuizTitle      string    `db:"quiz_title"`
	Score          int       `db:"score"`
	CorrectCount   int       `db:"correct_count"`
	TotalQuestions int       `db:"total_questions"`
	CreatedAt      time.Time `db:"created_at"`
}

// GetResultsByUserID retrieves a reverse-chronological page of a user's
// attempt summaries together with the total attempt count.
func (r *sqlxResultRepository) GetResultsByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.AttemptSummary, int, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT id, quiz_id, quiz_title, score, correct_count, total_questions, created_at
	          FROM quiz_results
	          WHERE user_id = $1
	          ORDER BY created_at DESC
	          LIMIT $2 OFFSET $3`

	var rows []resultSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to list quiz results for user %s: %w", userID, err)
	}

	summaries := make([]domain.AttemptSummary, len(rows))
	for i, row := range rows {
		summaries[i] = domain.AttemptSummary{
			ID:             row.ID,
			QuizID:         row.QuizID,
			QuizTitle:      row.QuizTitle,
			Score:          row.Score,
			CorrectCount:   row.CorrectCount,
			TotalQuestions: row.TotalQuestions,
			CreatedAt:      row.CreatedAt,
		}
	}

	countQuery := `SELECT COUNT(*) FROM quiz_results WHERE user_id = $1`

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count quiz results for user %s: %w", userID, err)
	}

	return summaries, total, nil
}

// GetUserStats aggregates a user's attempt history in a single query.
// A user with no attempts gets all-zero stats, not an error.
func (r *sqlxResultRepository) GetUserStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	query := `SELECT
	            COUNT(*) AS total_attempts,
	            COALESCE(AVG(score), 0) AS average_score,
	            COALESCE(MAX(score), 0) AS best_score,
	            COALESCE(SUM(total_questions), 0) AS total_questions_answered
	          FROM quiz_results
	          WHERE user_id = $1`

	var row struct {
		TotalAttempts          int     `db:"total_attempts"`
		AverageScore           float64 `db:"average_score"`
		BestScore              int     `db:"best_score"`
		TotalQuestionsAnswered int     `db:"total_questions_answered"`
	}
	if err := r.db.GetContext(ctx, &row, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get stats for user %s: %w", userID, err)
	}

	return &domain.UserStats{
		TotalAttempts:          row.TotalAttempts,
		AverageScore:           row.AverageScore,
		BestScore:              row.BestScore,
		TotalQuestionsAnswered: row.TotalQuestionsAnswered,
	}, nil
}
