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

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(modelQuiz *models.Quiz) *domain.Quiz {
	if modelQuiz == nil {
		return nil
	}

	questions := make([]domain.Question, len(modelQuiz.Questions))
	for i, q := range modelQuiz.Questions {
		questions[i] = domain.Question{
			ID:            q.ID,
			Text:          q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}

	sourceFiles := make([]domain.SourceFile, len(modelQuiz.SourceFiles))
	for i, f := range modelQuiz.SourceFiles {
		sourceFiles[i] = domain.SourceFile{
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
		}
	}

	return &domain.Quiz{
		ID:          modelQuiz.ID,
		Title:       modelQuiz.Title,
		Language:    modelQuiz.Language,
		Questions:   questions,
		CreatedBy:   modelQuiz.CreatedBy,
		SourceFiles: sourceFiles,
		CreatedAt:   modelQuiz.CreatedAt,
		UpdatedAt:   modelQuiz.UpdatedAt,
	}
}

func fromDomainQuiz(domainQuiz *domain.Quiz) *models.Quiz {
	if domainQuiz == nil {
		return nil
	}

	questions := make(models.QuestionSlice, len(domainQuiz.Questions))
	for i, q := range domainQuiz.Questions {
		questions[i] = models.Question{
			ID:            q.ID,
			Question:      q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
	}

	sourceFiles := make(models.SourceFileSlice, len(domainQuiz.SourceFiles))
	for i, f := range domainQuiz.SourceFiles {
		sourceFiles[i] = models.SourceFile{
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
		}
	}

	return &models.Quiz{
		ID:          domainQuiz.ID,
		Title:       domainQuiz.Title,
		Language:    domainQuiz.Language,
		Questions:   questions,
		CreatedBy:   domainQuiz.CreatedBy,
		SourceFiles: sourceFiles,
		CreatedAt:   domainQuiz.CreatedAt,
		UpdatedAt:   domainQuiz.UpdatedAt,
	}
}

// SaveQuiz inserts a new quiz into the database.
func (r *sqlxQuizRepository) SaveQuiz(ctx context.Context, domainQuiz *domain.Quiz) error {
	modelQuiz := fromDomainQuiz(domainQuiz)

	now := time.Now()
	if modelQuiz.CreatedAt.IsZero() {
		modelQuiz.CreatedAt = now
	}
	modelQuiz.UpdatedAt = now

	query := `INSERT INTO quizzes (id, title, language, questions, created_by, source_files, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		modelQuiz.ID,
		modelQuiz.Title,
		modelQuiz.Language,
		modelQuiz.Questions,
		modelQuiz.CreatedBy,
		modelQuiz.SourceFiles,
		modelQuiz.CreatedAt,
		modelQuiz.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}
	return nil
}

// GetQuizByID retrieves a quiz by its ID.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var modelQuiz models.Quiz

	query := `SELECT id, title, language, questions, created_by, source_files, created_at, updated_at
	          FROM quizzes WHERE id = $1`

	err := r.db.GetContext(ctx, &modelQuiz, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get quiz by id %s: %w", id, err)
	}

	return toDomainQuiz(&modelQuiz), nil
}
