package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/cache"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/dto"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/logger"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// extractionConcurrency bounds the number of documents processed in parallel.
// OCR is CPU and memory heavy, so this stays small.
const extractionConcurrency = 4

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	CreateQuizFromFiles(ctx context.Context, userID string, files []domain.UploadedFile, req dto.UploadQuizRequest) (*dto.QuizResponse, error)
	GetQuizForAttempt(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error)
	SubmitQuiz(ctx context.Context, userID, quizID string, answers map[string]*int) (*dto.QuizResultResponse, error)
	GetResult(ctx context.Context, userID, resultID string) (*dto.QuizResultResponse, error)
	GetHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptHistoryResponse, error)
	GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error)
}

// quizService implements QuizService
type quizService struct {
	quizRepo   domain.QuizRepository
	resultRepo domain.ResultRepository
	extractor  domain.TextExtractor
	generator  domain.QuestionGenerator
	cache      domain.Cache
	cfg        *config.Config
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	quizRepo domain.QuizRepository,
	resultRepo domain.ResultRepository,
	extractor domain.TextExtractor,
	generator domain.QuestionGenerator,
	cacheClient domain.Cache,
	cfg *config.Config,
) QuizService {
	return &quizService{
		quizRepo:   quizRepo,
		resultRepo: resultRepo,
		extractor:  extractor,
		generator:  generator,
		cache:      cacheClient,
		cfg:        cfg,
	}
}

// CreateQuizFromFiles runs the full generation workflow: extract text from
// every uploaded document, combine it, generate questions and persist the
// resulting quiz. Extraction failures of individual files are tolerated as
// long as at least one file yields text.
func (s *quizService) CreateQuizFromFiles(ctx context.Context, userID string, files []domain.UploadedFile, req dto.UploadQuizRequest) (*dto.QuizResponse, error) {
	appLogger := logger.Get()

	combinedText, err := s.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}

	questions, err := s.generator.GenerateQuestions(ctx, combinedText, req.Language, req.NumQuestions)
	if err != nil {
		return nil, err
	}

	sourceFiles := make([]domain.SourceFile, len(files))
	for i, f := range files {
		sourceFiles[i] = domain.SourceFile{
			Filename:     f.Filename,
			OriginalName: f.OriginalName,
			MimeType:     f.MimeType,
		}
	}

	quiz := domain.NewQuiz(req.Title, req.Language, questions, userID, sourceFiles)
	quiz.ID = util.NewULID()
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	appLogger.Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("userID", userID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("sourceFiles", len(files)))

	return toQuizResponse(quiz), nil
}

// extractAll fans extraction out over the uploaded files, preserving upload
// order in the combined text. A file that fails to extract is skipped; the
// whole operation fails only when no file yields any text.
func (s *quizService) extractAll(ctx context.Context, files []domain.UploadedFile) (string, error) {
	appLogger := logger.Get()

	texts := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractionConcurrency)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			text, err := s.extractor.ExtractText(gctx, f.Data, f.MimeType)
			if err != nil {
				// A cancelled request is not an unreadable file; let the
				// caller see the cancellation instead of a 422.
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				appLogger.Warn("Text extraction failed for file",
					zap.String("file", f.OriginalName),
					zap.String("mimeType", f.MimeType),
					zap.Error(err))
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var parts []string
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return "", domain.NewExtractionError("No text could be extracted from the uploaded files", nil)
	}

	return strings.Join(parts, "\n\n"), nil
}

// GetQuizForAttempt returns a quiz stripped of its answer key, for the user
// to take. Quizzes are private: asking for someone else's quiz looks exactly
// like asking for a quiz that does not exist.
func (s *quizService) GetQuizForAttempt(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error) {
	appLogger := logger.Get()
	cacheKey := cache.GenerateCacheKey("quiz", "view", quizID, userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var response dto.QuizResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return &response, nil
			}
			appLogger.Warn("Failed to unmarshal cached quiz view", zap.String("key", cacheKey))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			appLogger.Warn("Cache lookup failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	quiz, err := s.getOwnedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	response := toQuizResponse(quiz)

	if s.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cfg.Cache.QuizViewTTL); err != nil {
				appLogger.Warn("Failed to cache quiz view", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return response, nil
}

// SubmitQuiz grades a submission against the quiz's answer key and persists
// the immutable result record.
func (s *quizService) SubmitQuiz(ctx context.Context, userID, quizID string, answers map[string]*int) (*dto.QuizResultResponse, error) {
	appLogger := logger.Get()

	quiz, err := s.getOwnedQuiz(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	// Reject answers addressed to questions this quiz does not contain.
	for questionID := range answers {
		if _, ok := quiz.QuestionByID(questionID); !ok {
			return nil, domain.NewInvalidInputError("Unknown question id: " + questionID)
		}
	}

	result := domain.ScoreSubmission(quiz, answers)
	result.ID = util.NewULID()
	result.UserID = userID

	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz result", err)
	}

	if s.cache != nil {
		statsKey := cache.GenerateCacheKey("user", "stats", userID)
		if err := s.cache.Delete(ctx, statsKey); err != nil {
			appLogger.Warn("Failed to invalidate stats cache", zap.String("key", statsKey), zap.Error(err))
		}
	}

	appLogger.Info("Quiz submitted",
		zap.String("quizID", quizID),
		zap.String("userID", userID),
		zap.String("resultID", result.ID),
		zap.Int("score", result.Score))

	return toQuizResultResponse(result), nil
}

// GetResult returns one graded attempt. Results are private to the user who
// made them; a foreign result id reads as not found.
func (s *quizService) GetResult(ctx context.Context, userID, resultID string) (*dto.QuizResultResponse, error) {
	result, err := s.resultRepo.GetResultByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result.UserID != userID {
		return nil, domain.NewResultNotFoundError(resultID)
	}
	return toQuizResultResponse(result), nil
}

// GetHistory returns a reverse-chronological page of the user's attempts.
func (s *quizService) GetHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptHistoryResponse, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := pagination.Offset
	if offset < 0 {
		offset = 0
	}

	summaries, total, err := s.resultRepo.GetResultsByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load attempt history", err)
	}

	attempts := make([]dto.AttemptSummaryResponse, len(summaries))
	for i, s := range summaries {
		attempts[i] = dto.AttemptSummaryResponse{
			ID:             s.ID,
			QuizID:         s.QuizID,
			QuizTitle:      s.QuizTitle,
			Score:          s.Score,
			CorrectCount:   s.CorrectCount,
			TotalQuestions: s.TotalQuestions,
			CreatedAt:      s.CreatedAt,
		}
	}

	return &dto.AttemptHistoryResponse{
		Attempts: attempts,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// GetStats returns the user's aggregate statistics, cached briefly since
// they only change on submission.
func (s *quizService) GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	appLogger := logger.Get()
	cacheKey := cache.GenerateCacheKey("user", "stats", userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var response dto.UserStatsResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				return &response, nil
			}
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			appLogger.Warn("Cache lookup failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	stats, err := s.resultRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user statistics", err)
	}

	response := &dto.UserStatsResponse{
		TotalAttempts:          stats.TotalAttempts,
		AverageScore:           stats.AverageScore,
		BestScore:              stats.BestScore,
		TotalQuestionsAnswered: stats.TotalQuestionsAnswered,
	}

	if s.cache != nil {
		if data, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), s.cfg.Cache.StatsTTL); err != nil {
				appLogger.Warn("Failed to cache user stats", zap.String("key", cacheKey), zap.Error(err))
			}
		}
	}

	return response, nil
}

// getOwnedQuiz loads a quiz and enforces that it belongs to the user.
// Ownership failures are reported as not found so quiz ids stay unguessable.
func (s *quizService) getOwnedQuiz(ctx context.Context, userID, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz.CreatedBy != userID {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

func toQuizResponse(quiz *domain.Quiz) *dto.QuizResponse {
	questions := make([]dto.QuestionView, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = dto.QuestionView{
			ID:       q.ID,
			Question: q.Text,
			Options:  append([]string(nil), q.Options...),
		}
	}
	return &dto.QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Language:      quiz.Language,
		QuestionCount: len(quiz.Questions),
		Questions:     questions,
		CreatedAt:     quiz.CreatedAt,
	}
}

func toQuizResultResponse(result *domain.QuizAttemptResult) *dto.QuizResultResponse {
	items := make([]dto.ResultItemResponse, len(result.Results))
	for i, item := range result.Results {
		items[i] = dto.ResultItemResponse{
			Question:      item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			UserAnswer:    item.UserAnswer,
			IsCorrect:     item.IsCorrect,
			Explanation:   item.Explanation,
		}
	}
	return &dto.QuizResultResponse{
		ID:             result.ID,
		QuizID:         result.QuizID,
		QuizTitle:      result.QuizTitle,
		Score:          result.Score,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Results:        items,
		CreatedAt:      result.CreatedAt,
	}
}
