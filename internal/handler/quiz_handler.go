package handler

import (
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/dto"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/logger"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/middleware"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/service"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/util"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
	}
}

// UploadQuiz godoc
// @Summary Generate a quiz from uploaded documents
// @Description Extracts text from the uploaded PDF or image files and generates a multiple-choice quiz from it.
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "PDF or image files (repeatable)"
// @Param language formData string true "Language for the generated questions"
// @Param numQuestions formData int true "Number of questions to generate"
// @Param title formData string false "Quiz title"
// @Security ApiKeyAuth
// @Success 201 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse "No text could be extracted"
// @Failure 502 {object} middleware.ErrorResponse "Generated output could not be parsed"
// @Failure 503 {object} middleware.ErrorResponse "Completion backend unavailable"
// @Router /quizzes/upload [post]
func (h *QuizHandler) UploadQuiz(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	form, err := c.MultipartForm()
	if err != nil {
		return domain.NewInvalidInputError("Request must be multipart/form-data")
	}

	req := dto.UploadQuizRequest{
		Language: c.FormValue("language"),
		Title:    c.FormValue("title"),
	}
	if raw := c.FormValue("numQuestions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("numQuestions", raw)}
		}
		req.NumQuestions = n
	}

	files, err := readUploadedFiles(form.File["files"])
	if err != nil {
		return err
	}

	if errs := h.validator.ValidateUploadRequest(files, req.Language, req.NumQuestions); len(errs) > 0 {
		return errs
	}

	quiz, err := h.service.CreateQuizFromFiles(c.Context(), userID, files, req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(quiz)
}

// readUploadedFiles loads every multipart file into memory, assigning each a
// fresh stored filename while keeping the client's original name for display.
func readUploadedFiles(headers []*multipart.FileHeader) ([]domain.UploadedFile, error) {
	files := make([]domain.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, domain.NewInvalidInputError("Failed to open uploaded file: " + fh.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, domain.NewInvalidInputError("Failed to read uploaded file: " + fh.Filename)
		}

		files = append(files, domain.UploadedFile{
			Filename:     util.NewULID() + filepath.Ext(fh.Filename),
			OriginalName: fh.Filename,
			MimeType:     fh.Header.Get("Content-Type"),
			Data:         data,
		})
	}
	return files, nil
}

// GetQuiz godoc
// @Summary Get a quiz for taking
// @Description Returns the quiz's questions without the answer key.
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Security ApiKeyAuth
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	quizID := c.Params("id")

	if errs := h.validator.ValidateID("quiz_id", quizID); len(errs) > 0 {
		return errs
	}

	quiz, err := h.service.GetQuizForAttempt(c.Context(), userID, quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitQuiz godoc
// @Summary Submit quiz answers
// @Description Grades the submitted answers and stores the immutable result.
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param body body dto.SubmitQuizRequest true "Answers keyed by question ID"
// @Security ApiKeyAuth
// @Success 201 {object} dto.QuizResultResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quizzes/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	quizID := c.Params("id")

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse submission body", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateSubmission(quizID, req.Answers); len(errs) > 0 {
		return errs
	}

	result, err := h.service.SubmitQuiz(c.Context(), userID, quizID, req.Answers)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// GetResult godoc
// @Summary Get a graded attempt
// @Tags results
// @Produce json
// @Param id path string true "Result ID"
// @Security ApiKeyAuth
// @Success 200 {object} dto.QuizResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /results/{id} [get]
func (h *QuizHandler) GetResult(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	resultID := c.Params("id")

	if errs := h.validator.ValidateID("result_id", resultID); len(errs) > 0 {
		return errs
	}

	result, err := h.service.GetResult(c.Context(), userID, resultID)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
