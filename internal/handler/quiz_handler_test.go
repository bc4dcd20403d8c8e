package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/dto"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/middleware"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testQuizID = "01HV3ZK9ZX5T4Q2W8R7E6D5C4C"
const testQuestionID = "01HV3ZK9ZX5T4Q2W8R7E6D5C4A"

// MockQuizService mocks service.QuizService for handler tests.
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) CreateQuizFromFiles(ctx context.Context, userID string, files []domain.UploadedFile, req dto.UploadQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, userID, files, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuizForAttempt(ctx context.Context, userID, quizID string) (*dto.QuizResponse, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *MockQuizService) SubmitQuiz(ctx context.Context, userID, quizID string, answers map[string]*int) (*dto.QuizResultResponse, error) {
	args := m.Called(ctx, userID, quizID, answers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResultResponse), args.Error(1)
}

func (m *MockQuizService) GetResult(ctx context.Context, userID, resultID string) (*dto.QuizResultResponse, error) {
	args := m.Called(ctx, userID, resultID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResultResponse), args.Error(1)
}

func (m *MockQuizService) GetHistory(ctx context.Context, userID string, pagination dto.Pagination) (*dto.AttemptHistoryResponse, error) {
	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AttemptHistoryResponse), args.Error(1)
}

func (m *MockQuizService) GetStats(ctx context.Context, userID string) (*dto.UserStatsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserStatsResponse), args.Error(1)
}

func newTestValidator() *validation.Validator {
	return validation.NewValidator(config.GenerationConfig{
		MinQuestions:  5,
		MaxQuestions:  500,
		MaxFiles:      10,
		MaxFileSizeMB: 10,
	})
}

// setupQuizApp wires the handler behind a stub auth layer that injects a
// fixed user id.
func setupQuizApp(svc *MockQuizService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.UserIDKey, "user1")
		return c.Next()
	})

	h := NewQuizHandler(svc, newTestValidator())
	app.Post("/api/quizzes/upload", h.UploadQuiz)
	app.Get("/api/quizzes/:id", h.GetQuiz)
	app.Post("/api/quizzes/:id/submit", h.SubmitQuiz)
	app.Get("/api/results/:id", h.GetResult)
	return app
}

func buildUploadBody(t *testing.T, language, numQuestions string, fileNames []string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	for _, name := range fileNames {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		header.Set("Content-Type", "application/pdf")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 fake content"))
		require.NoError(t, err)
	}
	if language != "" {
		require.NoError(t, writer.WriteField("language", language))
	}
	if numQuestions != "" {
		require.NoError(t, writer.WriteField("numQuestions", numQuestions))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadQuiz_Success(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	svc.On("CreateQuizFromFiles", mock.Anything, "user1", mock.AnythingOfType("[]domain.UploadedFile"), mock.Anything).
		Return(&dto.QuizResponse{ID: testQuizID, Title: "Generated Quiz", QuestionCount: 10}, nil)

	body, contentType := buildUploadBody(t, "English", "10", []string{"notes.pdf"})
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var quiz dto.QuizResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quiz))
	assert.Equal(t, testQuizID, quiz.ID)

	files := svc.Calls[0].Arguments.Get(2).([]domain.UploadedFile)
	require.Len(t, files, 1)
	assert.Equal(t, "notes.pdf", files[0].OriginalName)
	assert.Equal(t, "application/pdf", files[0].MimeType)
	assert.NotEqual(t, "notes.pdf", files[0].Filename)
}

func TestUploadQuiz_RejectsOutOfRangeQuestionCount(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	body, contentType := buildUploadBody(t, "English", "4", []string{"notes.pdf"})
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "CreateQuizFromFiles", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadQuiz_RejectsMissingFiles(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	body, contentType := buildUploadBody(t, "English", "10", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadQuiz_ExtractionFailureMapsTo422(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	svc.On("CreateQuizFromFiles", mock.Anything, "user1", mock.Anything, mock.Anything).
		Return(nil, domain.NewExtractionError("No text could be extracted from the uploaded files", nil))

	body, contentType := buildUploadBody(t, "English", "10", []string{"notes.pdf"})
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetQuiz_Success(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	svc.On("GetQuizForAttempt", mock.Anything, "user1", testQuizID).
		Return(&dto.QuizResponse{ID: testQuizID, QuestionCount: 2}, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/"+testQuizID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetQuiz_InvalidIDRejected(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/not-a-ulid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "GetQuizForAttempt", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetQuiz_NotFound(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	svc.On("GetQuizForAttempt", mock.Anything, "user1", testQuizID).
		Return(nil, domain.NewQuizNotFoundError(testQuizID))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quizzes/"+testQuizID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitQuiz_Success(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	svc.On("SubmitQuiz", mock.Anything, "user1", testQuizID, mock.Anything).
		Return(&dto.QuizResultResponse{ID: "r1", Score: 75, CorrectCount: 3, TotalQuestions: 4}, nil)

	payload := `{"answers":{"` + testQuestionID + `":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/"+testQuizID+"/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result dto.QuizResultResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 75, result.Score)
}

func TestSubmitQuiz_NullAnswerAccepted(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	svc.On("SubmitQuiz", mock.Anything, "user1", testQuizID, mock.Anything).
		Return(&dto.QuizResultResponse{ID: "r1", Score: 0}, nil)

	payload := `{"answers":{"` + testQuestionID + `":null}}`
	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/"+testQuizID+"/submit", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	answers := svc.Calls[0].Arguments.Get(3).(map[string]*int)
	require.Contains(t, answers, testQuestionID)
	assert.Nil(t, answers[testQuestionID])
}

func TestSubmitQuiz_MissingBodyRejected(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/quizzes/"+testQuizID+"/submit", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	svc.AssertNotCalled(t, "SubmitQuiz", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetResult_NotFound(t *testing.T) {
	svc := new(MockQuizService)
	app := setupQuizApp(svc)

	resultID := "01HV3ZK9ZX5T4Q2W8R7E6D5C4D"
	svc.On("GetResult", mock.Anything, "user1", resultID).
		Return(nil, domain.NewResultNotFoundError(resultID))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/results/"+resultID, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
