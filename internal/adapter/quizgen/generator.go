package quizgen

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Generator implements domain.QuestionGenerator against an OpenAI-compatible
// chat-completions endpoint.
type Generator struct {
	llm            llms.Model
	maxPromptChars int
	timeout        time.Duration
}

// NewGenerator builds the completion-backend client from configuration.
// The bearer credential and model identifier are fixed at construction.
func NewGenerator(llmCfg config.LLMConfig, genCfg config.GenerationConfig) (*Generator, error) {
	httpClient := &http.Client{Timeout: llmCfg.Timeout}
	llm, err := openai.New(
		openai.WithToken(llmCfg.APIKey),
		openai.WithModel(llmCfg.Model),
		openai.WithBaseURL(llmCfg.BaseURL),
		openai.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, err
	}
	return &Generator{
		llm:            llm,
		maxPromptChars: genCfg.MaxPromptChars,
		timeout:        llmCfg.Timeout,
	}, nil
}

// NewGeneratorWithModel wires an existing llms.Model, used by tests.
func NewGeneratorWithModel(llm llms.Model, maxPromptChars int, timeout time.Duration) *Generator {
	return &Generator{llm: llm, maxPromptChars: maxPromptChars, timeout: timeout}
}

// GenerateQuestions prompts the completion backend with the extracted text
// and parses the response into validated questions. No retries: a backend
// failure or an unrecoverable payload is fatal for the request.
func (g *Generator) GenerateQuestions(ctx context.Context, text, language string, numQuestions int) ([]domain.Question, error) {
	prompt := buildPrompt(text, language, numQuestions, g.maxPromptChars)

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	output, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		logger.Get().Error("Completion backend call failed",
			zap.Error(err),
			zap.Int("num_questions", numQuestions))
		return nil, domain.NewLLMServiceError(err)
	}
	if strings.TrimSpace(output) == "" {
		return nil, domain.NewError(domain.CodeLLMServiceError, "Completion backend returned empty response", nil)
	}

	questions, err := ParseGeneratedQuestions(output)
	if err != nil {
		logger.Get().Error("Failed to parse completion output",
			zap.Error(err),
			zap.Int("output_length", len(output)))
		return nil, err
	}

	logger.Get().Info("Generated questions from completion backend",
		zap.Int("requested", numQuestions),
		zap.Int("parsed", len(questions)))
	return questions, nil
}

var _ domain.QuestionGenerator = (*Generator)(nil)
