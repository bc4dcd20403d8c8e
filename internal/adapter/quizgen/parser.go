package quizgen

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/logger"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/util"

	"go.uber.org/zap"
)

// generatedQuestion mirrors the element shape the completion backend is
// asked to produce.
type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// elementBoundary matches the textual seam between two consecutive array
// elements: closing brace, comma, opening brace, with optional whitespace.
var elementBoundary = regexp.MustCompile(`\}\s*,\s*\{`)

// ParseGeneratedQuestions salvages a question array from the raw completion
// output. The model is told to return a bare JSON array, but the payload may
// arrive wrapped in Markdown code fences, or truncated mid-array when
// generation hit its token budget. Three tiers are tried in order, first
// success wins:
//
//  1. strict parse of the fence-stripped, trimmed text;
//  2. truncation at the rightmost element boundary ("}, {") with a closing
//     bracket appended;
//  3. a string-literal-aware brace-depth scan that cuts after the last fully
//     closed top-level object, again appending a closing bracket.
//
// Whatever tier succeeds, every element must still decode to the question
// shape and pass Question validation. Elements that fail either step are
// dropped; if none survive, the whole parse fails. A non-array payload is
// never acceptable.
func ParseGeneratedQuestions(raw string) ([]domain.Question, error) {
	cleaned := stripCodeFences(raw)

	elements, strictErr := parseElementArray(cleaned)
	if strictErr != nil {
		elements = recoverTruncatedArray(cleaned, strictErr)
		if elements == nil {
			return nil, domain.NewGenerationParseError(strictErr)
		}
	}

	questions := make([]domain.Question, 0, len(elements))
	for _, element := range elements {
		var item generatedQuestion
		if err := json.Unmarshal(element, &item); err != nil {
			logger.Get().Warn("Dropping generated element with unexpected shape",
				zap.Error(err))
			continue
		}
		q := domain.Question{
			ID:            util.NewULID(),
			Text:          item.Question,
			Options:       item.Options,
			CorrectAnswer: item.CorrectAnswer,
			Explanation:   item.Explanation,
		}
		if err := q.Validate(); err != nil {
			logger.Get().Warn("Dropping invalid generated question",
				zap.Error(err),
				zap.String("question", item.Question))
			continue
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, domain.NewGenerationParseError(strictErr)
	}
	return questions, nil
}

// stripCodeFences removes Markdown json fence markers and surrounding
// whitespace before any parse attempt.
func stripCodeFences(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// parseElementArray parses text as a single JSON array and returns its
// elements undecoded, so that one malformed element cannot abort the batch.
// Any other top-level value is an error.
func parseElementArray(text string) ([]json.RawMessage, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text), &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// recoverTruncatedArray runs the two recovery tiers against text that failed
// the strict parse. It returns nil when neither tier yields an array.
func recoverTruncatedArray(text string, strictErr error) []json.RawMessage {
	if strings.HasPrefix(text, "[") {
		if healed, ok := healAtElementBoundary(text); ok {
			if elements, err := parseElementArray(healed); err == nil {
				logger.Get().Info("Recovered truncated generation output at element boundary",
					zap.Int("elements", len(elements)),
					zap.NamedError("strict_parse_error", strictErr))
				return elements
			}
		}
	}

	if healed, ok := healByDepthScan(text); ok {
		if elements, err := parseElementArray(healed); err == nil {
			logger.Get().Info("Recovered truncated generation output by depth scan",
				zap.Int("elements", len(elements)),
				zap.NamedError("strict_parse_error", strictErr))
			return elements
		}
	}

	return nil
}

// healAtElementBoundary cuts the text immediately after the closing brace of
// the rightmost "}, {" seam and closes the array. This drops a trailing
// element that was cut off mid-object, provided at least one earlier
// boundary exists.
func healAtElementBoundary(text string) (string, bool) {
	matches := elementBoundary.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return "", false
	}
	last := matches[len(matches)-1]
	return text[:last[0]+1] + "]", true
}

// healByDepthScan walks the text once, tracking brace nesting depth with a
// string-literal state machine so braces inside quoted values are ignored.
// It cuts after the last position where depth returned to zero, i.e. the end
// of the last fully closed top-level object.
func healByDepthScan(text string) (string, bool) {
	depth := 0
	inString := false
	escaped := false
	lastComplete := -1

	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				lastComplete = i
			}
		}
	}

	if lastComplete < 0 {
		return "", false
	}
	return text[:lastComplete+1] + "]", true
}
