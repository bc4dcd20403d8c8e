package quizgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const promptTemplate = `
Generate %d MCQ questions in %s.
Return ONLY JSON array:

[
 { "question":"...", "options":["A","B","C","D"], "correctAnswer":0, "explanation":"..." }
]

Content:
%s
`

// buildPrompt assembles the generation prompt. Extracted text beyond
// maxChars is cut off before interpolation; this is a deliberate budget on
// prompt size, unrelated to the truncation recovery in the parser. The cut
// backs up to a rune boundary so the prompt stays valid UTF-8.
func buildPrompt(text, language string, numQuestions, maxChars int) string {
	if maxChars > 0 && len(text) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return strings.TrimSpace(fmt.Sprintf(promptTemplate, numQuestions, language, text)) + "\n"
}
