package validation

import (
	"strings"
	"testing"

	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/config"
	"github.com/Priyanka33591/AI-Powered-Quiz-Platform/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestValidator() *Validator {
	return NewValidator(config.GenerationConfig{
		MinQuestions:  5,
		MaxQuestions:  500,
		MaxFiles:      10,
		MaxFileSizeMB: 10,
	})
}

func pdfFile() domain.UploadedFile {
	return domain.UploadedFile{
		Filename:     "abc.pdf",
		OriginalName: "notes.pdf",
		MimeType:     "application/pdf",
		Data:         []byte("%PDF-1.4"),
	}
}

func TestValidateUploadRequestQuestionCountBounds(t *testing.T) {
	v := newTestValidator()
	files := []domain.UploadedFile{pdfFile()}

	tests := []struct {
		name         string
		numQuestions int
		wantValid    bool
	}{
		{"at lower bound", 5, true},
		{"at upper bound", 500, true},
		{"below lower bound", 4, false},
		{"above upper bound", 501, false},
		{"zero", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateUploadRequest(files, "English", tt.numQuestions)
			if tt.wantValid {
				assert.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
				assert.Equal(t, "numQuestions", errs[0].Field)
			}
		})
	}
}

func TestValidateUploadRequestFiles(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateUploadRequest(nil, "English", 10)
	require.NotEmpty(t, errs)
	assert.Equal(t, "files", errs[0].Field)

	tooMany := make([]domain.UploadedFile, 11)
	for i := range tooMany {
		tooMany[i] = pdfFile()
	}
	errs = v.ValidateUploadRequest(tooMany, "English", 10)
	require.NotEmpty(t, errs)
	assert.Equal(t, "files", errs[0].Field)
}

func TestValidateUploadRequestRejectsUnsupportedMime(t *testing.T) {
	v := newTestValidator()
	files := []domain.UploadedFile{{
		OriginalName: "notes.txt",
		MimeType:     "text/plain",
		Data:         []byte("hello"),
	}}

	errs := v.ValidateUploadRequest(files, "English", 10)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Field, "notes.txt")
}

func TestValidateUploadRequestRejectsOversizedFile(t *testing.T) {
	v := newTestValidator()
	big := pdfFile()
	big.Data = []byte(strings.Repeat("x", 10*1024*1024+1))

	errs := v.ValidateUploadRequest([]domain.UploadedFile{big}, "English", 10)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Field, "notes.pdf")
}

func TestValidateUploadRequestRequiresLanguage(t *testing.T) {
	v := newTestValidator()

	errs := v.ValidateUploadRequest([]domain.UploadedFile{pdfFile()}, "   ", 10)
	require.NotEmpty(t, errs)
	assert.Equal(t, "language", errs[0].Field)
}

func TestValidateSubmission(t *testing.T) {
	v := newTestValidator()
	quizID := "01HV3ZK9ZX5T4Q2W8R7E6D5C4B"
	questionID := "01HV3ZK9ZX5T4Q2W8R7E6D5C4A"

	zero := 0
	five := 5
	negative := -1

	errs := v.ValidateSubmission(quizID, map[string]*int{questionID: &zero})
	assert.Empty(t, errs)

	errs = v.ValidateSubmission(quizID, map[string]*int{questionID: nil})
	assert.Empty(t, errs, "nil selection means unanswered, not invalid")

	errs = v.ValidateSubmission(quizID, map[string]*int{questionID: &five})
	assert.Empty(t, errs)

	errs = v.ValidateSubmission(quizID, map[string]*int{questionID: &negative})
	assert.NotEmpty(t, errs)

	errs = v.ValidateSubmission("not-a-ulid", map[string]*int{questionID: &zero})
	assert.NotEmpty(t, errs)

	errs = v.ValidateSubmission(quizID, nil)
	require.NotEmpty(t, errs)
	assert.Equal(t, "answers", errs[0].Field)
}

func TestValidateID(t *testing.T) {
	v := newTestValidator()

	assert.Empty(t, v.ValidateID("quiz_id", "01HV3ZK9ZX5T4Q2W8R7E6D5C4B"))
	assert.NotEmpty(t, v.ValidateID("quiz_id", ""))
	assert.NotEmpty(t, v.ValidateID("quiz_id", "short"))
}
