package source

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/quizme/internal/question"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuestions = `[
	{"type": "shortanswer", "question": "Capital of France?", "correct_answer": "Paris"},
	{"type": "shortanswer", "question": "Chemical symbol for gold?", "correct_answer": "Au", "case_sensitive": true},
	{"type": "truefalse", "question": "The Earth is flat.", "correct_answer": false, "explanation": "It is an oblate spheroid."},
	{"type": "truefalse", "question": "Water is wet.", "correct_answer": true}
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AllValid(t *testing.T) {
	bank, err := Load(writeFile(t, sampleQuestions))
	require.NoError(t, err)
	assert.Empty(t, bank.Diagnostics)
	require.Len(t, bank.Questions, 4)

	sa, ok := bank.Questions[0].(*question.ShortAnswer)
	require.True(t, ok)
	assert.Equal(t, "Paris", sa.Answer())
	assert.False(t, sa.IsCaseSensitive())

	gold, ok := bank.Questions[1].(*question.ShortAnswer)
	require.True(t, ok)
	assert.True(t, gold.IsCaseSensitive())

	tf, ok := bank.Questions[2].(*question.TrueFalse)
	require.True(t, ok)
	assert.False(t, tf.Answer())
	assert.Equal(t, "It is an oblate spheroid.", tf.Explanation())

	assert.Equal(t, question.KindTrueFalse, bank.Questions[3].Kind())
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"type": `},
		{"object not array", `{"type": "shortanswer"}`},
		{"string", `"questions"`},
		{"empty", ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedSource))
		})
	}
}

func TestDecode_EmptyArray(t *testing.T) {
	records, err := Decode(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBuild_SkipsBadRecords(t *testing.T) {
	input := `[
		{"type": "shortanswer", "question": "Q1", "correct_answer": "A1"},
		{"type": "essay", "question": "Q2", "correct_answer": "A2"},
		{"type": "shortanswer", "correct_answer": "A3"},
		{"type": "truefalse", "question": "Q4"},
		{"type": "truefalse", "question": "Q5", "correct_answer": "yes"},
		{"type": "shortanswer", "question": "Q6", "correct_answer": "A6", "case_sensitive": "no"},
		{"question": "Q7", "correct_answer": "A7"},
		42,
		{"type": "truefalse", "question": "Q9", "correct_answer": true}
	]`
	records, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	qs, diags := Build(records)

	require.Len(t, qs, 2)
	assert.Equal(t, "Q1", qs[0].Prompt())
	assert.Equal(t, "Q9", qs[1].Prompt())

	require.Len(t, diags, 7)
	want := []struct {
		index  int
		target error
	}{
		{1, ErrUnsupportedType},
		{2, ErrMissingField},
		{3, ErrMissingField},
		{4, ErrInvalidRecord},
		{5, ErrInvalidRecord},
		{6, ErrMissingField},
		{7, ErrInvalidRecord},
	}
	for i, w := range want {
		assert.Equal(t, w.index, diags[i].Index)
		assert.True(t, errors.Is(diags[i].Err, w.target), "diag %d: %v", i, diags[i].Err)
	}

	var mf *MissingFieldError
	require.True(t, errors.As(diags[1].Err, &mf))
	assert.Equal(t, "question", mf.Field)
	require.True(t, errors.As(diags[2].Err, &mf))
	assert.Equal(t, "correct_answer", mf.Field)

	assert.True(t, errors.Is(diags[3].Err, question.ErrConstruction))
	assert.Equal(t, `skipping question 2: unsupported question type: essay`, diags[0].String())
}

func TestBuild_EmptyPromptRejected(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"type": "shortanswer", "question": "", "correct_answer": "A"}]`))
	require.NoError(t, err)

	qs, diags := Build(records)
	assert.Empty(t, qs)
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0].Err, ErrInvalidRecord))
}

func TestBuild_NumberAnswerRejectedForTrueFalse(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"type": "truefalse", "question": "Q", "correct_answer": 1}]`))
	require.NoError(t, err)

	_, diags := Build(records)
	require.Len(t, diags, 1)

	var ce *question.ConstructionError
	require.True(t, errors.As(diags[0].Err, &ce))
	assert.Equal(t, "boolean", ce.Want)
}
