package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questionsFixture = `[
	{"type": "shortanswer", "question": "Capital of France?", "correct_answer": "Paris"},
	{"type": "truefalse", "question": "The Earth is flat.", "correct_answer": false, "explanation": "It is round."},
	{"type": "essay", "question": "Discuss.", "correct_answer": "..."},
	{"type": "truefalse", "question": "Bad answer type.", "correct_answer": "no"}
]`

func writeQuestions(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func executeCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestQuiz_FullSession(t *testing.T) {
	path := writeQuestions(t, t.TempDir(), questionsFixture)

	stdout, stderr, err := executeCLI(t, "paris\nt\n", "Ada", "--questions", path, "--color=false")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Welcome, Ada! Let's start your adaptive quiz session.")
	assert.Contains(t, stdout, "Type 'q' at any time to quit the session.")
	assert.Contains(t, stdout, "Capital of France?")
	assert.Contains(t, stdout, "Correct!")
	assert.Contains(t, stdout, "The Earth is flat. (True/False)")
	assert.Contains(t, stdout, "Incorrect. It is round.")
	assert.Contains(t, stdout, "Correctly Answered Once: 1 questions")
	assert.Contains(t, stdout, "Missed Questions: 1 questions")
	assert.Contains(t, stdout, "All questions have been reviewed. Session complete!")
	assert.Contains(t, stdout, "Thank you, goodbye!")
	assert.Contains(t, stdout, "Questions presented: 2")
	assert.Contains(t, stdout, "Correct answers:     1 (50%)")

	assert.Contains(t, stderr, "warning: skipping question 3: unsupported question type: essay")
	assert.Contains(t, stderr, "warning: skipping question 4:")
}

func TestQuiz_QuitImmediately(t *testing.T) {
	path := writeQuestions(t, t.TempDir(), questionsFixture)

	stdout, _, err := executeCLI(t, "Q\n", "Ada", "--questions", path, "--color=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Thank you, goodbye!")
	assert.NotContains(t, stdout, "Correct!")
	assert.NotContains(t, stdout, "Session complete!")
	assert.Contains(t, stdout, "Unasked Questions: 2 questions")
}

func TestQuiz_InvalidTrueFalseAnswer(t *testing.T) {
	path := writeQuestions(t, t.TempDir(), `[{"type": "truefalse", "question": "Sky is blue.", "correct_answer": true}]`)

	stdout, _, err := executeCLI(t, "maybe\nq\n", "Ada", "--questions", path, "--color=false", "--show-box-counts=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Invalid input:")
	assert.Equal(t, 2, strings.Count(stdout, "Sky is blue. (True/False)"))
	assert.Contains(t, stdout, "Invalid answers:     1")
}

func TestQuiz_MissingQuestionFile(t *testing.T) {
	_, _, err := executeCLI(t, "", "Ada", "--questions", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load questions")
}

func TestQuiz_MalformedQuestionFile(t *testing.T) {
	path := writeQuestions(t, t.TempDir(), `{"not": "an array"}`)

	stdout, _, err := executeCLI(t, "", "Ada", "--questions", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed question source")
	assert.NotContains(t, stdout, "Welcome")
}

func TestQuiz_RequiresQuestionFile(t *testing.T) {
	_, _, err := executeCLI(t, "", "Ada")
	require.ErrorIs(t, err, errNoQuestionFile)
}

func TestQuiz_RequiresName(t *testing.T) {
	_, _, err := executeCLI(t, "")
	require.Error(t, err)
}

func TestQuiz_QuestionsFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := writeQuestions(t, dir, `[{"type": "shortanswer", "question": "2+2?", "correct_answer": "4"}]`)
	cfgPath := filepath.Join(dir, "quizme.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("questions = '"+path+"'\ncolor = false\n"), 0o600))

	stdout, _, err := executeCLI(t, "4\n", "Ada", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2+2?")
	assert.Contains(t, stdout, "Correct!")
}

func TestValidate(t *testing.T) {
	path := writeQuestions(t, t.TempDir(), questionsFixture)

	stdout, stderr, err := executeCLI(t, "", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 questions loaded, 2 skipped")
	assert.Contains(t, stdout, "shortanswer: 1")
	assert.Contains(t, stdout, "truefalse: 1")
	assert.Contains(t, stderr, "unsupported question type: essay")
}

func TestValidate_Malformed(t *testing.T) {
	path := writeQuestions(t, t.TempDir(), `not json`)

	_, _, err := executeCLI(t, "", "validate", path)
	require.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	stdout, _, err := executeCLI(t, "", "config", "show", "--color=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "color = false")
	assert.Contains(t, stdout, "show_box_counts = true")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quizme", "config.toml")

	stdout, _, err := executeCLI(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "color = true")

	_, _, err = executeCLI(t, "", "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = executeCLI(t, "", "config", "init", "--config", path, "--force")
	require.NoError(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "quizme (devel)\n", stdout)
}

func TestDisplayVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(devel)", "(devel)"},
		{"v1.2.3", "v1.2.3"},
		{"1.2", "v1.2.0"},
		{"v1", "v1.0.0"},
		{"v1.0.0-rc.1+build.5", "v1.0.0-rc.1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, displayVersion(tt.in))
		})
	}
}
