package storage

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mock-interview-coach/internal/interview"
)

// chdirTemp переводит тест в пустую временную директорию,
// чтобы results/ не засорял рабочее дерево
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func sampleResult(id string) *Result {
	return &Result{
		SessionID: id,
		Timestamp: time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Config: interview.Config{
			CompanyName: "FinTech Neo",
			JobTitle:    "Product Manager",
			Round:       interview.RoundBehavioral,
			Criteria:    "empathy",
		},
		Profile: "## Dana Flores – Head of Product",
		Turns: []interview.Turn{
			{Speaker: interview.SpeakerInterviewer, Text: "Hello!"},
			{Speaker: interview.SpeakerCandidate, Text: "Hi.", Evaluation: "Short"},
		},
		Report: "# Report",
	}
}

func TestSaveAndLoadResult(t *testing.T) {
	chdirTemp(t)

	result := sampleResult("abc-123")
	filename, err := SaveResult(result)
	require.NoError(t, err)
	assert.FileExists(t, filename)

	loaded, err := LoadResult("abc-123")
	require.NoError(t, err)
	assert.Equal(t, result, loaded)
}

func TestLoadResult_Missing(t *testing.T) {
	chdirTemp(t)

	_, err := LoadResult("missing")
	assert.Error(t, err)
}

func TestListResults(t *testing.T) {
	chdirTemp(t)

	ids, err := ListResults()
	require.NoError(t, err)
	assert.Empty(t, ids, "без директории results список пуст")

	_, err = SaveResult(sampleResult("one"))
	require.NoError(t, err)
	_, err = SaveResult(sampleResult("two"))
	require.NoError(t, err)

	ids, err = ListResults()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"one", "two"}, ids)
}
