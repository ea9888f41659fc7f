package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/screens/result"
	"github.com/abhisek/mindcheck/internal/speech"
	"github.com/abhisek/mindcheck/internal/store"
)

// execute runs the root command with fresh flag values and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func writeAnswers(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

const highRiskAnswers = `
Gender: Female
family_history: "Yes"
work_interfere: Often
care_options: "Yes"
"How easy is it to take work leave for mental health?": Somewhat difficult
`

func TestPredictJSON(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	path := writeAnswers(t, highRiskAnswers)

	out, err := execute(t, "", "predict", "--db", db, "--answers", path, "--json", "--features")
	require.NoError(t, err)

	var got predictOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Contains(t, []string{string(advice.RiskHigh), string(advice.RiskLow)}, got.Risk)
	assert.NotEmpty(t, got.ModelVersion)
	assert.NotEmpty(t, got.Recommendations)
	assert.Contains(t, got.Defaulted, "self_employed")
	assert.NotContains(t, got.Defaulted, "work_interfere")
	assert.Equal(t, 3.0, got.Features["work_interfere"])
	assert.Empty(t, got.ID, "nothing is saved without a name")
}

func TestPredictFromStdin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	out, err := execute(t, `{"Gender": "Male"}`, "predict", "--db", db, "--answers", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Prediction:")
	assert.Contains(t, out, "Defaulted:")
}

func TestPredictSavesToHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	path := writeAnswers(t, highRiskAnswers)

	out, err := execute(t, "", "predict", "--db", db, "--answers", path,
		"--name", "Ana", "--email", "ana@example.com", "--json")
	require.NoError(t, err)
	var got predictOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.NotEmpty(t, got.ID)

	out, err = execute(t, "", "history", "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, got.ID)
	assert.Contains(t, out, "Ana")

	out, err = execute(t, "", "history", "view", got.ID, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")
	assert.Contains(t, out, "work_interfere")

	reportDir := t.TempDir()
	out, err = execute(t, "", "report", got.ID, "--db", db, "-o", reportDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(reportDir, "Ana_Mental_Health_Report.pdf"), strings.TrimSpace(out))

	out, err = execute(t, "", "stats", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, store.EventAssessmentCompleted)
	assert.Contains(t, out, store.EventReportExported)
}

func TestPredictRejectsBadIntake(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	path := writeAnswers(t, highRiskAnswers)

	_, err := execute(t, "", "predict", "--db", db, "--answers", path,
		"--name", "Ana", "--email", "not-an-email")
	assert.Error(t, err)
}

func TestHistoryViewNotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	_, err := execute(t, "", "history", "view", "missing", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestQuestionsTemplateIsAcceptedByPredict(t *testing.T) {
	out, err := execute(t, "", "questions", "--template")
	require.NoError(t, err)

	db := filepath.Join(t.TempDir(), "test.db")
	path := writeAnswers(t, out)
	out, err = execute(t, "", "predict", "--db", db, "--answers", path, "--json")
	require.NoError(t, err)

	var got predictOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	// The first option of every question is a recognized answer.
	assert.Empty(t, got.Defaulted)
}

func TestResetAsksForConfirmation(t *testing.T) {
	db := filepath.Join(t.TempDir(), "test.db")
	path := writeAnswers(t, highRiskAnswers)
	_, err := execute(t, "", "predict", "--db", db, "--answers", path,
		"--name", "Ana", "--email", "ana@example.com")
	require.NoError(t, err)

	out, err := execute(t, "n\n", "reset", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = execute(t, "", "reset", "--db", db, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 1 assessments.")
}

func TestRecentLLMEvents(t *testing.T) {
	mk := func(seq int64, purpose string) store.LLMRequestEventRecord {
		return store.LLMRequestEventRecord{
			Sequence:            seq,
			Timestamp:           time.Now(),
			LLMRequestEventData: store.LLMRequestEventData{Purpose: purpose},
		}
	}
	events := []store.LLMRequestEventRecord{
		mk(1, "reflection"), mk(2, "other"), mk(3, "reflection"), mk(4, "reflection"),
	}

	got := recentLLMEvents(events, "reflection", 2)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[0].Sequence)
	assert.Equal(t, int64(3), got[1].Sequence)

	assert.Len(t, recentLLMEvents(events, "", 0), 4)
}

func TestSummarize(t *testing.T) {
	list := []*store.Assessment{
		{Label: 1, Defaulted: []string{"Gender"}},
		{Label: 0},
		{Label: 1},
	}
	events := []store.EventRecord{
		{EventData: store.EventData{Kind: store.EventAssessmentStarted}},
		{EventData: store.EventData{Kind: store.EventAssessmentCompleted}},
		{EventData: store.EventData{Kind: store.EventAssessmentStarted}},
	}

	st := summarize(list, events)
	assert.Equal(t, 3, st.total)
	assert.Equal(t, 2, st.byRisk[advice.RiskHigh])
	assert.Equal(t, 1, st.withDefaults)
	assert.Equal(t, []string{store.EventAssessmentStarted, store.EventAssessmentCompleted}, st.kinds)
	assert.Equal(t, 2, st.byKind[store.EventAssessmentStarted])
}

func TestServiceStatus(t *testing.T) {
	assert.Equal(t, "offline  ", serviceStatus(result.Services{}))
	assert.Equal(t, "tts  ", serviceStatus(result.Services{Speech: &speech.MockSynthesizer{}}))
}
