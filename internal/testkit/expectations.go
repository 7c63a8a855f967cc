package testkit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"mcpapp/pkg/logging"
)

// ToolCallTestExpectations describes one tool call the model must make.
// Result must be contained in the text the tool returned.
type ToolCallTestExpectations struct {
	Name       string
	Parameters map[string]any
	Result     string
}

// ETETestExpectations is what an end-to-end prompt must produce.
type ETETestExpectations struct {
	// ToolCallsExpected must appear in the response in this order. Other
	// calls may be interleaved.
	ToolCallsExpected []ToolCallTestExpectations
	// LLMResponseContentContains lists phrases of which at least one must
	// appear in the answer, compared case-insensitively.
	LLMResponseContentContains []string
}

// Transcript is the saved record of one end-to-end run.
type Transcript struct {
	TestName  string      `yaml:"test_name"`
	Prompt    string      `yaml:"prompt"`
	Timestamp time.Time   `yaml:"timestamp"`
	Response  LLMResponse `yaml:"response"`
}

// RunWithExpectations sends prompt to llm and checks the response against
// expectations. The transcript is saved when the client's configuration asks
// for it.
func RunWithExpectations(ctx context.Context, t testing.TB, prompt string, expectations ETETestExpectations, llm LLMClient, session *Session, testName string) *LLMResponse {
	t.Helper()

	resp, err := llm.ProcessPrompt(ctx, session, prompt)
	require.NoError(t, err, "LLM failed to process prompt")
	require.NotNil(t, resp)

	if cfg := llm.Config(); cfg.SaveLLMResponses {
		path, err := SaveTranscript(cfg.ResponsesDir, Transcript{
			TestName:  testName,
			Prompt:    prompt,
			Timestamp: time.Now().UTC(),
			Response:  *resp,
		})
		require.NoError(t, err)
		logging.Info("Testkit", "Saved LLM response for %s to %s", testName, path)
	}

	for _, problem := range CheckExpectations(resp, expectations) {
		t.Errorf("%s: %s", testName, problem)
	}
	return resp
}

// CheckExpectations returns a description of every expectation resp misses.
func CheckExpectations(resp *LLMResponse, expectations ETETestExpectations) []string {
	var problems []string

	next := 0
	for _, want := range expectations.ToolCallsExpected {
		found := false
		for next < len(resp.ToolCalls) {
			got := resp.ToolCalls[next]
			next++
			if got.Name != want.Name {
				continue
			}
			if want.Parameters != nil && !cmp.Equal(normalize(got.Parameters), normalize(want.Parameters)) {
				problems = append(problems, fmt.Sprintf("tool %s called with %v, expected %v", want.Name, got.Parameters, want.Parameters))
			}
			if !strings.Contains(got.Result, want.Result) {
				problems = append(problems, fmt.Sprintf("tool %s returned %q, expected it to contain %q", want.Name, got.Result, want.Result))
			}
			found = true
			break
		}
		if !found {
			problems = append(problems, fmt.Sprintf("expected tool %s to be called", want.Name))
		}
	}

	if len(expectations.LLMResponseContentContains) > 0 {
		content := strings.ToLower(resp.Content)
		matched := false
		for _, phrase := range expectations.LLMResponseContentContains {
			if strings.Contains(content, strings.ToLower(phrase)) {
				matched = true
				break
			}
		}
		if !matched {
			problems = append(problems, fmt.Sprintf("response %q contains none of %q", resp.Content, expectations.LLMResponseContentContains))
		}
	}

	return problems
}

// normalize renders parameter values as strings so a model that sends "1"
// and one that sends 1 compare equal.
func normalize(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// SaveTranscript writes transcript to a uniquely named YAML file under dir
// and returns its path.
func SaveTranscript(dir string, transcript Transcript) (string, error) {
	if dir == "" {
		dir = DefaultResponsesDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := yaml.Marshal(transcript)
	if err != nil {
		return "", fmt.Errorf("failed to encode transcript: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.yaml", transcriptFileName(transcript.TestName), uuid.NewString()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// transcriptFileName flattens subtest names such as "TestX/case" into one path element.
func transcriptFileName(testName string) string {
	name := strings.ReplaceAll(testName, "/", "_")
	return strings.ReplaceAll(name, string(filepath.Separator), "_")
}
