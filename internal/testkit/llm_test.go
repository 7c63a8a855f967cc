package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLLMConfigFromEnv(t *testing.T) {
	t.Run("reads every variable", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "key")
		t.Setenv("OPENAI_API_BASE", "https://llm.example.com")
		t.Setenv("OPENAI_API_DEPLOYMENT_ID", "gpt")
		t.Setenv("OPENAI_API_VERSION", "2024-02-01")
		t.Setenv("SAVE_LLM_RESPONSES", "true")
		t.Setenv("LLM_RESPONSES_DIR", "")

		cfg, err := LLMConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, LLMConfig{
			APIKey:           "key",
			APIBase:          "https://llm.example.com",
			DeploymentID:     "gpt",
			APIVersion:       "2024-02-01",
			SaveLLMResponses: true,
			ResponsesDir:     DefaultResponsesDir,
		}, cfg)
	})

	t.Run("missing key and base", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("OPENAI_API_BASE", "")

		_, err := LLMConfigFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OPENAI_API_KEY, OPENAI_API_BASE")
	})
}
