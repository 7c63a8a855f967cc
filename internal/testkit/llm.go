package testkit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/joeshaw/envdecode"
)

// DefaultResponsesDir is where transcripts are written when saving is on.
const DefaultResponsesDir = "llm_responses"

// LLMConfig configures the OpenAI-compatible model driving end-to-end tests.
type LLMConfig struct {
	APIKey           string `env:"OPENAI_API_KEY"`
	APIBase          string `env:"OPENAI_API_BASE"`
	DeploymentID     string `env:"OPENAI_API_DEPLOYMENT_ID"`
	APIVersion       string `env:"OPENAI_API_VERSION"`
	SaveLLMResponses bool   `env:"SAVE_LLM_RESPONSES"`
	ResponsesDir     string `env:"LLM_RESPONSES_DIR"`
}

// LLMConfigFromEnv reads the LLM configuration from the environment.
// It fails when the key or base URL is missing.
func LLMConfigFromEnv() (LLMConfig, error) {
	cfg := LLMConfig{ResponsesDir: DefaultResponsesDir}
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("failed to read LLM configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the required variables that are not set.
func (c LLMConfig) Validate() error {
	var missing []string
	if c.APIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.APIBase == "" {
		missing = append(missing, "OPENAI_API_BASE")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required OpenAI environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ToolCall is one tool invocation made while answering a prompt.
type ToolCall struct {
	Name       string         `yaml:"name"`
	Parameters map[string]any `yaml:"parameters"`
	Result     string         `yaml:"result"`
}

// LLMResponse is the final answer of a model and the tools it called.
type LLMResponse struct {
	Content   string     `yaml:"content"`
	ToolCalls []ToolCall `yaml:"tool_calls"`
}

// LLMClient answers a prompt, calling tools through session as needed.
type LLMClient interface {
	ProcessPrompt(ctx context.Context, session *Session, prompt string) (*LLMResponse, error)
	Config() LLMConfig
}

// ScriptedLLM is an LLMClient that calls a fixed list of tools and answers
// with their results. It stands in for a model in tests that must not reach
// the network.
type ScriptedLLM struct {
	Calls []ToolCall
	// Preamble is prepended to the answer.
	Preamble string
	Settings LLMConfig
}

// ProcessPrompt makes the scripted calls in order and joins their results.
func (l *ScriptedLLM) ProcessPrompt(ctx context.Context, session *Session, _ string) (*LLMResponse, error) {
	resp := &LLMResponse{}
	parts := []string{}
	if l.Preamble != "" {
		parts = append(parts, l.Preamble)
	}

	for _, call := range l.Calls {
		result, err := session.CallTool(ctx, call.Name, call.Parameters)
		if err != nil {
			return nil, fmt.Errorf("failed to call tool %s: %w", call.Name, err)
		}
		text := ResultText(result)
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{
			Name:       call.Name,
			Parameters: call.Parameters,
			Result:     text,
		})
		parts = append(parts, text)
	}

	resp.Content = strings.Join(parts, "\n")
	return resp, nil
}

// Config returns the settings of the scripted client.
func (l *ScriptedLLM) Config() LLMConfig {
	return l.Settings
}
