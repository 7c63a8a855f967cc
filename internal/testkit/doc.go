// Package testkit provides integration and end-to-end helpers for mcpapp
// servers.
//
// NewIntegrationSession starts the server in-process with the native items
// and dynamic registration off, so tests never reach a remote catalog.
// RunWithExpectations drives a prompt through an LLMClient and checks the
// tool calls and answer it produced. ScriptedLLM replays fixed tool calls in
// place of a model; a real model is configured with LLMConfigFromEnv.
package testkit
