package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names one of the three definition directories.
type Kind string

const (
	KindTools     Kind = "tools"
	KindPrompts   Kind = "prompts"
	KindResources Kind = "resources"
)

// Argument is a named string argument accepted by a tool or prompt.
type Argument struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// ToolDefinition declares a tool whose result is a rendered text template.
type ToolDefinition struct {
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string     `yaml:"category" json:"category"`
	Arguments   []Argument `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	// Response is a text/template rendered with the call arguments.
	Response string `yaml:"response,omitempty" json:"response,omitempty"`
}

// PromptMessage is one templated message of a prompt.
type PromptMessage struct {
	Role    string `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// PromptDefinition declares a prompt made of templated messages.
type PromptDefinition struct {
	Name        string          `yaml:"name" json:"name"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string          `yaml:"category" json:"category"`
	Arguments   []Argument      `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	Messages    []PromptMessage `yaml:"messages" json:"messages"`
}

// ResourceDefinition declares a static resource. Exactly one of Text and File is set.
// File is resolved relative to the definition file when loaded from disk.
type ResourceDefinition struct {
	URI         string `yaml:"uri" json:"uri"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string `yaml:"category" json:"category"`
	MIMEType    string `yaml:"mimeType,omitempty" json:"mimeType,omitempty"`
	Text        string `yaml:"text,omitempty" json:"text,omitempty"`
	File        string `yaml:"file,omitempty" json:"file,omitempty"`
}

func (d ToolDefinition) key() string     { return d.Name }
func (d PromptDefinition) key() string   { return d.Name }
func (d ResourceDefinition) key() string { return d.URI }

// Validate checks the fields every tool definition needs.
func (d ToolDefinition) Validate() error {
	if err := requireFields("name", d.Name, "category", d.Category); err != nil {
		return err
	}
	return validateArguments(d.Arguments)
}

// Validate checks the fields every prompt definition needs.
func (d PromptDefinition) Validate() error {
	if err := requireFields("name", d.Name, "category", d.Category); err != nil {
		return err
	}
	if len(d.Messages) == 0 {
		return fmt.Errorf("prompt %q has no messages", d.Name)
	}
	for i, m := range d.Messages {
		switch m.Role {
		case "user", "assistant":
		default:
			return fmt.Errorf("message %d of prompt %q has role %q, want user or assistant", i, d.Name, m.Role)
		}
	}
	return validateArguments(d.Arguments)
}

// Validate checks the fields every resource definition needs.
func (d ResourceDefinition) Validate() error {
	if err := requireFields("uri", d.URI, "name", d.Name, "category", d.Category); err != nil {
		return err
	}
	if (d.Text == "") == (d.File == "") {
		return fmt.Errorf("resource %q must set exactly one of text and file", d.URI)
	}
	return nil
}

// requireFields takes field name and value pairs.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func validateArguments(args []Argument) error {
	seen := make(map[string]bool, len(args))
	for _, a := range args {
		if strings.TrimSpace(a.Name) == "" {
			return errors.New("argument without a name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate argument %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}
