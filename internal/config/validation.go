package config

import (
	"fmt"
	"strings"

	"mcpapp/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// AddErr appends err when it is a ValidationError and wraps it otherwise.
func (ve *ValidationErrors) AddErr(err error) {
	if err == nil {
		return
	}
	if v, ok := err.(ValidationError); ok {
		*ve = append(*ve, v)
		return
	}
	ve.Add("", err.Error())
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidatePort checks that port is a usable TCP port number.
func ValidatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return ValidationError{
			Field:   field,
			Value:   port,
			Message: "must be between 1 and 65535",
		}
	}
	return nil
}

// Validate checks the configuration for values the server cannot start with.
func (c AppConfig) Validate() error {
	var errs ValidationErrors

	errs.AddErr(ValidateRequired("server.name", c.Server.Name, "server"))
	errs.AddErr(ValidateOneOf("server.transport", c.Server.Transport,
		[]string{MCPTransportStreamableHTTP, MCPTransportSSE, MCPTransportStdio}))
	if c.Server.Transport != MCPTransportStdio {
		errs.AddErr(ValidatePort("server.port", c.Server.Port))
	}
	errs.AddErr(ValidateRequired("items.appDir", c.Items.AppDir, "items"))
	if c.Dynamic.Enabled() {
		errs.AddErr(ValidateRequired("dynamic.endpoint", c.Dynamic.Endpoint, "dynamic registration"))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs.Add("logging.level", err.Error(), c.Logging.Level)
	}
	if c.Logging.Format != "" {
		errs.AddErr(ValidateOneOf("logging.format", c.Logging.Format,
			[]string{string(logging.FormatText), string(logging.FormatJSON)}))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
