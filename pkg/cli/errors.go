package cli

import (
	"errors"
	"fmt"

	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
)

// Exit statuses returned by ExitCode.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitConfig     = 3
	ExitValidation = 4
)

// ConfigError represents an error in configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %s", e.Field, e.Message)
}

// CommandError represents an error from a command execution.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports invalid flags or arguments.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}

// NewUsageError creates a new UsageError.
func NewUsageError(format string, args ...any) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitCode returns the process exit status for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var usageErr *UsageError
	var configErr *ConfigError
	var configValidation config.ValidationError
	switch {
	case errors.As(err, &usageErr):
		return ExitUsage
	case errors.As(err, &configErr), errors.As(err, &configValidation):
		return ExitConfig
	case table.IsValidationError(err):
		return ExitValidation
	default:
		return ExitFailure
	}
}
