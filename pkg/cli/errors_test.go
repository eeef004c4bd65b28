package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"mercator-hq/tabula/pkg/config"
	"mercator-hq/tabula/pkg/table"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("export.default_format", "unknown format")
	want := "config error in export.default_format: unknown format"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCommandError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewCommandError("export", cause)

	if err.Error() != "command export failed: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("CommandError does not unwrap to its cause")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "plain", err: errors.New("boom"), want: ExitFailure},
		{name: "canceled", err: context.Canceled, want: ExitFailure},
		{name: "usage", err: NewUsageError("missing --rows"), want: ExitUsage},
		{name: "config error", err: NewConfigError("storage", "disabled"), want: ExitConfig},
		{
			name: "config validation",
			err:  fmt.Errorf("load: %w", config.ValidationError{Errors: []config.FieldError{{Field: "x", Message: "y"}}}),
			want: ExitConfig,
		},
		{
			name: "wrapped sheet validation",
			err:  NewCommandError("export", table.NewValidationError("columns", "at least one column is required")),
			want: ExitValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
