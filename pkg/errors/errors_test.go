// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, annotation and classification helpers

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/qcl/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "snippet_not_found",
			code:    errors.ErrSnippetNotFound,
			message: "no snippet named deploy",
			wantStr: "[SNIPPET_NOT_FOUND] no snippet named deploy",
		},
		{
			name:    "malformed_placeholder",
			code:    errors.ErrMalformedPlaceholder,
			message: "placeholder has no name",
			wantStr: "[MALFORMED_PLACEHOLDER] placeholder has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrColumnOutOfBounds, "column %d out of bounds for %s", 3, "host")
	if err.Message != "column 3 out of bounds for host" {
		t.Errorf("Newf() message = %q", err.Message)
	}
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exit status 1")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrCommandExecution, "command failed")

		if err.Wrapped != baseErr {
			t.Error("Wrap() should preserve wrapped error")
		}

		wantStr := "[COMMAND_EXECUTION_FAILED] command failed: exit status 1"
		if got := err.Error(); got != wantStr {
			t.Errorf("Error() = %q, want %q", got, wantStr)
		}
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrInternal, "internal error"); err != nil {
			t.Error("Wrap(nil) should return nil")
		}
		if err := errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"); err != nil {
			t.Error("Wrapf(nil) should return nil")
		}
	})
}

func TestAnnotate(t *testing.T) {
	t.Run("adds_missing_key", func(t *testing.T) {
		err := errors.New(errors.ErrInputAborted, "cancelled")
		wrapped := fmt.Errorf("outer: %w", err)

		got := errors.Annotate(wrapped, errors.DetailSnippet, "greet")
		if got != wrapped {
			t.Error("Annotate() should return the same error value")
		}
		if err.Details[errors.DetailSnippet] != "greet" {
			t.Errorf("Annotate() did not set detail, got %v", err.Details)
		}
	})

	t.Run("keeps_existing_key", func(t *testing.T) {
		err := errors.New(errors.ErrInputAborted, "cancelled").WithDetail(errors.DetailVariable, "inner")
		_ = errors.Annotate(err, errors.DetailVariable, "outer")
		if err.Details[errors.DetailVariable] != "inner" {
			t.Errorf("Annotate() overwrote detail: %v", err.Details[errors.DetailVariable])
		}
	})

	t.Run("ignores_plain_errors", func(t *testing.T) {
		plain := stderrors.New("plain")
		if got := errors.Annotate(plain, errors.DetailSnippet, "x"); got != plain {
			t.Error("Annotate() should pass plain errors through")
		}
	})
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNoLookupResults, "error 1")
	err2 := errors.New(errors.ErrNoLookupResults, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	if !err1.Is(err2) {
		t.Error("Is() should return true for same code")
	}
	if err1.Is(err3) {
		t.Error("Is() should return false for different codes")
	}
	if !stderrors.Is(err1, err2) {
		t.Error("errors.Is() should work with QclError")
	}
}

func TestClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantEmpty bool
		wantAbort bool
	}{
		{"empty_choice_set", errors.New(errors.ErrEmptyChoiceSet, "x"), true, false},
		{"no_function_results", errors.New(errors.ErrNoFunctionResults, "x"), true, false},
		{"no_lookup_results", errors.New(errors.ErrNoLookupResults, "x"), true, false},
		{"selection_aborted", errors.New(errors.ErrSelectionAborted, "x"), false, true},
		{"input_aborted", fmt.Errorf("wrapped: %w", errors.New(errors.ErrInputAborted, "x")), false, true},
		{"column_out_of_bounds", errors.New(errors.ErrColumnOutOfBounds, "x"), false, false},
		{"standard_error", stderrors.New("x"), false, false},
		{"nil_error", nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.IsEmptyChoice(tt.err); got != tt.wantEmpty {
				t.Errorf("IsEmptyChoice() = %v, want %v", got, tt.wantEmpty)
			}
			if got := errors.IsAborted(tt.err); got != tt.wantAbort {
				t.Errorf("IsAborted() = %v, want %v", got, tt.wantAbort)
			}
		})
	}
}

func TestGetErrorCodeAndDetails(t *testing.T) {
	err := errors.New(errors.ErrCommandExecution, "failed").WithDetail(errors.DetailExitCode, 1)

	if got := errors.GetErrorCode(fmt.Errorf("ctx: %w", err)); got != errors.ErrCommandExecution {
		t.Errorf("GetErrorCode() = %v", got)
	}
	if got := errors.GetErrorCode(stderrors.New("x")); got != errors.ErrUnknown {
		t.Errorf("GetErrorCode() on plain error = %v", got)
	}
	if got := errors.GetErrorDetails(err)[errors.DetailExitCode]; got != 1 {
		t.Errorf("GetErrorDetails() exit code = %v", got)
	}
	if errors.GetErrorDetails(stderrors.New("x")) != nil {
		t.Error("GetErrorDetails() on plain error should be nil")
	}
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileNotFound, "cannot read snippet file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load snippets")

	if !errors.IsErrorCode(configErr, errors.ErrConfigLoad) {
		t.Error("Top level should have ErrConfigLoad code")
	}

	var qclErr *errors.QclError
	if stderrors.As(configErr.Unwrap(), &qclErr) && qclErr.Code != errors.ErrFileNotFound {
		t.Error("Middle error should have ErrFileNotFound code")
	}

	if !stderrors.Is(configErr, rootCause) {
		t.Error("Should find root cause with errors.Is")
	}
}
