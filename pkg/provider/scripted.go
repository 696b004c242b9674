package provider

import (
	"context"
	"strconv"
	"strings"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/snippet"
)

// CallKind tells input prompts from selections in a recorded Call.
type CallKind string

const (
	CallInput  CallKind = "input"
	CallSelect CallKind = "select"
)

// Call records one request made to a Scripted provider.
type Call struct {
	Kind         CallKind
	Variable     string
	Prompt       string
	Default      string
	Rows         []snippet.Row
	DefaultIndex int
}

// Scripted answers prompts from a fixed table keyed by variable name.
//
// A selection answer picks the row whose first field or whole text equals
// the answer, otherwise it is read as a 0-based row index. Variables with no
// answer are delegated to Fallback, or get their default when Fallback is nil.
type Scripted struct {
	Answers  map[string]string
	AbortOn  map[string]bool
	Fallback ValueProvider

	Calls []Call
}

// NewScripted creates a Scripted provider with the given answers.
func NewScripted(answers map[string]string) *Scripted {
	if answers == nil {
		answers = make(map[string]string)
	}
	return &Scripted{Answers: answers, AbortOn: make(map[string]bool)}
}

// ParseAnswers turns name=value pairs into an answer table.
func ParseAnswers(pairs []string) (map[string]string, error) {
	answers := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "answer %q must be name=value", pair)
		}
		answers[name] = value
	}
	return answers, nil
}

// PromptInput implements ValueProvider.
func (s *Scripted) PromptInput(ctx context.Context, variable, prompt, defaultValue string) (string, error) {
	s.Calls = append(s.Calls, Call{Kind: CallInput, Variable: variable, Prompt: prompt, Default: defaultValue})

	if err := ctx.Err(); err != nil {
		return "", inputAborted(variable, err)
	}
	if s.AbortOn[variable] {
		return "", inputAborted(variable, nil)
	}
	if answer, ok := s.Answers[variable]; ok {
		return answer, nil
	}
	if s.Fallback != nil {
		return s.Fallback.PromptInput(ctx, variable, prompt, defaultValue)
	}
	return defaultValue, nil
}

// PromptSelect implements ValueProvider.
func (s *Scripted) PromptSelect(ctx context.Context, variable, prompt string, rows []snippet.Row, defaultIndex int) (int, error) {
	s.Calls = append(s.Calls, Call{
		Kind:         CallSelect,
		Variable:     variable,
		Prompt:       prompt,
		Rows:         rows,
		DefaultIndex: defaultIndex,
	})

	if len(rows) == 0 {
		return 0, emptyChoices(variable)
	}
	if err := ctx.Err(); err != nil {
		return 0, selectionAborted(variable, err)
	}
	if s.AbortOn[variable] {
		return 0, selectionAborted(variable, nil)
	}

	answer, ok := s.Answers[variable]
	if !ok {
		if s.Fallback != nil {
			return s.Fallback.PromptSelect(ctx, variable, prompt, rows, defaultIndex)
		}
		return clampIndex(defaultIndex, len(rows)), nil
	}

	for i, row := range rows {
		if len(row) > 0 && row[0] == answer {
			return i, nil
		}
	}
	for i, row := range rows {
		if strings.Join(row, " ") == answer {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(answer); err == nil && i >= 0 && i < len(rows) {
		return i, nil
	}

	return 0, errors.Newf(errors.ErrInvalidInput, "answer %q matches none of %d choices", answer, len(rows)).
		WithDetail(errors.DetailVariable, variable)
}
