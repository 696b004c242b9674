// Package provider supplies placeholder values: free text typed by the user or
// a row picked from a list of choices.
//
// The resolution engine only sees the ValueProvider interface. Terminal and
// Fullscreen talk to a person, Scripted answers from a fixed table and is used
// by tests and the --answer flag.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/snippet"
)

// DefaultSeparator joins the fields of a row for display.
const DefaultSeparator = " | "

// DefaultMaxHeight is the number of choices shown at once.
const DefaultMaxHeight = 10

// ValueProvider obtains placeholder values.
type ValueProvider interface {
	// PromptInput asks for free text, pre-filled with defaultValue. Hosts
	// that cannot take input return defaultValue.
	PromptInput(ctx context.Context, variable, prompt, defaultValue string) (string, error)

	// PromptSelect asks for one of rows and returns its index.
	PromptSelect(ctx context.Context, variable, prompt string, rows []snippet.Row, defaultIndex int) (int, error)
}

// DisplayRows renders each row as one line, fields joined by separator.
func DisplayRows(rows []snippet.Row, separator string) []string {
	if separator == "" {
		separator = DefaultSeparator
	}
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(row, separator)
	}
	return lines
}

// uniqueLabels makes display lines distinct so a picked label maps back to a
// single index.
// A line that already reads like a suffixed label keeps its text.
func uniqueLabels(lines []string) []string {
	taken := make(map[string]bool, len(lines))
	for _, line := range lines {
		taken[line] = true
	}

	first := make(map[string]bool, len(lines))
	count := make(map[string]int, len(lines))
	labels := make([]string, len(lines))
	for i, line := range lines {
		if !first[line] {
			first[line] = true
			count[line] = 1
			labels[i] = line
			continue
		}
		label := line
		for taken[label] {
			count[line]++
			label = fmt.Sprintf("%s (%d)", line, count[line])
		}
		taken[label] = true
		labels[i] = label
	}
	return labels
}

func clampIndex(i, n int) int {
	if i < 0 || i >= n {
		return 0
	}
	return i
}

func emptyChoices(variable string) error {
	return errors.New(errors.ErrEmptyChoiceSet, "no choices to select from").
		WithDetail(errors.DetailVariable, variable)
}

func selectionAborted(variable string, cause error) error {
	if cause == nil {
		return errors.New(errors.ErrSelectionAborted, "selection cancelled").
			WithDetail(errors.DetailVariable, variable)
	}
	return errors.Wrap(cause, errors.ErrSelectionAborted, "selection cancelled").
		WithDetail(errors.DetailVariable, variable)
}

func inputAborted(variable string, cause error) error {
	if cause == nil {
		return errors.New(errors.ErrInputAborted, "input cancelled").
			WithDetail(errors.DetailVariable, variable)
	}
	return errors.Wrap(cause, errors.ErrInputAborted, "input cancelled").
		WithDetail(errors.DetailVariable, variable)
}
