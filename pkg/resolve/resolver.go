// Package resolve obtains a value for every placeholder of a snippet and
// renders the final command.
//
// A run is strictly sequential: the snippet function (if any) is resolved
// first, then each placeholder in Sequence order, asking the ValueProvider
// for free text or running the lookup command and asking it to pick a row.
// Values live in one map per run; the first resolution of a name wins.
package resolve

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/logging"
	"github.com/arthur-debert/qcl/pkg/lookup"
	"github.com/arthur-debert/qcl/pkg/provider"
	"github.com/arthur-debert/qcl/pkg/render"
	"github.com/arthur-debert/qcl/pkg/snippet"
)

const (
	// SnippetVariable is the variable name used when picking a snippet
	SnippetVariable = "snippet"
	// FunctionVariable is the variable name used when picking a function row
	FunctionVariable = "function_select"
)

// Result is the outcome of resolving one snippet.
type Result struct {
	Snippet *snippet.Snippet
	Vars    map[string]string
	Command string
	// Unresolved lists tokens that were left verbatim in Command
	Unresolved []string
}

// Resolver resolves snippets with an injected provider and executor.
type Resolver struct {
	Provider provider.ValueProvider
	Executor lookup.Executor
	logger   zerolog.Logger
}

// New creates a Resolver.
func New(p provider.ValueProvider, e lookup.Executor) *Resolver {
	return &Resolver{
		Provider: p,
		Executor: e,
		logger:   logging.GetLogger("resolve"),
	}
}

// Run asks the provider to pick one of snippets and resolves it.
func (r *Resolver) Run(ctx context.Context, snippets []snippet.Snippet) (*Result, error) {
	if len(snippets) == 0 {
		return nil, errors.New(errors.ErrNoSnippets, "no snippets available")
	}

	rows := make([]snippet.Row, len(snippets))
	for i, s := range snippets {
		rows[i] = snippet.Row{s.Name}
	}

	index, err := r.Provider.PromptSelect(ctx, SnippetVariable, "Select a snippet", rows, 0)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(snippets) {
		return nil, errors.Newf(errors.ErrInternal, "provider returned index %d for %d snippets", index, len(snippets))
	}

	selected := &snippets[index]
	r.logger.Trace().
		Str("event", "snippet_selected").
		Str("snippet", selected.Name).
		Msg("Snippet selected")

	return r.Resolve(ctx, selected)
}

// ResolveByName resolves the snippet called name.
func (r *Resolver) ResolveByName(ctx context.Context, snippets []snippet.Snippet, name string) (*Result, error) {
	s, err := snippet.Lookup(snippets, name)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, s)
}

// Resolve obtains every variable of s and renders its command.
func (r *Resolver) Resolve(ctx context.Context, s *snippet.Snippet) (*Result, error) {
	done := logging.LogOperationStart(r.logger, "resolve "+s.Name)
	defer done()

	vars := make(map[string]string)

	if s.Function != nil {
		if err := r.resolveFunction(ctx, s.Function, vars); err != nil {
			return nil, errors.Annotate(err, errors.DetailSnippet, s.Name)
		}
	}

	for _, ph := range Sequence(s.Placeholders) {
		if _, ok := vars[ph.Name]; ok {
			continue
		}
		if err := r.resolvePlaceholder(ctx, s, ph, vars); err != nil {
			return nil, errors.Annotate(err, errors.DetailSnippet, s.Name)
		}
	}

	command, unresolved := render.Render(s.Command, vars)
	if len(unresolved) > 0 {
		r.logger.Debug().
			Str("snippet", s.Name).
			Strs("tokens", unresolved).
			Msg("Tokens left unresolved")
	}

	r.logger.Debug().
		Str("event", "command_generated").
		Str("snippet", s.Name).
		Str("command", command).
		Msg("Command generated")

	return &Result{
		Snippet:    s,
		Vars:       vars,
		Command:    command,
		Unresolved: unresolved,
	}, nil
}

func (r *Resolver) resolveFunction(ctx context.Context, fn *snippet.Function, vars map[string]string) error {
	rows, err := r.Executor.Run(ctx, fn.From)
	if err != nil {
		return errors.Annotate(err, errors.DetailVariable, FunctionVariable)
	}
	if len(rows) == 0 {
		return errors.Newf(errors.ErrNoFunctionResults, "no records from function: %s", fn.From).
			WithDetail(errors.DetailCommand, fn.From)
	}

	index, err := r.Provider.PromptSelect(ctx, FunctionVariable, "Select a record", rows, 0)
	if err != nil {
		return err
	}
	row, err := rowAt(rows, index)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(fn.Select))
	for name := range fn.Select {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		column := fn.Select[name]
		value, err := columnOf(row, column, name)
		if err != nil {
			return err
		}
		vars[name] = value

		r.logger.Debug().
			Str("event", "function_placeholder_resolved").
			Str("variable", name).
			Str("value", value).
			Msg("Function variable resolved")
	}
	return nil
}

func (r *Resolver) resolvePlaceholder(ctx context.Context, s *snippet.Snippet, ph snippet.Placeholder, vars map[string]string) error {
	if ph.Name == "" {
		return errors.Newf(errors.ErrMalformedPlaceholder, "placeholder %s has no name", ph.Raw)
	}

	r.logger.Trace().
		Str("event", "placeholder_resolve_start").
		Str("snippet", s.Name).
		Str("variable", ph.Name).
		Msg("Resolving placeholder")

	var (
		value string
		err   error
	)
	if ph.HasLookup() {
		value, err = r.lookupValue(ctx, ph)
	} else {
		value, err = r.Provider.PromptInput(ctx, ph.Name, "Enter value for "+ph.Name, ph.DefaultValue())
	}
	if err != nil {
		return errors.Annotate(err, errors.DetailVariable, ph.Name)
	}

	vars[ph.Name] = value

	r.logger.Trace().
		Str("event", "placeholder_resolve_end").
		Str("snippet", s.Name).
		Str("variable", ph.Name).
		Str("value", value).
		Msg("Placeholder resolved")
	return nil
}

func (r *Resolver) lookupValue(ctx context.Context, ph snippet.Placeholder) (string, error) {
	command := *ph.From
	rows, err := r.Executor.Run(ctx, command)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "", errors.Newf(errors.ErrNoLookupResults, "no records found for from: %s", command).
			WithDetail(errors.DetailCommand, command)
	}

	index, err := r.Provider.PromptSelect(ctx, ph.Name, "Select value for "+ph.Name, rows, 0)
	if err != nil {
		return "", err
	}
	row, err := rowAt(rows, index)
	if err != nil {
		return "", err
	}
	return columnOf(row, ph.Column(), ph.Name)
}

func rowAt(rows []snippet.Row, index int) (snippet.Row, error) {
	if index < 0 || index >= len(rows) {
		return nil, errors.Newf(errors.ErrInternal, "provider returned index %d for %d rows", index, len(rows))
	}
	return rows[index], nil
}

func columnOf(row snippet.Row, column int, variable string) (string, error) {
	if column < 0 || column >= len(row) {
		return "", errors.Newf(errors.ErrColumnOutOfBounds, "column %d out of bounds for %s (row has %d fields)", column, variable, len(row)).
			WithDetail(errors.DetailColumn, column).
			WithDetail(errors.DetailVariable, variable)
	}
	return row[column], nil
}
