package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/ui"
)

func newShowCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <snippet>",
		Short: MsgShowShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			snippets, err := a.loadSnippets()
			if err != nil {
				return err
			}

			s, err := snippet.Lookup(snippets, args[0])
			if err != nil {
				return err
			}

			fmt.Fprint(a.out, renderMarkdown(snippetMarkdown(s), formatFor(a.out)))
			return nil
		},
	}
}

// snippetMarkdown describes a snippet as a markdown document
func snippetMarkdown(s *snippet.Snippet) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Description)
	}
	fmt.Fprintf(&b, "```sh\n%s\n```\n\n", s.Command)

	if len(s.Placeholders) > 0 {
		b.WriteString("## Placeholders\n\n")
		b.WriteString("| Name | Default | From | Column | Order |\n")
		b.WriteString("|------|---------|------|--------|-------|\n")
		for _, ph := range s.Placeholders {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(ph.Name),
				cell(optional(ph.Default)),
				cell(optional(ph.From)),
				cell(optionalInt(ph.Select)),
				cell(optionalInt(ph.Order)))
		}
		b.WriteString("\n")
	}

	if s.Function != nil {
		b.WriteString("## Function\n\n")
		fmt.Fprintf(&b, "Runs `%s` and fills from the chosen row:\n\n", s.Function.From)
		names := make([]string, 0, len(s.Function.Select))
		for name := range s.Function.Select {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "- `%s` from column %d\n", name, s.Function.Select[name])
		}
		b.WriteString("\n")
	}

	if s.Source != "" {
		fmt.Fprintf(&b, "*Defined in %s*\n", s.Source)
	}
	return b.String()
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprint(*n)
}

// cell escapes a value for a markdown table cell
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

// renderMarkdown renders markdown with glamour, or returns it unchanged
// when the output is plain text or rendering fails.
func renderMarkdown(content string, format ui.Format) string {
	if format == ui.FormatText {
		return content
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
