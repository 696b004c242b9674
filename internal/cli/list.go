package cli

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/ui"
)

func newListCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFn()
			snippets, err := a.loadSnippets()
			if err != nil {
				return err
			}

			if len(snippets) == 0 {
				fmt.Fprintln(a.out, MsgNoSnippets)
				return nil
			}

			table, err := renderSnippetTable(snippets, formatFor(a.out))
			if err != nil {
				return err
			}
			fmt.Fprint(a.out, table)
			return nil
		},
	}
}

// renderSnippetTable renders name, variables and description per snippet
func renderSnippetTable(snippets []snippet.Snippet, format ui.Format) (string, error) {
	data := pterm.TableData{{"NAME", "VARIABLES", "DESCRIPTION"}}
	for i := range snippets {
		s := &snippets[i]
		data = append(data, []string{s.Name, strings.Join(s.Variables(), ", "), s.Description})
	}

	if format == ui.FormatText {
		pterm.DisableStyling()
		defer pterm.EnableStyling()
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return table + "\n", nil
}
