package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/ui/styles"
)

func newCheckCmd(appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return appFn().check()
		},
	}
}

// check loads every snippet file on its own and reports load failures and
// snippet issues, one per line.
func (a *app) check() error {
	if _, err := snippet.EnsureDefaultFile(a.paths.DefaultSnippetsPath()); err != nil {
		return err
	}

	files := a.snippetFiles()
	warn := styles.GetStyle("Warning")
	problems, count := 0, 0

	for _, file := range files {
		snippets, err := snippet.LoadFile(file)
		if err != nil {
			problems++
			fmt.Fprintln(a.out, warn.Render(fmt.Sprintf("%s: %v", file, err)))
			continue
		}

		count += len(snippets)
		for i := range snippets {
			for _, issue := range snippet.Validate(&snippets[i]) {
				problems++
				fmt.Fprintln(a.out, warn.Render(fmt.Sprintf("%s: %s", file, issue)))
			}
		}
	}

	if problems > 0 {
		return errors.Newf(errors.ErrConfigValid, MsgCheckProblems, problems)
	}

	fmt.Fprintln(a.out, styles.GetStyle("Success").Render(fmt.Sprintf(MsgCheckOK, count, len(files))))
	return nil
}
