package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/qcl/pkg/config"
	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/logging"
	"github.com/arthur-debert/qcl/pkg/lookup"
	"github.com/arthur-debert/qcl/pkg/paths"
	"github.com/arthur-debert/qcl/pkg/provider"
	"github.com/arthur-debert/qcl/pkg/resolve"
	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/ui/styles"
)

// app carries what every command needs once flags are parsed
type app struct {
	opts   *options
	paths  paths.Paths
	cfg    *config.Config
	in     *os.File
	out    io.Writer
	errOut io.Writer
}

func newApp(cmd *cobra.Command, opts *options, in *os.File) (*app, error) {
	p, err := paths.New()
	if err != nil {
		return nil, err
	}

	overrides := make(map[string]interface{})
	if opts.shell != "" {
		overrides["shell"] = opts.shell
	}
	if opts.logFile != "" {
		overrides["log.file"] = opts.logFile
	}

	cfg, err := config.LoadDefault(p, overrides)
	if err != nil {
		return nil, err
	}

	return &app{
		opts:   opts,
		paths:  p,
		cfg:    cfg,
		in:     in,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}, nil
}

func (a *app) logFile() string {
	if a.cfg.Log.File != "" {
		return a.cfg.Log.File
	}
	return a.paths.LogFilePath()
}

func (a *app) logger() zerolog.Logger {
	return logging.GetLogger("cli")
}

// snippetFiles lists the default file, then configured files, then --file
// flags. Later files win on name clashes.
func (a *app) snippetFiles() []string {
	files := []string{a.paths.DefaultSnippetsPath()}
	files = append(files, a.cfg.Files...)
	for _, f := range a.opts.files {
		files = append(files, paths.ExpandHome(f))
	}
	return files
}

// loadSnippets seeds the default snippet file if needed and loads every
// snippet file.
func (a *app) loadSnippets() ([]snippet.Snippet, error) {
	created, err := snippet.EnsureDefaultFile(a.paths.DefaultSnippetsPath())
	if err != nil {
		return nil, err
	}
	if created {
		fmt.Fprintf(a.errOut, MsgCreatedDefault, a.paths.DefaultSnippetsPath())
	}

	snippets, err := snippet.LoadFiles(a.snippetFiles())
	if err != nil {
		return nil, err
	}

	logger := a.logger()
	logger.Debug().Int("count", len(snippets)).Msg("Snippets loaded")
	return snippets, nil
}

// provider builds the value provider for mode, answering from --answer
// flags first.
func (a *app) provider(mode string) (provider.ValueProvider, error) {
	var base provider.ValueProvider
	switch mode {
	case config.ModeTUI:
		fs := provider.NewFullscreen(a.cfg.Display.Separator, a.cfg.Display.Height)
		fs.Input = a.in
		base = fs
	default:
		term := provider.NewTerminal(a.cfg.Display.Separator, a.cfg.Display.Height)
		term.In = a.in
		base = term
	}

	if len(a.opts.answers) == 0 {
		return base, nil
	}

	answers, err := provider.ParseAnswers(a.opts.answers)
	if err != nil {
		return nil, err
	}
	scripted := provider.NewScripted(answers)
	scripted.Fallback = base
	return scripted, nil
}

// resolve runs one resolution and prints the command on stdout
func (a *app) resolve(ctx context.Context, mode string, args []string) error {
	snippets, err := a.loadSnippets()
	if err != nil {
		return err
	}

	p, err := a.provider(mode)
	if err != nil {
		return err
	}
	r := resolve.New(p, lookup.NewShell(a.cfg.Shell))

	logger := a.logger()
	logger.Info().Str("mode", mode).Int("snippets", len(snippets)).Msg("Resolving snippet")

	var result *resolve.Result
	if len(args) == 1 {
		result, err = r.ResolveByName(ctx, snippets, args[0])
	} else {
		result, err = r.Run(ctx, snippets)
	}
	if err != nil {
		return err
	}

	if len(result.Unresolved) > 0 {
		fmt.Fprintln(a.errOut, styles.GetStyle("Warning").Render(
			fmt.Sprintf(MsgUnresolved, strings.Join(result.Unresolved, " "))))
	}

	_, err = fmt.Fprintln(a.out, result.Command)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to write command")
	}
	return nil
}
