package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/qcl/internal/version"
	"github.com/arthur-debert/qcl/pkg/logging"
)

// options holds the global flag values
type options struct {
	verbosity int
	logFile   string
	shell     string
	files     []string
	answers   []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(os.Stdin)
}

// newRootCmd builds the command tree reading interactive answers from in
func newRootCmd(in *os.File) *cobra.Command {
	opts := &options{}
	var a *app

	rootCmd := &cobra.Command{
		Use:     "qcl [snippet]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.MaximumNArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Console only until the config names the log file
			logging.SetupLoggerTo(cmd.ErrOrStderr(), opts.verbosity, "")

			var err error
			a, err = newApp(cmd, opts, in)
			if err != nil {
				return err
			}

			logging.SetupLoggerTo(cmd.ErrOrStderr(), opts.verbosity, a.logFile())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd.Context(), a.cfg.Mode, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", FlagVerbose)
	flags.StringArrayVarP(&opts.files, "file", "f", nil, FlagFile)
	flags.StringVar(&opts.logFile, "log-file", "", FlagLogFile)
	flags.StringArrayVar(&opts.answers, "answer", nil, FlagAnswer)
	flags.StringVar(&opts.shell, "shell", "", FlagShell)

	initTemplateFormatting()

	appFn := func() *app { return a }
	rootCmd.AddCommand(newModeCmd("cli", MsgCLIShort, appFn))
	rootCmd.AddCommand(newModeCmd("tui", MsgTUIShort, appFn))
	rootCmd.AddCommand(newListCmd(appFn))
	rootCmd.AddCommand(newShowCmd(appFn))
	rootCmd.AddCommand(newCheckCmd(appFn))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newModeCmd(mode, short string, appFn func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   mode + " [snippet]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return appFn().resolve(cmd.Context(), mode, args)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		// Version needs no config or snippets
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "qcl version %s\n", version.Version)
			if version.Commit != "" {
				fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}
