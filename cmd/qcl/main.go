package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/qcl/internal/cli"
	"github.com/arthur-debert/qcl/pkg/ui"
	"github.com/arthur-debert/qcl/pkg/ui/styles"
)

func main() {
	ui.ApplyFormat(ui.DetectFormat(os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cli.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		// Print the error in red; stdout stays empty
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(cli.FormatError(err)))
		os.Exit(1)
	}
}
