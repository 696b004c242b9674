package cli

import (
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/qcl/pkg/ui"
)

// formatFor picks the output format for w; anything but a terminal is plain
func formatFor(w io.Writer) ui.Format {
	if f, ok := w.(*os.File); ok {
		return ui.DetectFormat(f)
	}
	return ui.FormatText
}

// formatBold returns the string formatted as bold using pterm
func formatBold(s string) string {
	if ui.DetectFormat(os.Stdout) == ui.FormatText {
		return s
	}
	return pterm.Bold.Sprint(s)
}

// formatBoldUpper returns the string in uppercase and bold
func formatBoldUpper(s string) string {
	return formatBold(strings.ToUpper(s))
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"boldUpper": formatBoldUpper,
	})
}
