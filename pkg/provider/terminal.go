package provider

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/qcl/pkg/logging"
	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/ui"
)

// Terminal prompts inline on the terminal with pterm's interactive printers.
//
// When In is not a terminal, input prompts read one line from In and fall
// back to the default on an empty line or EOF, and selections take the
// default row.
type Terminal struct {
	In        *os.File
	Separator string
	MaxHeight int

	reader *bufio.Reader
	logger zerolog.Logger
}

// NewTerminal creates a Terminal provider reading from stdin. Prompts are
// written to stderr so stdout only carries the generated command.
func NewTerminal(separator string, maxHeight int) *Terminal {
	pterm.SetDefaultOutput(os.Stderr)
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	return &Terminal{
		In:        os.Stdin,
		Separator: separator,
		MaxHeight: maxHeight,
		logger:    logging.GetLogger("provider.terminal"),
	}
}

func (t *Terminal) interactive() bool {
	return ui.IsTerminal(t.In)
}

// PromptInput implements ValueProvider.
func (t *Terminal) PromptInput(ctx context.Context, variable, prompt, defaultValue string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", inputAborted(variable, err)
	}

	if !t.interactive() {
		return t.readLine(variable, defaultValue)
	}

	aborted := false
	value, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(defaultValue).
		WithOnInterruptFunc(func() { aborted = true }).
		Show(prompt)
	if aborted {
		return "", inputAborted(variable, nil)
	}
	if err != nil {
		return "", inputAborted(variable, err)
	}
	return value, nil
}

func (t *Terminal) readLine(variable, defaultValue string) (string, error) {
	if t.reader == nil {
		t.reader = bufio.NewReader(t.In)
	}

	line, err := t.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", inputAborted(variable, err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		t.logger.Debug().
			Str("variable", variable).
			Msg("No input available, using default")
		return defaultValue, nil
	}
	return line, nil
}

// PromptSelect implements ValueProvider.
func (t *Terminal) PromptSelect(ctx context.Context, variable, prompt string, rows []snippet.Row, defaultIndex int) (int, error) {
	if len(rows) == 0 {
		return 0, emptyChoices(variable)
	}
	if err := ctx.Err(); err != nil {
		return 0, selectionAborted(variable, err)
	}

	defaultIndex = clampIndex(defaultIndex, len(rows))
	if !t.interactive() {
		t.logger.Debug().
			Str("variable", variable).
			Int("index", defaultIndex).
			Msg("Not a terminal, using default choice")
		return defaultIndex, nil
	}

	labels := uniqueLabels(DisplayRows(rows, t.Separator))
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}

	aborted := false
	picked, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		WithDefaultOption(labels[defaultIndex]).
		WithMaxHeight(t.MaxHeight).
		WithOnInterruptFunc(func() { aborted = true }).
		Show(prompt)
	if aborted {
		return 0, selectionAborted(variable, nil)
	}
	if err != nil {
		return 0, selectionAborted(variable, err)
	}

	i, ok := index[picked]
	if !ok {
		return 0, selectionAborted(variable, nil)
	}
	return i, nil
}
