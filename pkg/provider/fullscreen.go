package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/ui/styles"
)

// Fullscreen prompts in an alternate-screen bubbletea program with fuzzy
// filtering of the choices.
type Fullscreen struct {
	Separator string
	MaxHeight int
	Input     io.Reader
	Output    io.Writer
}

// NewFullscreen creates a Fullscreen provider drawing on stderr.
func NewFullscreen(separator string, maxHeight int) *Fullscreen {
	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}
	return &Fullscreen{
		Separator: separator,
		MaxHeight: maxHeight,
		Input:     os.Stdin,
		Output:    os.Stderr,
	}
}

func (f *Fullscreen) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(f.Input),
		tea.WithOutput(f.Output),
	)
	return program.Run()
}

// PromptInput implements ValueProvider.
func (f *Fullscreen) PromptInput(ctx context.Context, variable, prompt, defaultValue string) (string, error) {
	final, err := f.run(ctx, newInputModel(prompt, defaultValue))
	if err != nil {
		return "", inputAborted(variable, err)
	}
	m, ok := final.(inputModel)
	if !ok || m.aborted {
		return "", inputAborted(variable, nil)
	}
	return m.value, nil
}

// PromptSelect implements ValueProvider.
func (f *Fullscreen) PromptSelect(ctx context.Context, variable, prompt string, rows []snippet.Row, defaultIndex int) (int, error) {
	if len(rows) == 0 {
		return 0, emptyChoices(variable)
	}

	model := newSelectModel(prompt, DisplayRows(rows, f.Separator), clampIndex(defaultIndex, len(rows)), f.MaxHeight)
	final, err := f.run(ctx, model)
	if err != nil {
		return 0, selectionAborted(variable, err)
	}
	m, ok := final.(selectModel)
	if !ok || m.aborted || m.chosen < 0 {
		return 0, selectionAborted(variable, nil)
	}
	return m.chosen, nil
}

// selectModel is the bubbletea model for picking one line
type selectModel struct {
	prompt    string
	items     []string
	matches   []fuzzy.Match
	cursor    int
	maxHeight int
	filter    textinput.Model
	chosen    int
	aborted   bool
}

func newSelectModel(prompt string, items []string, defaultIndex, maxHeight int) selectModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	if maxHeight <= 0 {
		maxHeight = DefaultMaxHeight
	}

	m := selectModel{
		prompt:    prompt,
		items:     items,
		maxHeight: maxHeight,
		filter:    ti,
		chosen:    -1,
	}
	m.applyFilter()
	m.cursor = clampIndex(defaultIndex, len(m.matches))
	return m
}

func (m selectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.cursor < len(m.matches) {
				m.chosen = m.matches[m.cursor].Index
				return m, tea.Quit
			}
			return m, nil
		case "up", "ctrl+p":
			m.moveCursor(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveCursor(1)
			return m, nil
		case "pgup":
			m.moveCursor(-m.maxHeight)
			return m, nil
		case "pgdown":
			m.moveCursor(m.maxHeight)
			return m, nil
		}
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
		m.cursor = 0
	}
	return m, cmd
}

func (m *selectModel) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// applyFilter keeps every item when the query is empty, in original order
func (m *selectModel) applyFilter() {
	query := strings.TrimSpace(m.filter.Value())
	if query == "" {
		m.matches = make([]fuzzy.Match, len(m.items))
		for i, item := range m.items {
			m.matches[i] = fuzzy.Match{Str: item, Index: i}
		}
		return
	}
	m.matches = fuzzy.Find(query, m.items)
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(styles.GetStyle("Title").Render(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(styles.GetStyle("Muted").Render("  no matches"))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= m.maxHeight {
		start = m.cursor - m.maxHeight + 1
	}
	end := start + m.maxHeight
	if end > len(m.matches) {
		end = len(m.matches)
	}

	for i := start; i < end; i++ {
		line := highlight(m.matches[i])
		if i == m.cursor {
			b.WriteString(styles.GetStyle("Selected").Render(line))
		} else {
			b.WriteString(styles.GetStyle("Item").Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.GetStyle("Muted").Render(
		fmt.Sprintf("%d/%d  enter select  esc cancel", len(m.matches), len(m.items))))
	return b.String()
}

// highlight underlines the characters the fuzzy query matched
func highlight(match fuzzy.Match) string {
	if len(match.MatchedIndexes) == 0 {
		return match.Str
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}

	style := styles.GetStyle("Match")
	var b strings.Builder
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(style.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// inputModel is the bubbletea model for free text entry
type inputModel struct {
	prompt  string
	input   textinput.Model
	value   string
	aborted bool
}

func newInputModel(prompt, defaultValue string) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 1024
	ti.SetValue(defaultValue)
	ti.Focus()

	return inputModel{prompt: prompt, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			m.value = m.input.Value()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	return styles.GetStyle("Title").Render(m.prompt) + "\n" +
		m.input.View() + "\n\n" +
		styles.GetStyle("Muted").Render("enter accept  esc cancel")
}
