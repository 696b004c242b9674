package provider

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/snippet"
	"github.com/arthur-debert/qcl/pkg/testutil"
)

var hostRows = []snippet.Row{
	{"web1", "10.0.0.1"},
	{"web2", "10.0.0.2"},
	{"db1", "10.0.0.3"},
}

func TestDisplayRows(t *testing.T) {
	assert.Equal(t, []string{"web1 | 10.0.0.1", "web2 | 10.0.0.2", "db1 | 10.0.0.3"}, DisplayRows(hostRows, ""))
	assert.Equal(t, []string{"a,b"}, DisplayRows([]snippet.Row{{"a", "b"}}, ","))
}

func TestUniqueLabels(t *testing.T) {
	assert.Equal(t, []string{"x", "y", "x (2)", "x (3)"}, uniqueLabels([]string{"x", "y", "x", "x"}))
	assert.Equal(t, []string{"a", "a (3)", "a (2)"}, uniqueLabels([]string{"a", "a", "a (2)"}))
	assert.Equal(t, []string{"a (2)", "a", "a (3)"}, uniqueLabels([]string{"a (2)", "a", "a"}))
}

func TestParseAnswers(t *testing.T) {
	answers, err := ParseAnswers([]string{"name=alice", "expr=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "alice", "expr": "a=b", "empty": ""}, answers)

	_, err = ParseAnswers([]string{"novalue"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = ParseAnswers([]string{"=x"})
	assert.Error(t, err)
}

func TestScriptedInput(t *testing.T) {
	ctx := context.Background()
	s := NewScripted(map[string]string{"name": "alice"})

	got, err := s.PromptInput(ctx, "name", "Enter name", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)

	got, err = s.PromptInput(ctx, "other", "Enter other", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", got)

	require.Len(t, s.Calls, 2)
	assert.Equal(t, Call{Kind: CallInput, Variable: "name", Prompt: "Enter name", Default: "bob"}, s.Calls[0])
}

func TestScriptedSelect(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		answer string
		want   int
	}{
		{"first field", "web2", 1},
		{"whole row", "db1 10.0.0.3", 2},
		{"index", "2", 2},
		{"field wins over index", "web1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScripted(map[string]string{"host": tt.answer})
			got, err := s.PromptSelect(ctx, "host", "Pick", hostRows, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScriptedSelectErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty rows", func(t *testing.T) {
		_, err := NewScripted(nil).PromptSelect(ctx, "host", "Pick", nil, 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyChoiceSet))
	})

	t.Run("no match", func(t *testing.T) {
		s := NewScripted(map[string]string{"host": "web9"})
		_, err := s.PromptSelect(ctx, "host", "Pick", hostRows, 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("index out of range", func(t *testing.T) {
		s := NewScripted(map[string]string{"host": "7"})
		_, err := s.PromptSelect(ctx, "host", "Pick", hostRows, 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("abort", func(t *testing.T) {
		s := NewScripted(nil)
		s.AbortOn["host"] = true
		_, err := s.PromptSelect(ctx, "host", "Pick", hostRows, 0)
		assert.True(t, errors.IsErrorCode(err, errors.ErrSelectionAborted))

		s.AbortOn["name"] = true
		_, err = s.PromptInput(ctx, "name", "Name", "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInputAborted))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewScripted(nil).PromptSelect(cctx, "host", "Pick", hostRows, 0)
		assert.True(t, errors.IsAborted(err))
	})
}

func TestScriptedDefaultsAndFallback(t *testing.T) {
	ctx := context.Background()

	s := NewScripted(nil)
	got, err := s.PromptSelect(ctx, "host", "Pick", hostRows, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, got)

	got, err = s.PromptSelect(ctx, "host", "Pick", hostRows, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	fallback := NewScripted(map[string]string{"host": "db1", "name": "carol"})
	s = NewScripted(map[string]string{"name": "alice"})
	s.Fallback = fallback

	got, err = s.PromptSelect(ctx, "host", "Pick", hostRows, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	value, err := s.PromptInput(ctx, "name", "Name", "")
	require.NoError(t, err)
	assert.Equal(t, "alice", value)
	assert.Len(t, fallback.Calls, 1)
}

func TestTerminalNonInteractive(t *testing.T) {
	ctx := context.Background()
	term := NewTerminal(" | ", 5)
	term.In = testutil.InputPipe(t, "typed\n\n")

	got, err := term.PromptInput(ctx, "a", "A", "def")
	require.NoError(t, err)
	assert.Equal(t, "typed", got)

	got, err = term.PromptInput(ctx, "b", "B", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", got)

	got, err = term.PromptInput(ctx, "c", "C", "eof")
	require.NoError(t, err)
	assert.Equal(t, "eof", got)

	index, err := term.PromptSelect(ctx, "host", "Pick", hostRows, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, index)

	_, err = term.PromptSelect(ctx, "host", "Pick", nil, 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyChoiceSet))
}

func TestFullscreenEmptyRows(t *testing.T) {
	_, err := NewFullscreen("", 0).PromptSelect(context.Background(), "host", "Pick", nil, 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrEmptyChoiceSet))
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(m tea.Model, text string) tea.Model {
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestSelectModelNavigation(t *testing.T) {
	var m tea.Model = newSelectModel("Pick", DisplayRows(hostRows, ""), 1, 10)
	assert.Equal(t, 1, m.(selectModel).cursor)

	m, _ = m.Update(key(tea.KeyDown))
	m, _ = m.Update(key(tea.KeyDown))
	assert.Equal(t, 2, m.(selectModel).cursor)

	m, _ = m.Update(key(tea.KeyUp))
	m, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.(selectModel).chosen)
	assert.False(t, m.(selectModel).aborted)
}

func TestSelectModelFilter(t *testing.T) {
	var m tea.Model = newSelectModel("Pick", DisplayRows(hostRows, ""), 0, 10)

	m = typeText(m, "db")
	sm := m.(selectModel)
	require.NotEmpty(t, sm.matches)
	assert.Equal(t, 2, sm.matches[0].Index)
	assert.Contains(t, sm.View(), "db1")

	m, _ = m.Update(key(tea.KeyEnter))
	assert.Equal(t, 2, m.(selectModel).chosen)
}

func TestSelectModelNoMatches(t *testing.T) {
	var m tea.Model = newSelectModel("Pick", DisplayRows(hostRows, ""), 0, 10)
	m = typeText(m, "zzzz")
	assert.Empty(t, m.(selectModel).matches)
	assert.Contains(t, m.View(), "no matches")

	m, cmd := m.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, -1, m.(selectModel).chosen)
}

func TestSelectModelAbort(t *testing.T) {
	var m tea.Model = newSelectModel("Pick", DisplayRows(hostRows, ""), 0, 10)
	m, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.True(t, m.(selectModel).aborted)
}

func TestSelectModelScrolls(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	var m tea.Model = newSelectModel("Pick", items, 0, 2)
	for i := 0; i < 4; i++ {
		m, _ = m.Update(key(tea.KeyDown))
	}
	view := m.View()
	assert.Contains(t, view, "e")
	assert.NotContains(t, view, "\n  a\n")

	m, _ = m.Update(key(tea.KeyDown))
	assert.Equal(t, 4, m.(selectModel).cursor)
}

func TestInputModel(t *testing.T) {
	var m tea.Model = newInputModel("Name", "wor")
	m = typeText(m, "ld")
	m, cmd := m.Update(key(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, "world", m.(inputModel).value)

	m = newInputModel("Name", "x")
	m, _ = m.Update(key(tea.KeyCtrlC))
	assert.True(t, m.(inputModel).aborted)
}
