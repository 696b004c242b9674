package snippet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "snippets.yaml", `
snippets:
  - name: greet
    command: echo Hello, [[name=world]]!
  - name: ssh
    description: Connect to a host
    command: ssh [[user]]@[[host]]
    function:
      from: cat hosts
      select:
        user: 0
        host: 1
`)

	snippets, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, snippets, 2)

	assert.Equal(t, "greet", snippets[0].Name)
	assert.Equal(t, path, snippets[0].Source)
	require.Len(t, snippets[0].Placeholders, 1)
	assert.Equal(t, "name", snippets[0].Placeholders[0].Name)

	ssh := snippets[1]
	assert.Equal(t, "Connect to a host", ssh.Description)
	require.NotNil(t, ssh.Function)
	assert.Equal(t, "cat hosts", ssh.Function.From)
	assert.Equal(t, map[string]int{"user": 0, "host": 1}, ssh.Function.Select)
	assert.Len(t, ssh.Placeholders, 2)
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "snippets.toml", `
[[snippets]]
name = "logs"
command = "kubectl logs [[pod from:\"kubectl get pods\" select:0]]"

[[snippets]]
name = "row"
command = "echo [[a]] [[b]]"

[snippets.function]
from = "printf 'x y\n'"

[snippets.function.select]
a = 0
b = 1
`)

	snippets, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, snippets, 2)

	assert.Equal(t, "logs", snippets[0].Name)
	require.Len(t, snippets[0].Placeholders, 1)
	require.NotNil(t, snippets[0].Placeholders[0].From)
	assert.Equal(t, "kubectl get pods", *snippets[0].Placeholders[0].From)

	require.NotNil(t, snippets[1].Function)
	assert.Equal(t, map[string]int{"a": 0, "b": 1}, snippets[1].Function.Select)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		wantCode errors.ErrorCode
	}{
		{
			name:     "missing file",
			path:     filepath.Join(dir, "nope.yaml"),
			wantCode: errors.ErrFileNotFound,
		},
		{
			name:     "broken yaml",
			path:     writeFile(t, dir, "broken.yaml", "snippets: [\n"),
			wantCode: errors.ErrConfigParse,
		},
		{
			name:     "unknown field",
			path:     writeFile(t, dir, "typo.yaml", "snippets:\n  - name: a\n    comand: ls\n"),
			wantCode: errors.ErrConfigValid,
		},
		{
			name:     "negative column",
			path:     writeFile(t, dir, "neg.yaml", "snippets:\n  - name: a\n    command: ls\n    function:\n      from: ls\n      select: {a: -1}\n"),
			wantCode: errors.ErrConfigValid,
		},
		{
			name:     "missing snippets key",
			path:     writeFile(t, dir, "other.yaml", "commands: []\n"),
			wantCode: errors.ErrConfigValid,
		},
		{
			name:     "broken toml",
			path:     writeFile(t, dir, "broken.toml", "[[snippets]\n"),
			wantCode: errors.ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err), "error: %v", err)
			assert.Equal(t, tt.path, errors.GetErrorDetails(err)[errors.DetailPath])
		})
	}
}

func TestLoadFileEmpty(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.yaml", "")

	snippets, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, snippets)
}

func TestMerge(t *testing.T) {
	base := []Snippet{
		{Name: "a", Command: "echo a1"},
		{Name: "b", Command: "echo b1"},
	}
	override := []Snippet{
		{Name: "c", Command: "echo c2"},
		{Name: "a", Command: "echo a2"},
	}

	merged := Merge(base, override)

	require.Len(t, merged, 3)
	assert.Equal(t, "a", merged[0].Name)
	assert.Equal(t, "echo a2", merged[0].Command, "later writer wins")
	assert.Equal(t, "b", merged[1].Name)
	assert.Equal(t, "c", merged[2].Name)
}

func TestLoadFilesMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", "snippets:\n  - name: a\n    command: echo first\n  - name: b\n    command: echo b\n")
	second := writeFile(t, dir, "second.yaml", "snippets:\n  - name: a\n    command: echo second\n")

	snippets, err := LoadFiles([]string{first, second})
	require.NoError(t, err)
	require.Len(t, snippets, 2)
	assert.Equal(t, "echo second", snippets[0].Command)
	assert.Equal(t, second, snippets[0].Source)
	assert.Equal(t, "b", snippets[1].Name)
}

func TestEnsureDefaultFile(t *testing.T) {
	for _, name := range []string{"snippets.yaml", "snippets.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "qcl", name)

			created, err := EnsureDefaultFile(path)
			require.NoError(t, err)
			assert.True(t, created)

			snippets, err := LoadFile(path)
			require.NoError(t, err)
			require.Len(t, snippets, 1)
			assert.Equal(t, ExampleSnippet.Name, snippets[0].Name)
			assert.Equal(t, ExampleSnippet.Command, snippets[0].Command)

			created, err = EnsureDefaultFile(path)
			require.NoError(t, err)
			assert.False(t, created, "existing file is left alone")
		})
	}
}

func TestFindAndSuggest(t *testing.T) {
	snippets := []Snippet{
		{Name: "deploy"},
		{Name: "docker-ps"},
		{Name: "git-log"},
	}

	s, ok := Find(snippets, "git-log")
	require.True(t, ok)
	assert.Equal(t, "git-log", s.Name)

	_, ok = Find(snippets, "missing")
	assert.False(t, ok)

	assert.Contains(t, Suggest(snippets, "dps"), "docker-ps")
	assert.Contains(t, Suggest(snippets, "deplyo"), "deploy")
	assert.Empty(t, Suggest(snippets, "zzzzzz"))
}

func TestLookup(t *testing.T) {
	snippets := []Snippet{{Name: "deploy"}, {Name: "destroy"}}

	s, err := Lookup(snippets, "destroy")
	require.NoError(t, err)
	assert.Equal(t, "destroy", s.Name)

	_, err = Lookup(snippets, "deplyo")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSnippetNotFound))
	assert.Contains(t, err.Error(), "did you mean deploy")
	assert.Equal(t, []string{"deploy"}, errors.GetErrorDetails(err)["suggestions"])

	_, err = Lookup(snippets, "zzzzzzzz")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}
