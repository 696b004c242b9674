package snippet

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/qcl/pkg/errors"
	"github.com/arthur-debert/qcl/pkg/logging"
	"github.com/lithammer/fuzzysearch/fuzzy"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a snippet file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

const maxSuggestDistance = 2

// ExampleSnippet is written to a freshly created default snippet file.
var ExampleSnippet = Snippet{
	Name:    "example",
	Command: "echo Hello, [[name=world]]!",
}

// FormatForPath picks the decoder from the file extension. Anything that is
// not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadFile reads one snippet file and parses the placeholders of every
// snippet it defines.
func LoadFile(path string) ([]Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "snippet file does not exist: %s", path).
				WithDetail(errors.DetailPath, path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read snippet file: %s", path).
			WithDetail(errors.DetailPath, path)
	}

	snippets, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, errors.Annotate(err, errors.DetailPath, path)
	}

	for i := range snippets {
		snippets[i].Source = path
	}

	logger := logging.GetLogger("snippet")
	logger.Debug().Str("path", path).Int("count", len(snippets)).Msg("Loaded snippet file")

	return snippets, nil
}

// Parse decodes snippet file content, validates it against the file schema
// and derives placeholders.
func Parse(data []byte, format Format) ([]Snippet, error) {
	var doc interface{}
	var file File

	switch format {
	case FormatTOML:
		var m map[string]interface{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse TOML")
		}
		if len(m) > 0 {
			doc = m
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse YAML")
		}
	}

	// An empty file defines no snippets
	if doc == nil {
		return nil, nil
	}

	if err := validateDocument(doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid snippet file")
	}

	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode snippets")
	}

	for i := range file.Snippets {
		file.Snippets[i].Placeholders = ParsePlaceholders(file.Snippets[i].Command)
	}

	return file.Snippets, nil
}

// Merge combines snippet sets. A later snippet replaces an earlier one with
// the same name but keeps the position where that name was first seen.
func Merge(sets ...[]Snippet) []Snippet {
	index := make(map[string]int)
	var merged []Snippet

	for _, set := range sets {
		for _, s := range set {
			if i, ok := index[s.Name]; ok {
				merged[i] = s
				continue
			}
			index[s.Name] = len(merged)
			merged = append(merged, s)
		}
	}

	return merged
}

// LoadFiles loads and merges several snippet files in order.
func LoadFiles(files []string) ([]Snippet, error) {
	sets := make([][]Snippet, 0, len(files))
	for _, file := range files {
		snippets, err := LoadFile(file)
		if err != nil {
			return nil, err
		}
		sets = append(sets, snippets)
	}
	return Merge(sets...), nil
}

// EnsureDefaultFile creates path with ExampleSnippet when it does not exist.
// It reports whether a file was created.
func EnsureDefaultFile(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to create %s", filepath.Dir(path))
	}

	var data []byte
	var err error
	file := File{Snippets: []Snippet{ExampleSnippet}}
	switch FormatForPath(path) {
	case FormatTOML:
		data, err = toml.Marshal(file)
	default:
		data, err = yaml.Marshal(file)
	}
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInternal, "failed to encode example snippet")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrConfigLoad, "failed to write %s", path)
	}

	return true, nil
}

// Find returns the snippet with the given name.
func Find(snippets []Snippet, name string) (*Snippet, bool) {
	for i := range snippets {
		if snippets[i].Name == name {
			return &snippets[i], true
		}
	}
	return nil, false
}

// Suggest returns snippet names that fuzzily match name, best first.
// Subsequence matches come first, then names within a small edit distance.
func Suggest(snippets []Snippet, name string) []string {
	names := make([]string, len(snippets))
	for i, s := range snippets {
		names[i] = s.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Sort(ranks)

	seen := make(map[string]bool)
	suggestions := make([]string, 0, len(ranks))
	for _, r := range ranks {
		seen[r.Target] = true
		suggestions = append(suggestions, r.Target)
	}

	lower := strings.ToLower(name)
	for _, n := range names {
		if seen[n] {
			continue
		}
		if fuzzy.LevenshteinDistance(lower, strings.ToLower(n)) <= maxSuggestDistance {
			seen[n] = true
			suggestions = append(suggestions, n)
		}
	}

	return suggestions
}

// Lookup is Find that returns SNIPPET_NOT_FOUND, with "did you mean"
// suggestions in the message, when no snippet has the name.
func Lookup(snippets []Snippet, name string) (*Snippet, error) {
	if s, ok := Find(snippets, name); ok {
		return s, nil
	}

	err := errors.Newf(errors.ErrSnippetNotFound, "no snippet named %q", name).
		WithDetail(errors.DetailSnippet, name)
	if suggestions := Suggest(snippets, name); len(suggestions) > 0 {
		err.Message += " (did you mean " + strings.Join(suggestions, ", ") + "?)"
		err.WithDetail("suggestions", suggestions)
	}
	return nil, err
}
