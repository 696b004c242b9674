package snippet

// Snippet is a named command template. Placeholders are derived from Command
// when the snippet is loaded and are never persisted.
type Snippet struct {
	Name        string    `yaml:"name" toml:"name"`
	Command     string    `yaml:"command" toml:"command"`
	Description string    `yaml:"description,omitempty" toml:"description,omitempty"`
	Function    *Function `yaml:"function,omitempty" toml:"function,omitempty"`

	Placeholders []Placeholder `yaml:"-" toml:"-"`
	Source       string        `yaml:"-" toml:"-"` // File the snippet was loaded from
}

// Function is a snippet-level lookup command whose single chosen row
// resolves several variables at once.
type Function struct {
	From   string         `yaml:"from" toml:"from"`
	Select map[string]int `yaml:"select" toml:"select"`
}

// Placeholder is one [[...]] token of a command template.
type Placeholder struct {
	Name    string
	Default *string
	From    *string
	Select  *int // Column of the chosen row, only meaningful with From
	Order   *int

	// Raw is the full token text including the brackets
	Raw string
	// Start and End are the byte offsets of the token in the template
	Start int
	End   int
	// Ignored lists parts that could not be interpreted, e.g. "select:abc"
	Ignored []string
}

// Row is one line of lookup output split into whitespace separated fields.
type Row []string

// File is the on-disk layout of a snippet file.
type File struct {
	Snippets []Snippet `yaml:"snippets" toml:"snippets"`
}

// DefaultValue returns the default or the empty string when none is set.
func (p Placeholder) DefaultValue() string {
	if p.Default == nil {
		return ""
	}
	return *p.Default
}

// Column returns the selected column, defaulting to the first one.
func (p Placeholder) Column() int {
	if p.Select == nil {
		return 0
	}
	return *p.Select
}

// HasLookup reports whether the value comes from a lookup command.
func (p Placeholder) HasLookup() bool {
	return p.From != nil
}

// Variables returns the distinct placeholder names in template order.
func (s *Snippet) Variables() []string {
	seen := make(map[string]bool)
	var names []string
	for _, ph := range s.Placeholders {
		if seen[ph.Name] {
			continue
		}
		seen[ph.Name] = true
		names = append(names, ph.Name)
	}
	return names
}
