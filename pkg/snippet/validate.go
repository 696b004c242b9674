package snippet

import (
	"fmt"
	"sort"
)

// Issue describes a problem found in a snippet definition.
type Issue struct {
	Snippet string
	Token   string
	Message string
}

func (i Issue) String() string {
	if i.Token == "" {
		return fmt.Sprintf("%s: %s", i.Snippet, i.Message)
	}
	return fmt.Sprintf("%s: %s: %s", i.Snippet, i.Token, i.Message)
}

// Validate reports malformed tokens and attributes that will be ignored at
// resolution time. A snippet without issues resolves without surprises.
func Validate(s *Snippet) []Issue {
	var issues []Issue
	add := func(token, format string, args ...interface{}) {
		issues = append(issues, Issue{Snippet: s.Name, Token: token, Message: fmt.Sprintf(format, args...)})
	}

	if s.Name == "" {
		add("", "snippet has no name")
	}

	for _, ph := range s.Placeholders {
		if ph.Name == "" {
			add(ph.Raw, "placeholder has no name")
		}
		if ph.Select != nil && ph.From == nil {
			add(ph.Raw, "select:%d has no effect without from:", *ph.Select)
		}
		if ph.From != nil && *ph.From == "" {
			add(ph.Raw, "from: command is empty")
		}
		for _, part := range ph.Ignored {
			add(ph.Raw, "ignored %q", part)
		}
	}

	if s.Function != nil {
		if s.Function.From == "" {
			add("", "function has no from: command")
		}
		used := make(map[string]bool)
		for _, ph := range s.Placeholders {
			used[ph.Name] = true
		}
		names := make([]string, 0, len(s.Function.Select))
		for name := range s.Function.Select {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if s.Function.Select[name] < 0 {
				add("", "function column for %s is negative", name)
			}
			if !used[name] {
				add("", "function selects %s but the command never uses it", name)
			}
		}
	}

	return issues
}
