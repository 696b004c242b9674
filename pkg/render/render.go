// Package render substitutes resolved variable values into a command
// template.
package render

import (
	"strings"

	"github.com/arthur-debert/qcl/pkg/snippet"
)

// Render replaces every token whose name has a value in vars with that
// value, in a single left-to-right pass. Substituted values are never
// rescanned for tokens. Tokens without a value, including tokens with no
// name, are kept verbatim and returned in unresolved in template order.
func Render(template string, vars map[string]string) (string, []string) {
	tokens := snippet.Tokens(template)
	if len(tokens) == 0 {
		return template, nil
	}

	var (
		b          strings.Builder
		unresolved []string
		last       int
	)
	b.Grow(len(template))

	for _, tok := range tokens {
		b.WriteString(template[last:tok.Start])
		last = tok.End

		raw := template[tok.Start:tok.End]
		name := snippet.ParsePlaceholder(tok.Content).Name
		value, ok := vars[name]
		if name == "" || !ok {
			b.WriteString(raw)
			unresolved = append(unresolved, raw)
			continue
		}
		b.WriteString(value)
	}
	b.WriteString(template[last:])

	return b.String(), unresolved
}
