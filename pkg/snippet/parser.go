package snippet

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	prefixFrom   = "from:"
	prefixSelect = "select:"
	prefixOrder  = "order:"
)

var tokenPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// Token is the location of one [[...]] occurrence in a template.
type Token struct {
	Start   int
	End     int
	Content string
}

// Tokens finds every placeholder token in command, left to right.
func Tokens(command string) []Token {
	matches := tokenPattern.FindAllStringSubmatchIndex(command, -1)
	tokens := make([]Token, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, Token{
			Start:   m[0],
			End:     m[1],
			Content: command[m[2]:m[3]],
		})
	}
	return tokens
}

// ParsePlaceholders extracts the placeholders of a command template in
// the order they appear.
func ParsePlaceholders(command string) []Placeholder {
	tokens := Tokens(command)
	placeholders := make([]Placeholder, 0, len(tokens))
	for _, tok := range tokens {
		ph := ParsePlaceholder(tok.Content)
		ph.Raw = command[tok.Start:tok.End]
		ph.Start = tok.Start
		ph.End = tok.End
		placeholders = append(placeholders, ph)
	}
	return placeholders
}

// ParsePlaceholder interprets the content between [[ and ]].
//
// Parts are evaluated left to right and the first matching rule wins:
// name=default (only while no name is set), from:"cmd", select:N, order:N,
// and finally a bare name. Unparseable select/order values leave the field
// unset.
func ParsePlaceholder(content string) Placeholder {
	var ph Placeholder

	for _, part := range splitParts(content) {
		switch {
		case strings.Contains(part, "=") && ph.Name == "":
			name, def, _ := strings.Cut(part, "=")
			ph.Name = name
			ph.Default = &def
		case strings.HasPrefix(part, prefixFrom):
			from := strings.Trim(strings.TrimPrefix(part, prefixFrom), `"`)
			ph.From = &from
		case strings.HasPrefix(part, prefixSelect):
			if n, ok := parseIndex(strings.TrimPrefix(part, prefixSelect)); ok {
				ph.Select = &n
			} else {
				ph.Ignored = append(ph.Ignored, part)
			}
		case strings.HasPrefix(part, prefixOrder):
			if n, ok := parseIndex(strings.TrimPrefix(part, prefixOrder)); ok {
				ph.Order = &n
			} else {
				ph.Ignored = append(ph.Ignored, part)
			}
		case ph.Name == "":
			ph.Name = part
		default:
			ph.Ignored = append(ph.Ignored, part)
		}
	}

	return ph
}

func parseIndex(s string) (int, bool) {
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

// splitParts splits on whitespace outside double quotes, so that
// from:"ls -1 /tmp" stays a single part.
func splitParts(content string) []string {
	var parts []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for _, r := range content {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return parts
}
