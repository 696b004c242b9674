package cli

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/qcl/pkg/errors"
)

// FormatError renders err as the single failure line, naming the snippet
// and variable it happened in when they are known.
func FormatError(err error) string {
	line := fmt.Sprintf("Error: %v", err)

	details := errors.GetErrorDetails(err)
	var where []string
	for _, key := range []string{errors.DetailSnippet, errors.DetailVariable} {
		value, ok := details[key].(string)
		if !ok || value == "" {
			continue
		}
		where = append(where, fmt.Sprintf("%s %q", key, value))
	}
	if len(where) > 0 {
		line += " (" + strings.Join(where, ", ") + ")"
	}

	return strings.ReplaceAll(line, "\n", " ")
}
