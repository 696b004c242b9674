package resolve

import (
	"sort"

	"github.com/arthur-debert/qcl/pkg/snippet"
)

// Sequence returns the placeholders in resolution order: those with an
// order: modifier first, ascending, then the rest in template order. Ties
// keep their template order.
func Sequence(placeholders []snippet.Placeholder) []snippet.Placeholder {
	var ordered, unordered []snippet.Placeholder
	for _, ph := range placeholders {
		if ph.Order != nil {
			ordered = append(ordered, ph)
		} else {
			unordered = append(unordered, ph)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return *ordered[i].Order < *ordered[j].Order
	})

	return append(ordered, unordered...)
}
