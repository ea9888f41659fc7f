package survey

import (
	"fmt"
	"strings"
)

// validateCatalog performs structural checks on the question list.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(qs []Question) error {
	var errs []string

	fields := make(map[Field]bool, len(qs))
	texts := make(map[string]bool, len(qs))

	for _, q := range qs {
		if q.Field == "" {
			errs = append(errs, fmt.Sprintf("question %q has no field", q.Text))
		}
		if fields[q.Field] {
			errs = append(errs, fmt.Sprintf("duplicate field: %q", q.Field))
		}
		fields[q.Field] = true

		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("field %q has no question text", q.Field))
		}
		if texts[q.Text] {
			errs = append(errs, fmt.Sprintf("duplicate question text: %q", q.Text))
		}
		texts[q.Text] = true

		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("field %q has %d options, want at least 2", q.Field, len(q.Options)))
		}
		seen := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if seen[o] {
				errs = append(errs, fmt.Sprintf("field %q repeats option %q", q.Field, o))
			}
			seen[o] = true
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
