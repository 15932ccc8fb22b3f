package taskimport

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/taskkit"
	"github.com/dmitrymomot/taskkit/pkg/taskerr"
)

// RecordError ties a rejected record's position in the import file to its
// accumulated validation failures.
type RecordError struct {
	Index  int                `json:"index"`
	Errors taskerr.Collection `json:"errors"`
}

// Report is the outcome of one import run. Every record in the file is
// accounted for either under Imported or under Failed.
type Report struct {
	Total    int             `json:"total"`
	Imported []*taskkit.Task `json:"imported"`
	Failed   []RecordError   `json:"failed,omitempty"`
}

// OK reports whether every record validated.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Format renders a human-readable account of the run: a summary line, then
// one block per rejected record reusing the collection rendering. Output
// depends only on the report contents.
func (r *Report) Format(includeDetails bool) string {
	if r.OK() {
		return fmt.Sprintf("Imported %d of %d task(s)", len(r.Imported), r.Total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Imported %d of %d task(s), %d failed", len(r.Imported), r.Total, len(r.Failed))
	for _, f := range r.Failed {
		fmt.Fprintf(&b, "\nRecord %d: %s", f.Index, f.Errors.Format(includeDetails))
	}
	return b.String()
}
