package cmd

import (
	"fmt"
	"io"

	sim "github.com/vaxsim/vaxsim/sim"
)

// Report renders a run's milestone log to w, one "YYYY-MM-DD: description"
// line per milestone, in the order they were recorded.
func Report(w io.Writer, passed []sim.PassedMilestone) {
	for _, p := range passed {
		fmt.Fprintf(w, "%s: %s\n", p.Date.Format(sim.ISODateLayout), p.Description)
	}
}
