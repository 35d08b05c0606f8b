package app

import (
	"fmt"
	"strings"
)

// JobNotFoundError is returned when the focus job does not resolve to any job
// of the pipeline.
type JobNotFoundError struct {
	Spec      string
	Available []string
}

// Error implements the error interface.
func (e *JobNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "job '%s' not found in pipeline.\nAvailable jobs:", e.Spec)
	for _, name := range e.Available {
		fmt.Fprintf(&b, "\n  %s", name)
	}
	return b.String()
}
