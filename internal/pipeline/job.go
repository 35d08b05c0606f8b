package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

var jobIDPattern = regexp.MustCompile(`job(\d+)`)

// Job is one processing step of the pipeline.
type Job struct {
	// Name is the unique identifier, e.g. "Refine3D/job058/". The trailing
	// slash is significant.
	Name string
	// Alias is the user-assigned display name, e.g. "Select/j007_best_class/".
	// Empty when unset.
	Alias string
	// TypeLabel is the fully-qualified type, e.g. "relion.refine3d".
	TypeLabel string
	// Status is an open-ended label such as "Succeeded", "Failed" or "Running".
	Status string

	// LastCommand is the most recent command from the job's note.txt. Empty
	// unless enrichment found one.
	LastCommand string
	// ModelClasses holds per-class statistics for refinement and
	// classification jobs after enrichment. Nil when unavailable.
	ModelClasses []ModelClassInfo
	// Stats records how the statistics lookup ended.
	Stats StatsOutcome
}

// ModelClassInfo is the statistics of one refinement class.
type ModelClassInfo struct {
	ClassIndex                 int
	ClassDistribution          float64
	AccuracyRotations          float64
	AccuracyTranslationsAngst  float64
	EstimatedResolution        float64
	OverallFourierCompleteness float64
}

// HasAlias reports whether the job has a user-assigned alias.
func (j *Job) HasAlias() bool {
	return j.Alias != ""
}

// JobType is the short type taken from the name, e.g. "Refine3D".
func (j *Job) JobType() string {
	t, _, _ := strings.Cut(j.Name, "/")
	return t
}

// JobID is the "job<NNN>" token of the name, or the full name when the name
// has none. It is used as the diagram node identifier.
func (j *Job) JobID() string {
	if m := jobIDPattern.FindString(j.Name); m != "" {
		return m
	}
	return j.Name
}

// JobNumber is the numeric part of the job ID.
func (j *Job) JobNumber() (int, bool) {
	m := jobIDPattern.FindStringSubmatch(j.Name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// DisplayLabel is the visible diagram text: the alias's last path segment
// and the job type, or the name without its trailing slash.
func (j *Job) DisplayLabel() string {
	if j.HasAlias() {
		segments := strings.Split(strings.TrimRight(j.Alias, "/"), "/")
		return segments[len(segments)-1] + "<br/>" + j.JobType()
	}
	return strings.TrimRight(j.Name, "/")
}
