package viewer

import (
	"strconv"

	"github.com/specialistvlad/relionviz/internal/dag"
	"github.com/specialistvlad/relionviz/internal/pipeline"
)

// MaxCommandRunes bounds the command shown in a tooltip.
const MaxCommandRunes = 300

// ClassInfo is one row of a job's class statistics, formatted for display.
type ClassInfo struct {
	Class                int    `json:"class"`
	Distribution         string `json:"distribution"`
	AccuracyRotations    string `json:"accuracy_rotations"`
	AccuracyTranslations string `json:"accuracy_translations"`
	Resolution           string `json:"resolution"`
	Completeness         string `json:"completeness"`
}

// JobInfo is the tooltip payload of one diagram node.
type JobInfo struct {
	Name         string      `json:"name"`
	Alias        *string     `json:"alias"`
	TypeLabel    string      `json:"type_label"`
	Status       string      `json:"status"`
	LastCommand  string      `json:"last_command,omitempty"`
	Stats        string      `json:"stats"`
	ModelClasses []ClassInfo `json:"model_classes,omitempty"`
}

// BuildJobInfo returns the tooltip payloads of jobs keyed by diagram node ID.
// Jobs unknown to p are skipped.
func BuildJobInfo(jobs dag.NodeSet, p *pipeline.Pipeline) map[string]JobInfo {
	out := make(map[string]JobInfo, len(jobs))
	for _, name := range jobs.Sorted() {
		job, ok := p.Jobs[name]
		if !ok {
			continue
		}
		out[job.JobID()] = newJobInfo(job)
	}
	return out
}

func newJobInfo(job *pipeline.Job) JobInfo {
	info := JobInfo{
		Name:        job.Name,
		TypeLabel:   job.TypeLabel,
		Status:      job.Status,
		LastCommand: truncate(job.LastCommand, MaxCommandRunes),
		Stats:       job.Stats.String(),
	}
	if job.HasAlias() {
		alias := job.Alias
		info.Alias = &alias
	}
	for _, c := range job.ModelClasses {
		info.ModelClasses = append(info.ModelClasses, ClassInfo{
			Class:                c.ClassIndex,
			Distribution:         fixed(c.ClassDistribution, 3),
			AccuracyRotations:    fixed(c.AccuracyRotations, 2),
			AccuracyTranslations: fixed(c.AccuracyTranslationsAngst, 2),
			Resolution:           fixed(c.EstimatedResolution, 2),
			Completeness:         fixed(c.OverallFourierCompleteness, 3),
		})
	}
	return info
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
