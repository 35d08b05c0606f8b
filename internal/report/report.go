// Package report prints the job listing of a pipeline in tabular or
// machine-readable form.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/specialistvlad/relionviz/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Formats lists the accepted format names.
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// Record is one listed job.
type Record struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Alias     string `json:"alias,omitempty" yaml:"alias,omitempty"`
	Type      string `json:"type" yaml:"type"`
	TypeLabel string `json:"type_label" yaml:"type_label"`
	Status    string `json:"status" yaml:"status"`
	Stats     string `json:"stats" yaml:"stats"`
}

// Records converts jobs to records sorted by job name.
func Records(jobs []*pipeline.Job) []Record {
	out := make([]Record, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, Record{
			ID:        j.JobID(),
			Name:      j.Name,
			Alias:     j.Alias,
			Type:      j.JobType(),
			TypeLabel: j.TypeLabel,
			Status:    j.Status,
			Stats:     j.Stats.String(),
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return out
}

// WriteJobs writes jobs to w in the given format.
func WriteJobs(w io.Writer, jobs []*pipeline.Job, format string) error {
	records := Records(jobs)

	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode jobs: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode jobs: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
		if len(records) == 0 {
			_, err := fmt.Fprintln(w, "nothing to display...")
			return err
		}
		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"ID", "Name", "Alias", "Type", "Status", "Stats"})
		table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		table.SetCenterSeparator("|")
		for _, r := range records {
			table.Append([]string{r.ID, r.Name, r.Alias, r.Type, r.Status, r.Stats})
		}
		table.Render()
		return nil
	default:
		return fmt.Errorf("unknown format %q (expected one of %v)", format, Formats)
	}
}
