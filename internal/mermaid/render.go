package mermaid

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/relionviz/internal/config"
	"github.com/specialistvlad/relionviz/internal/dag"
	"github.com/specialistvlad/relionviz/internal/pipeline"
)

const indent = "    "

// Render emits the flowchart for the given jobs and edges. Jobs unknown to p
// are skipped, as are edges with an unknown endpoint. A nil styles falls back
// to the built-in palette. Inputs are never modified.
func Render(jobs dag.NodeSet, edges dag.EdgeSet, p *pipeline.Pipeline, styles *config.Styles) string {
	if styles == nil {
		styles = config.DefaultStyles()
	}

	var b strings.Builder
	b.WriteString("graph TD\n")

	typeMembers := map[string][]string{}
	statusMembers := map[string][]string{}

	for _, name := range jobs.Sorted() {
		job, ok := p.Jobs[name]
		if !ok {
			continue
		}
		id := job.JobID()
		fmt.Fprintf(&b, "%s%s[\"%s\"]\n", indent, id, escapeLabel(job.DisplayLabel()))

		if _, ok := styles.TypeStyle(job.JobType()); ok {
			typeMembers[job.JobType()] = append(typeMembers[job.JobType()], id)
		}
		if _, ok := styles.StatusStyle(job.Status); ok {
			statusMembers[job.Status] = append(statusMembers[job.Status], id)
		}
	}
	b.WriteString("\n")

	for _, e := range edges.Sorted() {
		src, ok := p.Jobs[e.From]
		if !ok {
			continue
		}
		dst, ok := p.Jobs[e.To]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s%s --> %s\n", indent, src.JobID(), dst.JobID())
	}
	b.WriteString("\n")

	for _, r := range styles.Types {
		fmt.Fprintf(&b, "%sclassDef %s %s\n", indent, className(r.Key), r.Style)
	}
	for _, r := range styles.Statuses {
		fmt.Fprintf(&b, "%sclassDef %s %s\n", indent, className(r.Key), r.Style)
	}
	b.WriteString("\n")

	// Status classes come last so their stroke wins over the type's.
	writeClassAssignments(&b, typeMembers)
	writeClassAssignments(&b, statusMembers)

	return b.String()
}

func writeClassAssignments(b *strings.Builder, members map[string][]string) {
	keys := make([]string, 0, len(members))
	for k := range members {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		ids := append([]string(nil), members[k]...)
		sort.Strings(ids)
		fmt.Fprintf(b, "%sclass %s %s\n", indent, strings.Join(ids, ","), className(k))
	}
}

func className(key string) string {
	return strings.ToLower(key)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, "#quot;")
}
