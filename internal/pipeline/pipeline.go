package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/relionviz/internal/ctxlog"
	"github.com/specialistvlad/relionviz/internal/dag"
	"github.com/specialistvlad/relionviz/internal/starfile"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when the pipeline file or one of its tables is
// absent.
var ErrNotFound = starfile.ErrNotFound

// noAlias is the literal RELION writes for jobs without an alias.
const noAlias = "None"

const (
	blockProcesses   = "pipeline_processes"
	blockInputEdges  = "pipeline_input_edges"
	blockOutputEdges = "pipeline_output_edges"

	colProcessName   = "rlnPipeLineProcessName"
	colProcessAlias  = "rlnPipeLineProcessAlias"
	colProcessType   = "rlnPipeLineProcessTypeLabel"
	colProcessStatus = "rlnPipeLineProcessStatusLabel"
	colEdgeProcess   = "rlnPipeLineEdgeProcess"
	colEdgeFromNode  = "rlnPipeLineEdgeFromNode"
	colEdgeToNode    = "rlnPipeLineEdgeToNode"
)

// Pipeline is a parsed pipeline file.
type Pipeline struct {
	// Jobs is keyed by job name.
	Jobs map[string]*Job
	// Edges are directed (producer, consumer) pairs without self-loops.
	Edges dag.EdgeSet
}

// New returns an empty pipeline.
func New() *Pipeline {
	return &Pipeline{
		Jobs:  make(map[string]*Job),
		Edges: make(dag.EdgeSet),
	}
}

// Names returns all job names in lexicographic order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.Jobs))
	for name := range p.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Graph builds the dependency graph of the pipeline.
func (p *Pipeline) Graph() *dag.Graph {
	g := dag.New()
	for name := range p.Jobs {
		g.AddNode(name)
	}
	for e := range p.Edges {
		// Parse never stores self-loops, the only case AddEdge rejects.
		_ = g.AddEdge(e.From, e.To)
	}
	return g
}

// Parse reads a pipeline STAR file. A missing file or table wraps
// ErrNotFound; a missing column is reported as a *starfile.ParseError.
func Parse(ctx context.Context, afs afero.Fs, path string) (*Pipeline, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing pipeline file.", "path", path)

	f, err := starfile.ReadFile(afs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline %s: %w", path, err)
	}

	p := New()
	if err := p.readProcesses(f); err != nil {
		return nil, err
	}

	producers, err := readProducers(f)
	if err != nil {
		return nil, err
	}
	if err := p.readInputEdges(f, producers); err != nil {
		return nil, err
	}

	logger.Debug("Pipeline parsed.", "jobs", len(p.Jobs), "edges", len(p.Edges), "data_nodes", len(producers))
	return p, nil
}

func (p *Pipeline) readProcesses(f *starfile.File) error {
	t, err := f.Table(blockProcesses)
	if err != nil {
		return err
	}
	cols, err := t.Columns(colProcessName, colProcessAlias, colProcessType, colProcessStatus)
	if err != nil {
		return err
	}

	for _, row := range t.Rows {
		alias := row[cols[1]]
		if alias == noAlias {
			alias = ""
		}
		name := row[cols[0]]
		p.Jobs[name] = &Job{
			Name:      name,
			Alias:     alias,
			TypeLabel: row[cols[2]],
			Status:    row[cols[3]],
		}
	}
	return nil
}

// readProducers maps each data node to the job that wrote it. When several
// rows claim the same node the last one wins.
func readProducers(f *starfile.File) (map[string]string, error) {
	t, err := f.Table(blockOutputEdges)
	if err != nil {
		return nil, err
	}
	cols, err := t.Columns(colEdgeProcess, colEdgeToNode)
	if err != nil {
		return nil, err
	}

	producers := make(map[string]string, t.Len())
	for _, row := range t.Rows {
		producers[row[cols[1]]] = row[cols[0]]
	}
	return producers, nil
}

func (p *Pipeline) readInputEdges(f *starfile.File, producers map[string]string) error {
	t, err := f.Table(blockInputEdges)
	if err != nil {
		return err
	}
	cols, err := t.Columns(colEdgeFromNode, colEdgeProcess)
	if err != nil {
		return err
	}

	for _, row := range t.Rows {
		consumer := row[cols[1]]
		producer, ok := producers[row[cols[0]]]
		if !ok || producer == "" || producer == consumer {
			continue
		}
		p.Edges.Add(dag.Edge{From: producer, To: consumer})
	}
	return nil
}
