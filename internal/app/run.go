package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/specialistvlad/relionviz/internal/config"
	"github.com/specialistvlad/relionviz/internal/dag"
	"github.com/specialistvlad/relionviz/internal/fsutil"
	"github.com/specialistvlad/relionviz/internal/mermaid"
	"github.com/specialistvlad/relionviz/internal/pipeline"
	"github.com/specialistvlad/relionviz/internal/report"
	"github.com/specialistvlad/relionviz/internal/viewer"
	"github.com/spf13/afero"
)

const pageTitle = "RELION Pipeline"

// Run executes the conversion: parse, enrich, select the subgraph, render
// and write the artifacts.
func (a *App) Run(ctx context.Context) error {
	ctx = a.context(ctx)
	cfg := a.config
	a.logger.Debug("App.Run method started.")

	p, err := pipeline.Parse(ctx, a.fs, cfg.StarPath)
	if err != nil {
		return fmt.Errorf("failed to read pipeline: %w", err)
	}
	a.logger.Info("Pipeline parsed.", "jobs", len(p.Jobs), "edges", len(p.Edges))

	if !cfg.NoEnrich {
		summary := pipeline.Enrich(ctx, a.fs, p, cfg.ProjectDir)
		a.logger.Info("Pipeline enriched.",
			"commands", summary.Commands,
			"models", summary.Models,
			"malformed_models", summary.Malformed,
		)
	}

	if cfg.List {
		jobs := make([]*pipeline.Job, 0, len(p.Jobs))
		for _, j := range p.Jobs {
			jobs = append(jobs, j)
		}
		return report.WriteJobs(a.outW, jobs, cfg.ListFormat)
	}

	jobs, edges, err := a.selectGraph(p)
	if err != nil {
		return err
	}

	styles, err := a.loadStyles(ctx)
	if err != nil {
		return err
	}

	markup := mermaid.Render(jobs, edges, p, styles)
	a.logger.Debug("Diagram rendered.", "jobs", len(jobs), "edges", len(edges))

	if !cfg.Force {
		for _, path := range []string{cfg.MermaidPath(), cfg.HTMLPath()} {
			if fsutil.Exists(a.fs, path) {
				fmt.Fprintf(a.errW, "%s already exists, use --force to overwrite\n", color.Yellow.Sprint(path))
				return nil
			}
		}
	}

	if err := a.writeArtifacts(markup, viewer.BuildJobInfo(jobs, p)); err != nil {
		return err
	}

	a.openViewers(markup)

	a.logger.Debug("App.Run method finished.")
	return nil
}

// selectGraph returns the focus subgraph, or the full graph when no focus
// job is configured.
func (a *App) selectGraph(p *pipeline.Pipeline) (dag.NodeSet, dag.EdgeSet, error) {
	g := p.Graph()
	if err := g.DetectCycles(); err != nil {
		a.logger.Warn("Pipeline graph is not acyclic.", "error", err)
	}

	if a.config.Job == "" {
		jobs, edges := g.Full()
		return jobs, edges, nil
	}

	name, ok := pipeline.ResolveJobName(a.config.Job, p)
	if !ok {
		return nil, nil, &JobNotFoundError{Spec: a.config.Job, Available: p.Names()}
	}
	a.logger.Info("Focus job resolved.",
		"spec", a.config.Job,
		"job", name,
		"upstream", a.config.Upstream,
		"downstream", a.config.Downstream,
	)

	jobs, edges := g.Subgraph(name, a.config.Upstream, a.config.Downstream)
	return jobs, edges, nil
}

func (a *App) loadStyles(ctx context.Context) (*config.Styles, error) {
	if a.config.StylesPath == "" {
		return config.DefaultStyles(), nil
	}
	model, err := a.loader.Load(ctx, a.config.StylesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load styles: %w", err)
	}
	return model.Styles, nil
}

func (a *App) writeArtifacts(markup string, info map[string]viewer.JobInfo) error {
	cfg := a.config

	if err := a.fs.MkdirAll(filepath.Dir(cfg.OutputBase), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	mmdPath := cfg.MermaidPath()
	if err := afero.WriteFile(a.fs, mmdPath, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", mmdPath, err)
	}
	a.wrote(mmdPath)

	title := pageTitle
	if cfg.Job != "" {
		title = pageTitle + " - " + cfg.Job
	}

	htmlPath := cfg.HTMLPath()
	f, err := a.fs.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", htmlPath, err)
	}
	if err := viewer.WritePage(f, viewer.Page{Title: title, Markup: markup, JobInfo: info}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", htmlPath, err)
	}
	a.wrote(htmlPath)

	return nil
}

func (a *App) wrote(path string) {
	fmt.Fprintf(a.errW, "%s %s\n", color.Green.Sprint("Wrote"), path)
}

// openViewers opens the requested online viewers. Failures are reported but
// never fail the run since the artifacts are already written.
func (a *App) openViewers(markup string) {
	targets := []struct {
		enabled bool
		name    string
		build   func(string) (string, error)
	}{
		{a.config.MermaidLive, "mermaid.live", viewer.LiveURL},
		{a.config.MermaidInk, "mermaid.ink", viewer.InkURL},
	}

	for _, t := range targets {
		if !t.enabled {
			continue
		}
		url, err := t.build(markup)
		if err != nil {
			a.logger.Warn("Could not build viewer URL.", "viewer", t.name, "error", err)
			continue
		}
		fmt.Fprintf(a.errW, "%s %s\n", color.Cyan.Sprint(t.name), url)
		if err := a.open(url); err != nil {
			a.logger.Warn("Could not open browser.", "viewer", t.name, "error", err)
		}
	}
}
