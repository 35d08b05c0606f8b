package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/relionviz/internal/report"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	StarPath string // pipeline STAR file

	Job        string // focus job spec, empty for the whole pipeline
	Upstream   bool
	Downstream bool

	OutputBase string // artifact path without extension
	Force      bool
	ProjectDir string
	NoEnrich   bool
	StylesPath string // optional HCL palette overrides

	List       bool
	ListFormat string

	MermaidLive bool
	MermaidInk  bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and fills in the values derived from the STAR
// file location.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.StarPath == "" {
		return nil, errors.New("StarPath is a required configuration field and cannot be empty")
	}

	starDir := filepath.Dir(cfg.StarPath)
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = starDir
	}

	if cfg.OutputBase == "" {
		cfg.OutputBase = filepath.Join(starDir, "pipeline")
	}
	cfg.OutputBase = trimArtifactExt(cfg.OutputBase)

	if cfg.Job != "" && !cfg.Upstream && !cfg.Downstream {
		cfg.Upstream = true
	}

	if cfg.ListFormat == "" {
		cfg.ListFormat = report.FormatTable
	}
	if !validFormat(cfg.ListFormat) {
		return nil, fmt.Errorf("invalid list format %q: must be one of %s", cfg.ListFormat, strings.Join(report.Formats, ", "))
	}

	return &cfg, nil
}

// MermaidPath is where the diagram markup is written.
func (c *Config) MermaidPath() string {
	return c.OutputBase + ".mmd"
}

// HTMLPath is where the viewer page is written.
func (c *Config) HTMLPath() string {
	return c.OutputBase + ".html"
}

func trimArtifactExt(base string) string {
	switch strings.ToLower(filepath.Ext(base)) {
	case ".mmd", ".html":
		return strings.TrimSuffix(base, filepath.Ext(base))
	}
	return base
}

func validFormat(format string) bool {
	for _, f := range report.Formats {
		if f == format {
			return true
		}
	}
	return false
}
