package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/relionviz/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `relionviz converts a RELION pipeline STAR file into a Mermaid diagram
(.mmd) and a standalone HTML viewer with per-job tooltips.

Without --job the whole pipeline is drawn. With --job the diagram is limited
to the job's ancestors (--upstream, the default), its descendants
(--downstream) or both.`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		cfg       app.Config
		ran       bool
		printHelp bool
	)

	cmd := &cobra.Command{
		Use:           "relionviz [flags] PIPELINE_STAR",
		Short:         "Visualize a RELION pipeline STAR file as a Mermaid diagram.",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			if len(args) == 0 {
				printHelp = true
				return nil
			}
			cfg.StarPath = args[0]
			return nil
		},
	}
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Job, "job", "j", "", "Focus on a job: full name, number (58) or token (job058).")
	flags.BoolVar(&cfg.Upstream, "upstream", false, "Include the focus job's ancestors (default when --job is given).")
	flags.BoolVar(&cfg.Downstream, "downstream", false, "Include the focus job's descendants.")
	flags.StringVarP(&cfg.OutputBase, "output", "o", "", "Output base path; .mmd and .html are written (default: pipeline next to the STAR file).")
	flags.BoolVarP(&cfg.Force, "force", "f", false, "Overwrite existing output files.")
	flags.StringVar(&cfg.ProjectDir, "project-dir", "", "RELION project directory holding the job folders (default: the STAR file's directory).")
	flags.BoolVar(&cfg.NoEnrich, "no-enrich", false, "Skip reading commands and model statistics from job folders.")
	flags.StringVar(&cfg.StylesPath, "styles", "", "HCL file overriding the diagram colours.")
	flags.BoolVar(&cfg.List, "list", false, "Print the pipeline's jobs and exit.")
	flags.StringVar(&cfg.ListFormat, "format", "table", "Format of --list output. Options: 'table', 'json' or 'yaml'.")
	flags.BoolVar(&cfg.MermaidLive, "mermaid-live", false, "Open the diagram in the mermaid.live editor.")
	flags.BoolVar(&cfg.MermaidInk, "mermaid-ink", false, "Open the diagram as an image on mermaid.ink.")
	logFormatFlag := flags.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flags.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		slog.Debug("Help requested, exiting.")
		return nil, true, nil
	}
	if printHelp {
		slog.Debug("No pipeline path provided, printing usage and exiting.")
		_ = cmd.Usage()
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.", "star_path", cfg.StarPath)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg.LogFormat = logFormat
	cfg.LogLevel = logLevel
	cfg.ListFormat = strings.ToLower(cfg.ListFormat)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
