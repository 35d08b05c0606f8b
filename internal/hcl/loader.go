package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/relionviz/internal/config"
	"github.com/specialistvlad/relionviz/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a new HCL configuration loader reading from afs.
func NewLoader(afs afero.Fs) *Loader {
	return &Loader{fs: afs}
}

// fileRoot is a struct used to decode all possible top-level content of a
// style file.
type fileRoot struct {
	ReplaceDefaults *bool         `hcl:"replace_defaults,optional"`
	Vars            *varsBlock    `hcl:"vars,block"`
	TypeStyles      []*styleBlock `hcl:"type_style,block"`
	StatusStyles    []*styleBlock `hcl:"status_style,block"`
}

type varsBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type styleBlock struct {
	Key   string         `hcl:"key,label"`
	Style hcl.Expression `hcl:"style"`
}

// Load parses each file in order and applies it on top of the built-in
// palette. A file setting replace_defaults discards everything collected
// before it.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	model := config.DefaultModel()
	parser := hclparse.NewParser()

	for _, path := range paths {
		src, err := afero.ReadFile(l.fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read style file %s: %w", path, err)
		}

		hclFile, diags := parser.ParseHCL(src, path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
		}

		if err := l.apply(ctx, model.Styles, &root, path); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loader finished.",
		"type_styles", len(model.Styles.Types),
		"status_styles", len(model.Styles.Statuses),
	)
	return model, nil
}

func (l *Loader) apply(ctx context.Context, styles *config.Styles, root *fileRoot, path string) error {
	logger := ctxlog.FromContext(ctx).With("file", path)

	if root.ReplaceDefaults != nil && *root.ReplaceDefaults {
		logger.Debug("Discarding previously collected styles.")
		styles.Types = nil
		styles.Statuses = nil
	}

	evalCtx, err := buildEvalContext(root.Vars)
	if err != nil {
		return fmt.Errorf("invalid vars in %s: %w", path, err)
	}

	for _, b := range root.TypeStyles {
		style, err := evalStyle(b, evalCtx)
		if err != nil {
			return fmt.Errorf("type_style %q in %s: %w", b.Key, path, err)
		}
		styles.SetType(b.Key, style)
	}
	for _, b := range root.StatusStyles {
		style, err := evalStyle(b, evalCtx)
		if err != nil {
			return fmt.Errorf("status_style %q in %s: %w", b.Key, path, err)
		}
		styles.SetStatus(b.Key, style)
	}

	logger.Debug("Applied style file.", "type_styles", len(root.TypeStyles), "status_styles", len(root.StatusStyles))
	return nil
}

// buildEvalContext evaluates the vars block and exposes the result as `var`.
func buildEvalContext(vars *varsBlock) (*hcl.EvalContext, error) {
	values := map[string]cty.Value{}
	if vars != nil {
		attrs, diags := vars.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		for name, attr := range attrs {
			val, diags := attr.Expr.Value(nil)
			if diags.HasErrors() {
				return nil, diags
			}
			values[name] = val
		}
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(values),
		},
	}, nil
}

func evalStyle(b *styleBlock, evalCtx *hcl.EvalContext) (string, error) {
	val, diags := b.Style.Value(evalCtx)
	if diags.HasErrors() {
		return "", diags
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("style must be a string: %w", err)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("style must not be null")
	}
	return val.AsString(), nil
}
