package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/relionviz/internal/config"
	"github.com/specialistvlad/relionviz/internal/ctxlog"
	"github.com/specialistvlad/relionviz/internal/hcl"
	"github.com/specialistvlad/relionviz/internal/viewer"
	"github.com/spf13/afero"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	fs     afero.Fs
	loader config.Loader
	open   viewer.Opener
}

// Option customizes an App.
type Option func(*App)

// WithFs replaces the filesystem the App reads from and writes to.
func WithFs(afs afero.Fs) Option {
	return func(a *App) { a.fs = afs }
}

// WithLoader replaces the style configuration loader.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithOpener replaces the way viewer URLs are opened.
func WithOpener(o viewer.Opener) Option {
	return func(a *App) { a.open = o }
}

// NewApp is the constructor for the main application. Listings go to outW;
// logs and status lines go to errW.
func NewApp(outW, errW io.Writer, appConfig *Config, opts ...Option) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)

	a := &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: appConfig,
		fs:     afero.NewOsFs(),
		open:   viewer.BrowserOpener(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.loader == nil {
		a.loader = hcl.NewLoader(a.fs)
	}

	logger.Debug("App initialized.", "star_path", appConfig.StarPath)
	return a
}

// context returns ctx carrying the App's logger.
func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
