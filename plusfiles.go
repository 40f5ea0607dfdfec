package plusfiles

import (
	"context"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/3-lines-studio/plusfiles/internal/adapters"
	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	httpadapter "github.com/3-lines-studio/plusfiles/internal/adapters/http"
	"github.com/3-lines-studio/plusfiles/internal/adapters/pages"
	"github.com/3-lines-studio/plusfiles/internal/adapters/watch"
	"github.com/3-lines-studio/plusfiles/internal/config"
	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/3-lines-studio/plusfiles/internal/logging"
	"github.com/3-lines-studio/plusfiles/internal/metrics"
	"github.com/3-lines-studio/plusfiles/internal/usecase"
)

type (
	Mode       = core.Mode
	PageID     = core.PageID
	PageBundle = core.PageBundle
	RenderFunc = core.RenderFunc
)

const (
	ModeDev  = core.ModeDev
	ModeProd = core.ModeProd

	PageIndex    = core.PageIndex
	PageAbout    = core.PageAbout
	PageUser     = core.PageUser
	PageNotFound = core.PageNotFound
)

var (
	ErrPageNotFound    = core.ErrPageNotFound
	ErrPageUnitMissing = core.ErrPageUnitMissing
	ErrTemplateMissing = core.ErrTemplateMissing
)

type Option func(*options)

type options struct {
	mode    *core.Mode
	base    string
	root    string
	fsys    iofs.FS
	logger  *slog.Logger
	pages   map[core.PageID]core.PageBundle
	watch   bool
	metrics bool
}

// WithMode overrides NODE_ENV detection.
func WithMode(mode Mode) Option {
	return func(o *options) { o.mode = &mode }
}

func WithBase(base string) Option {
	return func(o *options) { o.base = base }
}

// WithRoot serves the project in dir from disk.
func WithRoot(dir string) Option {
	return func(o *options) { o.root = dir }
}

// WithFS serves the project from fsys. The plus-file watcher is not started
// for an fs.FS.
func WithFS(fsys iofs.FS) Option {
	return func(o *options) { o.fsys = fsys }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPage registers a Go-defined bundle for id. It takes precedence over the
// plus files of that page.
func WithPage(id PageID, bundle PageBundle) Option {
	return func(o *options) { o.pages[id] = bundle }
}

func WithoutWatcher() Option {
	return func(o *options) { o.watch = false }
}

func WithoutMetrics() Option {
	return func(o *options) { o.metrics = false }
}

type App struct {
	mode       core.Mode
	base       string
	logger     *slog.Logger
	handler    http.Handler
	dispatcher *usecase.Dispatcher
	hub        *httpadapter.ReloadHub
	metrics    *metrics.Metrics
	watcher    *watch.Watcher
	cancel     context.CancelFunc
	stopOnce   sync.Once
}

// New assembles the server. In prod every page and the built shell template
// are loaded up front, so a broken build fails here instead of on a request.
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := options{
		root:    ".",
		base:    config.DefaultBase,
		pages:   map[core.PageID]core.PageBundle{},
		watch:   true,
		metrics: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := core.ValidateBase(o.base); err != nil {
		return nil, fmt.Errorf("plusfiles: %w", err)
	}
	for id := range o.pages {
		if !core.IsKnownPage(id) {
			return nil, fmt.Errorf("plusfiles: %w: %q", core.ErrPageNotFound, id)
		}
	}

	mode := config.DetectMode(os.Getenv)
	if o.mode != nil {
		mode = *o.mode
	}
	if o.logger == nil {
		o.logger = logging.New(slog.LevelInfo)
	}

	fsys := o.fsys
	fromDisk := fsys == nil
	if fromDisk {
		fsys = fs.NewOSFileSystem(o.root).FS()
	}

	app := &App{
		mode:   mode,
		base:   core.NormalizeBase(o.base),
		logger: o.logger,
	}

	var (
		source usecase.ConfigSource
		loader usecase.PageLoader
	)

	switch mode {
	case core.ModeProd:
		manifest, err := readManifest(fsys)
		if err != nil {
			return nil, err
		}

		cached, err := pages.NewCachedLoader(ctx, pages.NewOverlayLoader(o.pages, pages.NewFSLoader(fsys, pages.Options{
			Mode:     core.ModeProd,
			Base:     app.base,
			Manifest: manifest,
		})))
		if err != nil {
			return nil, fmt.Errorf("plusfiles: preload pages: %w", err)
		}
		loader = cached

		tmpl, err := adapters.NewCachedTemplateSource(fsys)
		if err != nil {
			return nil, fmt.Errorf("plusfiles: %w", err)
		}
		source = tmpl

	default:
		app.hub = httpadapter.NewReloadHub()
		loader = pages.NewOverlayLoader(o.pages, pages.NewFSLoader(fsys, pages.Options{
			Mode: core.ModeDev,
			Base: app.base,
		}))
		source = adapters.NewLiveTemplateSource(fsys, httpadapter.ReloadClientTransform(app.base))

		if fromDisk && o.watch {
			w, err := watch.New(filepath.Join(o.root, core.SourceDir), app.hub, o.logger)
			if err != nil {
				return nil, fmt.Errorf("plusfiles: %w", err)
			}
			app.watcher = w
		}
	}

	var observer usecase.Observer
	var metricsHandler http.Handler
	if o.metrics {
		app.metrics = metrics.New()
		observer = app.metrics
		metricsHandler = app.metrics.Handler()
	}

	app.dispatcher = usecase.NewDispatcher(source, loader, usecase.DispatcherOptions{
		Base:     app.base,
		IsDev:    mode == core.ModeDev,
		Logger:   o.logger,
		Observer: observer,
	})

	routerOpts := httpadapter.RouterOptions{
		Base:    app.base,
		IsDev:   mode == core.ModeDev,
		Assets:  fsys,
		Metrics: metricsHandler,
		Logger:  o.logger,
	}
	if app.hub != nil {
		routerOpts.Reload = app.hub
	}
	app.handler = httpadapter.NewRouter(httpadapter.NewPageHandler(app.dispatcher), routerOpts)

	if app.watcher != nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		app.cancel = cancel
		go app.watcher.Run(watchCtx)
	}

	o.logger.Debug("plusfiles ready", "mode", mode.String(), "base", app.base)
	return app, nil
}

func readManifest(fsys iofs.FS) (*core.Manifest, error) {
	data, ok, err := fs.Lookup(fsys, core.ManifestPath())
	if err != nil {
		return nil, fmt.Errorf("plusfiles: read manifest: %w", err)
	}
	if !ok {
		return nil, nil
	}
	manifest, err := core.ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("plusfiles: parse manifest: %w", err)
	}
	return manifest, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

func (a *App) Mode() Mode {
	return a.mode
}

// Reload pushes a full-page reload to connected dev browsers. It is a no-op
// in prod.
func (a *App) Reload() {
	if a.hub != nil {
		a.hub.Notify()
	}
}

// Stop shuts the watcher down. It is safe to call more than once.
func (a *App) Stop() error {
	var err error
	a.stopOnce.Do(func() {
		if a.watcher == nil {
			return
		}
		a.cancel()
		<-a.watcher.Done()
		err = a.watcher.Close()
	})
	return err
}
