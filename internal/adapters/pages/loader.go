package pages

import (
	"context"
	"fmt"
	iofs "io/fs"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/core"
)

type Options struct {
	Mode core.Mode
	// Base is the URL prefix hydration script paths are served under.
	Base string
	// Manifest, when set, supplies cache-busting versions for hydration
	// scripts.
	Manifest *core.Manifest
}

// FSLoader resolves page bundles from plus files in fsys. Every call re-reads
// and re-parses the units, so edits are picked up without a restart.
type FSLoader struct {
	fsys iofs.FS
	opts Options
}

func NewFSLoader(fsys iofs.FS, opts Options) *FSLoader {
	opts.Base = core.NormalizeBase(opts.Base)
	return &FSLoader{fsys: fsys, opts: opts}
}

func (l *FSLoader) Load(ctx context.Context, id core.PageID) (core.PageBundle, error) {
	if err := ctx.Err(); err != nil {
		return core.PageBundle{}, err
	}

	if !core.IsKnownPage(id) {
		return core.PageBundle{}, fmt.Errorf("%w: %q", core.ErrPageNotFound, id)
	}

	paths := core.PagePathsFor(id, l.opts.Mode)

	render, err := l.pageUnit(paths)
	if err != nil {
		return core.PageBundle{}, fmt.Errorf("load page %q: %w", id, err)
	}

	head, err := l.headUnit(paths)
	if err != nil {
		return core.PageBundle{}, fmt.Errorf("load head of page %q: %w", id, err)
	}

	scriptPath, err := l.clientScript(id, paths)
	if err != nil {
		return core.PageBundle{}, fmt.Errorf("load client script of page %q: %w", id, err)
	}

	return core.PageBundle{
		Render:           render,
		Head:             head,
		ClientScriptPath: scriptPath,
	}, nil
}

func (l *FSLoader) pageUnit(paths core.PagePaths) (core.RenderFunc, error) {
	src, ok, err := fs.Lookup(l.fsys, paths.PageHTML)
	if err != nil {
		return nil, err
	}
	if ok {
		return CompileHTML(paths.PageHTML, src)
	}

	src, ok, err = fs.Lookup(l.fsys, paths.PageMarkdown)
	if err != nil {
		return nil, err
	}
	if ok {
		return CompileMarkdown(paths.PageMarkdown, src)
	}

	return nil, core.ErrPageUnitMissing
}

func (l *FSLoader) headUnit(paths core.PagePaths) (core.RenderFunc, error) {
	src, ok, err := fs.Lookup(l.fsys, paths.Head)
	if err != nil || !ok {
		return nil, err
	}
	return CompileHTML(paths.Head, src)
}

func (l *FSLoader) clientScript(id core.PageID, paths core.PagePaths) (string, error) {
	ok, err := fs.LookupFile(l.fsys, paths.ClientScript)
	if err != nil || !ok {
		return "", err
	}
	url := l.opts.Base + paths.ClientURL
	return core.AddCacheBust(url, l.opts.Manifest.ClientVersion(id)), nil
}
