package adapters

import (
	"context"
	"fmt"
	iofs "io/fs"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/3-lines-studio/plusfiles/internal/usecase"
)

// TransformFunc rewrites the shell template before it is used, the way a dev
// server injects its client.
type TransformFunc func(url string, html string) string

// LiveTemplateSource re-reads index.html from the project root on every
// request and runs it through the dev transform.
type LiveTemplateSource struct {
	fsys      iofs.FS
	transform TransformFunc
}

func NewLiveTemplateSource(fsys iofs.FS, transform TransformFunc) *LiveTemplateSource {
	return &LiveTemplateSource{fsys: fsys, transform: transform}
}

func (s *LiveTemplateSource) Load(ctx context.Context, url string) (usecase.ServerConfig, error) {
	if err := ctx.Err(); err != nil {
		return usecase.ServerConfig{}, err
	}

	template, err := readTemplate(s.fsys, core.TemplatePath(core.ModeDev))
	if err != nil {
		return usecase.ServerConfig{}, err
	}

	if s.transform != nil {
		template = s.transform(url, template)
	}

	return usecase.ServerConfig{Template: template, Routing: core.Route}, nil
}

// CachedTemplateSource holds the built shell template read once at startup.
type CachedTemplateSource struct {
	config usecase.ServerConfig
}

func NewCachedTemplateSource(fsys iofs.FS) (*CachedTemplateSource, error) {
	template, err := readTemplate(fsys, core.TemplatePath(core.ModeProd))
	if err != nil {
		return nil, err
	}
	return &CachedTemplateSource{
		config: usecase.ServerConfig{Template: template, Routing: core.Route},
	}, nil
}

func (s *CachedTemplateSource) Load(context.Context, string) (usecase.ServerConfig, error) {
	return s.config, nil
}

func readTemplate(fsys iofs.FS, path string) (string, error) {
	data, ok, err := fs.Lookup(fsys, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: %s", core.ErrTemplateMissing, path)
	}
	return string(data), nil
}
