package pages

import (
	"context"

	"github.com/3-lines-studio/plusfiles/internal/core"
)

// OverlayLoader serves pages defined in Go ahead of a fallback loader.
type OverlayLoader struct {
	pages    map[core.PageID]core.PageBundle
	fallback Loader
}

func NewOverlayLoader(pages map[core.PageID]core.PageBundle, fallback Loader) *OverlayLoader {
	copied := make(map[core.PageID]core.PageBundle, len(pages))
	for id, bundle := range pages {
		copied[id] = bundle
	}
	return &OverlayLoader{pages: copied, fallback: fallback}
}

func (l *OverlayLoader) Load(ctx context.Context, id core.PageID) (core.PageBundle, error) {
	if bundle, ok := l.pages[id]; ok {
		return bundle, nil
	}
	return l.fallback.Load(ctx, id)
}
