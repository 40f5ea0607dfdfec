package pages

import (
	"context"
	"fmt"

	"github.com/3-lines-studio/plusfiles/internal/core"
)

type Loader interface {
	Load(ctx context.Context, id core.PageID) (core.PageBundle, error)
}

// CachedLoader holds one bundle per known page, resolved once. The map is
// never written after construction.
type CachedLoader struct {
	bundles map[core.PageID]core.PageBundle
}

// NewCachedLoader resolves every known page through inner. Any failure aborts
// construction so a broken build is caught at startup.
func NewCachedLoader(ctx context.Context, inner Loader) (*CachedLoader, error) {
	bundles := make(map[core.PageID]core.PageBundle)
	for _, id := range core.KnownPages() {
		bundle, err := inner.Load(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("preload page %q: %w", id, err)
		}
		bundles[id] = bundle
	}
	return &CachedLoader{bundles: bundles}, nil
}

func (l *CachedLoader) Load(_ context.Context, id core.PageID) (core.PageBundle, error) {
	bundle, ok := l.bundles[id]
	if !ok {
		return core.PageBundle{}, fmt.Errorf("%w: %q", core.ErrPageNotFound, id)
	}
	return bundle, nil
}
