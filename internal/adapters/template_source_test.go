package adapters

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveTemplateSource(t *testing.T) {
	ctx := context.Background()
	tree := fstest.MapFS{
		"index.html": {Data: []byte("<body><!--app-html--></body>")},
	}

	var seenURL string
	source := NewLiveTemplateSource(tree, func(url, html string) string {
		seenURL = url
		return core.InjectBeforeBodyClose(html, "<script>dev</script>")
	})

	config, err := source.Load(ctx, "user/7")
	require.NoError(t, err)
	assert.Equal(t, "<body><!--app-html--><script>dev</script></body>", config.Template)
	assert.Equal(t, "user/7", seenURL)
	assert.Equal(t, core.PageUser, config.Routing("user/7").PageID)

	tree["index.html"] = &fstest.MapFile{Data: []byte("<body>edited</body>")}

	config, err = source.Load(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, config.Template, "edited")
}

func TestLiveTemplateSourceMissing(t *testing.T) {
	source := NewLiveTemplateSource(fstest.MapFS{}, nil)

	_, err := source.Load(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrTemplateMissing)
}

func TestCachedTemplateSource(t *testing.T) {
	tree := fstest.MapFS{
		"index.html":             {Data: []byte("source")},
		"dist/client/index.html": {Data: []byte("built")},
	}

	source, err := NewCachedTemplateSource(tree)
	require.NoError(t, err)

	tree["dist/client/index.html"] = &fstest.MapFile{Data: []byte("changed")}

	config, err := source.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "built", config.Template)
	assert.NotNil(t, config.Routing)

	_, err = NewCachedTemplateSource(fstest.MapFS{})
	assert.ErrorIs(t, err, core.ErrTemplateMissing)
}
