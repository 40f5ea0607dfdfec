package plusfiles

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shell = `<html><head><!--app-head--></head><body><div id="app"><!--app-html--></div><!--app-body-bottom--></body></html>`

func devTree() fstest.MapFS {
	return fstest.MapFS{
		"index.html":                        {Data: []byte(shell)},
		"src/pages/index/+Page.html":        {Data: []byte("<h1>Home</h1>")},
		"src/pages/about/+Page.html":        {Data: []byte("<h1>About</h1>")},
		"src/pages/user/+Page.html":         {Data: []byte("<h1>User Page</h1><p>Showing user with ID: {{.userId}}</p>")},
		"src/pages/user/+Head.html":         {Data: []byte("<title>User {{.userId}}</title>")},
		"src/pages/user/+onRenderClient.js": {Data: []byte("console.log('user')")},
		"src/pages/not-found/+Page.html":    {Data: []byte("<h1>Not found</h1>")},
	}
}

func prodTree() fstest.MapFS {
	return fstest.MapFS{
		"dist/client/index.html":                    {Data: []byte(shell)},
		"dist/server/pages/index/+Page.html":        {Data: []byte("<h1>Home</h1>")},
		"dist/server/pages/about/+Page.md":          {Data: []byte("# About")},
		"dist/server/pages/user/+Page.html":         {Data: []byte("<p>Showing user with ID: {{.userId}}</p>")},
		"dist/server/pages/not-found/+Page.html":    {Data: []byte("<h1>Not found</h1>")},
		"dist/client/pages/user/+onRenderClient.js": {Data: []byte("console.log('user')")},
		"dist/manifest.json":                        {Data: []byte(`{"template":"dist/client/index.html","entries":{"user":{"page":"dist/server/pages/user/+Page.html","clientHash":"abcd1234","hash":"x"}}}`)},
	}
}

func newApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithLogger(logging.NewNop())}, opts...)
	app, err := New(context.Background(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	return app
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDevUserPage(t *testing.T) {
	app := newApp(t, WithMode(ModeDev), WithFS(devTree()))

	rec := get(t, app.Handler(), "/user/7")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<head><title>User 7</title></head>")
	assert.Contains(t, body, `<div id="app"><h1>User Page</h1><p>Showing user with ID: 7</p></div>`)
	assert.Contains(t, body, `<script type="module" src="/src/pages/user/+onRenderClient.js"></script>`)
	assert.Contains(t, body, "/__plusfiles/reload", "dev shell carries the reload client")
	assert.NotContains(t, body, "<!--app-html-->")
}

func TestRoutesAcrossModes(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/", "<h1>Home</h1>"},
		{"/about", "<h1>About</h1>"},
		{"/user/42", "Showing user with ID: 42"},
		{"/user/abc", "<h1>Not found</h1>"},
		{"/nope", "<h1>Not found</h1>"},
	}

	apps := map[string]*App{
		"dev":  newApp(t, WithMode(ModeDev), WithFS(devTree())),
		"prod": newApp(t, WithMode(ModeProd), WithFS(prodTree())),
	}

	for name, app := range apps {
		for _, tt := range tests {
			t.Run(name+tt.path, func(t *testing.T) {
				rec := get(t, app.Handler(), tt.path)
				assert.Equal(t, http.StatusOK, rec.Code, "unknown routes render the not-found page with 200")
				assert.Contains(t, rec.Body.String(), tt.want)
			})
		}
	}
}

func TestProdServesBuiltArtifacts(t *testing.T) {
	app := newApp(t, WithMode(ModeProd), WithFS(prodTree()), WithBase("/app"))

	rec := get(t, app.Handler(), "/app/user/7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `src="/app/pages/user/+onRenderClient.js?v=abcd1234"`)
	assert.NotContains(t, rec.Body.String(), "__plusfiles")

	rec = get(t, app.Handler(), "/app/pages/user/+onRenderClient.js")
	assert.Equal(t, "console.log('user')", rec.Body.String())
}

func TestProdFailsFastOnIncompleteBuild(t *testing.T) {
	tree := prodTree()
	delete(tree, "dist/server/pages/not-found/+Page.html")

	_, err := New(context.Background(), WithMode(ModeProd), WithFS(tree), WithLogger(logging.NewNop()))
	assert.ErrorIs(t, err, ErrPageUnitMissing)

	tree = prodTree()
	delete(tree, "dist/client/index.html")
	_, err = New(context.Background(), WithMode(ModeProd), WithFS(tree), WithLogger(logging.NewNop()))
	assert.ErrorIs(t, err, ErrTemplateMissing)
}

func TestDevReportsMissingTemplatePerRequest(t *testing.T) {
	tree := devTree()
	delete(tree, "index.html")
	app := newApp(t, WithMode(ModeDev), WithFS(tree))

	rec := get(t, app.Handler(), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "index.html")
}

func TestGoDefinedPage(t *testing.T) {
	app := newApp(t, WithMode(ModeDev), WithFS(devTree()), WithPage(PageAbout, PageBundle{
		Render: func(map[string]string) (string, error) { return "<h1>From Go</h1>", nil },
	}))

	rec := get(t, app.Handler(), "/about")
	assert.Contains(t, rec.Body.String(), "<h1>From Go</h1>")

	rec = get(t, app.Handler(), "/about/")
	assert.Contains(t, rec.Body.String(), "<h1>Not found</h1>", "trailing slash is a different route")
}

func TestPanickingPage(t *testing.T) {
	bundle := PageBundle{Render: func(map[string]string) (string, error) { panic("kaboom") }}

	dev := newApp(t, WithMode(ModeDev), WithFS(devTree()), WithPage(PageIndex, bundle))
	rec := get(t, dev.Handler(), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "kaboom")
	assert.Contains(t, rec.Body.String(), "goroutine")

	prod := newApp(t, WithMode(ModeProd), WithFS(prodTree()), WithPage(PageIndex, bundle))
	rec = get(t, prod.Handler(), "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "goroutine")
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(context.Background(), WithMode(ModeDev), WithFS(devTree()), WithBase("/a?b"))
	assert.Error(t, err)

	_, err = New(context.Background(), WithMode(ModeDev), WithFS(devTree()), WithPage("settings", PageBundle{}))
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestModeFromEnvironment(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	app := newApp(t, WithFS(prodTree()))
	assert.Equal(t, ModeProd, app.Mode())
}

func TestMetricsEndpoint(t *testing.T) {
	app := newApp(t, WithMode(ModeDev), WithFS(devTree()))
	get(t, app.Handler(), "/user/1")

	rec := get(t, app.Handler(), "/metrics")
	assert.Contains(t, rec.Body.String(), `plusfiles_requests_total{page="user",status="200"} 1`)

	noMetrics := newApp(t, WithMode(ModeDev), WithFS(devTree()), WithoutMetrics())
	rec = get(t, noMetrics.Handler(), "/metrics")
	assert.Contains(t, rec.Body.String(), "<h1>Not found</h1>")
}

func TestDevWatcherTriggersReload(t *testing.T) {
	root := t.TempDir()
	for name, file := range devTree() {
		full := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, file.Data, 0o644))
	}

	app := newApp(t, WithMode(ModeDev), WithRoot(root))
	server := httptest.NewServer(app.Handler())
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/__plusfiles/reload", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	page := filepath.Join(root, "src", "pages", "about", "+Page.html")
	require.NoError(t, os.WriteFile(page, []byte("<h1>About v2</h1>"), 0o644))

	buf := make([]byte, 256)
	var seen strings.Builder
	for !strings.Contains(seen.String(), "event: reload") {
		n, err := resp.Body.Read(buf)
		seen.Write(buf[:n])
		if err == io.EOF || ctx.Err() != nil {
			break
		}
		require.NoError(t, err)
	}
	assert.Contains(t, seen.String(), "event: reload")

	rec := get(t, app.Handler(), "/about")
	assert.Contains(t, rec.Body.String(), "<h1>About v2</h1>", "dev re-reads plus files per request")
	require.NoError(t, app.Stop())
}
