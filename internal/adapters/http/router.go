package http

import (
	iofs "io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	publicDir        = "public"
	compressionLevel = 5

	// MetricsPath is mounted under the base path. It shadows GET of a page at
	// the same URL.
	MetricsPath = "metrics"
)

type RouterOptions struct {
	Base  string
	IsDev bool
	// Assets is the project root; dev serves src/ and public/ from it, prod
	// serves dist/client.
	Assets iofs.FS
	// Reload is mounted only when set.
	Reload  http.Handler
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewRouter mounts the asset handlers in front of the catch-all page handler.
func NewRouter(pages http.Handler, opts RouterOptions) http.Handler {
	base := core.NormalizeBase(opts.Base)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(RequestLogger(opts.Logger))
	}
	if !opts.IsDev {
		r.Use(middleware.Compress(compressionLevel))
	}

	if opts.Metrics != nil {
		r.Method(http.MethodGet, base+MetricsPath, opts.Metrics)
	}
	if opts.Reload != nil {
		r.Method(http.MethodGet, strings.TrimSuffix(base, "/")+ReloadPath, opts.Reload)
	}

	handler := pages
	if opts.Assets != nil {
		if opts.IsDev {
			handler = NewAssetHandler(opts.Assets, publicDir, base, handler)
			handler = NewAssetHandler(opts.Assets, core.SourceDir, base+core.SourceDir+"/", handler)
		} else {
			handler = NewAssetHandler(opts.Assets, core.ClientDir(), base, handler)
		}
	}

	r.Handle("/*", handler)

	return r
}

// RequestLogger logs one line per request through logger.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

			next.ServeHTTP(ww, req)

			logger.Debug("request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(req.Context()),
			)
		})
	}
}
