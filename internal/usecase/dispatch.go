package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/google/uuid"
)

type Response struct {
	Status int
	Header http.Header
	Body   string
	// PageID is empty when the request failed before routing.
	PageID core.PageID
}

type DispatcherOptions struct {
	Base     string
	IsDev    bool
	Logger   *slog.Logger
	Observer Observer
}

// Dispatcher turns a request path into a complete response. It never returns
// a partially rendered page: any failure yields a 500.
type Dispatcher struct {
	config   ConfigSource
	pages    PageLoader
	base     string
	isDev    bool
	logger   *slog.Logger
	observer Observer
}

func NewDispatcher(config ConfigSource, pages PageLoader, opts DispatcherOptions) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	return &Dispatcher{
		config:   config,
		pages:    pages,
		base:     core.NormalizeBase(opts.Base),
		isDev:    opts.IsDev,
		logger:   opts.Logger,
		observer: opts.Observer,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, requestPath string) (resp Response) {
	start := time.Now()
	var page core.PageID

	defer func() {
		if r := recover(); r != nil {
			resp = d.failure(requestPath, page, &core.PanicError{Value: r, Stack: debug.Stack()})
		}
		d.observer.ObserveRequest(page, resp.Status, time.Since(start))
	}()

	body, err := d.render(ctx, requestPath, &page)
	if err != nil {
		return d.failure(requestPath, page, err)
	}

	header := make(http.Header)
	header.Set("Content-Type", "text/html; charset=utf-8")

	return Response{
		Status: http.StatusOK,
		Header: header,
		Body:   body,
		PageID: page,
	}
}

func (d *Dispatcher) render(ctx context.Context, requestPath string, page *core.PageID) (string, error) {
	url := core.StripBase(requestPath, d.base)

	config, err := d.config.Load(ctx, url)
	if err != nil {
		return "", fmt.Errorf("load server config: %w", err)
	}
	if config.Routing == nil {
		return "", fmt.Errorf("load server config: no routing function")
	}

	route := config.Routing(url)
	*page = route.PageID

	bundle, err := d.pages.Load(ctx, route.PageID)
	if err != nil {
		return "", fmt.Errorf("resolve page %q: %w", route.PageID, err)
	}

	fragments, err := core.Render(route.PageID, bundle, route.DataFromURL)
	if err != nil {
		return "", err
	}

	return core.Compose(config.Template, fragments), nil
}

func (d *Dispatcher) failure(requestPath string, page core.PageID, err error) Response {
	errorID := uuid.NewString()

	d.logger.Error("request failed",
		"error_id", errorID,
		"path", requestPath,
		"page", string(page),
		"error", err,
	)

	data := core.ErrorData{
		ErrorID: errorID,
		Message: err.Error(),
		IsDev:   d.isDev,
	}

	var panicErr *core.PanicError
	if errors.As(err, &panicErr) {
		data.Stack = string(panicErr.Stack)
	}

	header := make(http.Header)
	header.Set("Content-Type", "text/html; charset=utf-8")
	header.Set("Cache-Control", "no-store")

	var buf bytes.Buffer
	var body string
	if tmplErr := core.ErrorTemplate.Execute(&buf, data); tmplErr != nil {
		body = "<!doctype html><html><body><pre>" + html.EscapeString(data.Message) + "</pre></body></html>"
	} else {
		body = buf.String()
	}

	return Response{
		Status: http.StatusInternalServerError,
		Header: header,
		Body:   body,
		PageID: page,
	}
}
