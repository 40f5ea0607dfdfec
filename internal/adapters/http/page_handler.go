package http

import (
	"context"
	"net/http"

	"github.com/3-lines-studio/plusfiles/internal/usecase"
)

type Dispatcher interface {
	Handle(ctx context.Context, requestPath string) usecase.Response
}

// PageHandler writes the dispatcher's response. The body is produced fully
// before anything reaches the client.
type PageHandler struct {
	dispatcher Dispatcher
}

func NewPageHandler(dispatcher Dispatcher) http.Handler {
	return &PageHandler{dispatcher: dispatcher}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	resp := h.dispatcher.Handle(req.Context(), req.URL.Path)

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.Status)

	if req.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(resp.Body))
}
