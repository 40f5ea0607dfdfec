package http

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"go.uber.org/atomic"
)

const (
	ReloadPath   = "/__plusfiles/reload"
	reloadMarker = "__plusfiles_reload"
)

const reloadScriptSource = `(function () {
  if (window.__plusfiles_reload) return;
  window.__plusfiles_reload = true;
  var source = new EventSource(%q);
  source.addEventListener("reload", function () { window.location.reload(); });
})();`

// ReloadHub fans a full-reload signal out to every connected browser.
type ReloadHub struct {
	mu         sync.Mutex
	subs       map[chan uint64]struct{}
	generation atomic.Uint64
}

func NewReloadHub() *ReloadHub {
	return &ReloadHub{
		subs: map[chan uint64]struct{}{},
	}
}

func (h *ReloadHub) subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *ReloadHub) unsubscribe(ch chan uint64) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

// Notify signals every subscriber. Slow subscribers that still hold an
// undelivered signal are skipped.
func (h *ReloadHub) Notify() {
	gen := h.generation.Inc()
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- gen:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *ReloadHub) Generation() uint64 {
	return h.generation.Load()
}

func (h *ReloadHub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *ReloadHub) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	fmt.Fprintf(w, "event: ready\ndata: %d\n\n", h.Generation())
	flusher.Flush()

	for {
		select {
		case <-req.Context().Done():
			return
		case gen := <-ch:
			fmt.Fprintf(w, "event: reload\ndata: %d\n\n", gen)
			flusher.Flush()
		}
	}
}

// ReloadClientTransform returns a template transform that injects the reload
// client, connecting to the hub mounted under base.
func ReloadClientTransform(base string) func(url string, html string) string {
	endpoint := strings.TrimSuffix(core.NormalizeBase(base), "/") + ReloadPath
	script := "<script>" + fmt.Sprintf(reloadScriptSource, endpoint) + "</script>"

	return func(_ string, html string) string {
		if strings.Contains(html, reloadMarker) {
			return html
		}
		return core.InjectBeforeBodyClose(html, script)
	}
}
