package http

import (
	"bytes"
	"io"
	iofs "io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/adapters/fs"
	"github.com/3-lines-studio/plusfiles/internal/core"
)

// AssetHandler serves regular files from dir in fsys for requests under
// prefix. Anything it cannot serve falls through to next, so the page
// handler stays the catch-all.
type AssetHandler struct {
	fsys   iofs.FS
	dir    string
	prefix string
	next   http.Handler
}

func NewAssetHandler(fsys iofs.FS, dir string, prefix string, next http.Handler) http.Handler {
	return &AssetHandler{
		fsys:   fsys,
		dir:    dir,
		prefix: prefix,
		next:   next,
	}
}

func (h *AssetHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		h.next.ServeHTTP(w, req)
		return
	}

	name, ok := h.resolve(req.URL.Path)
	if !ok {
		h.next.ServeHTTP(w, req)
		return
	}

	exists, err := fs.LookupFile(h.fsys, name)
	if err != nil || !exists {
		h.next.ServeHTTP(w, req)
		return
	}

	h.serveFile(w, req, name)
}

func (h *AssetHandler) resolve(urlPath string) (string, bool) {
	rel, ok := strings.CutPrefix(urlPath, h.prefix)
	if !ok || rel == "" {
		return "", false
	}

	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == core.ShellTemplate {
		return "", false
	}

	name := path.Join(h.dir, rel)
	if !iofs.ValidPath(name) {
		return "", false
	}
	return name, true
}

func (h *AssetHandler) serveFile(w http.ResponseWriter, req *http.Request, name string) {
	file, err := h.fsys.Open(name)
	if err != nil {
		http.NotFound(w, req)
		return
	}
	defer func() { _ = file.Close() }()

	w.Header().Set("Content-Type", core.ContentType(name))

	modTime := time.Time{}
	if info, err := file.Stat(); err == nil {
		modTime = info.ModTime()
	}

	if seeker, ok := file.(io.ReadSeeker); ok {
		http.ServeContent(w, req, path.Base(name), modTime, seeker)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read asset", http.StatusInternalServerError)
		return
	}
	http.ServeContent(w, req, path.Base(name), modTime, bytes.NewReader(data))
}
