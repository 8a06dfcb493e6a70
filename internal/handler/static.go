package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const indexFile = "index.html"

// SPAHandler serves a directory of pre-built pages. A path that names no file
// gets that directory's index.html, then the root index.html, so client-side
// routes resolve. Paths under /api are never answered with a page.
type SPAHandler struct {
	root   string
	prefix string
}

func NewSPAHandler(root, prefix string) *SPAHandler {
	return &SPAHandler{
		root:   root,
		prefix: strings.TrimSuffix(prefix, "/"),
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + strings.TrimPrefix(r.URL.Path, h.prefix))
	if p == "/api" || strings.HasPrefix(p, "/api/") {
		http.NotFound(w, r)
		return
	}

	file, ok := h.resolve(p)
	if !ok {
		http.NotFound(w, r)
		return
	}

	// ServeFile rejects raw paths containing "..", so hand it the cleaned one.
	clean := r.Clone(r.Context())
	clean.URL.Path = p
	http.ServeFile(w, clean, file)
}

func (h *SPAHandler) resolve(p string) (string, bool) {
	local := filepath.Join(h.root, filepath.FromSlash(p))
	candidates := []string{
		local,
		filepath.Join(local, indexFile),
		filepath.Join(h.root, indexFile),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// StaticFileServer serves the portal shell mounted under prefix.
func StaticFileServer(root, prefix string) http.Handler {
	return NewSPAHandler(root, prefix)
}
