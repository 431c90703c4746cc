package handler

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPAHandler serves the exported dashboard bundle. A route resolves to the
// file itself, then route.html, then route/index.html, and finally falls
// back to the root index.html so client-side routing can take over.
type SPAHandler struct {
	staticDir string
	basePath  string
	indexFile string
}

func NewSPAHandler(staticDir, basePath string) *SPAHandler {
	return &SPAHandler{
		staticDir: staticDir,
		basePath:  strings.TrimRight(basePath, "/"),
		indexFile: "index.html",
	}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := strings.TrimPrefix(r.URL.Path, h.basePath)
	urlPath = path.Clean("/" + urlPath)

	if urlPath == "/api" || strings.HasPrefix(urlPath, "/api/") {
		http.NotFound(w, r)
		return
	}

	for _, candidate := range h.candidates(urlPath) {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			http.ServeFile(w, r, candidate)
			return
		}
	}

	indexPath := filepath.Join(h.staticDir, h.indexFile)
	if _, err := os.Stat(indexPath); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, indexPath)
}

func (h *SPAHandler) candidates(urlPath string) []string {
	if urlPath == "/" {
		return nil
	}
	base := filepath.Join(h.staticDir, filepath.FromSlash(urlPath))
	return []string{
		base,
		base + ".html",
		filepath.Join(base, h.indexFile),
	}
}
