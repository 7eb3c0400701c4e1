package api

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientFallback serves the built web client from dir. Paths that are not files get
// index.html so client-side routes work on reload. Unknown API paths stay JSON 404s.
func clientFallback(dir string) gin.HandlerFunc {
	files := http.Dir(dir)
	index := filepath.Join(dir, "index.html")

	return func(c *gin.Context) {
		p := path.Clean("/" + c.Request.URL.Path)
		if p == "/api" || strings.HasPrefix(p, "/api/") || c.Request.Method != http.MethodGet {
			abortWithError(c, http.StatusNotFound, "Not found")
			return
		}

		if f, err := files.Open(p); err == nil {
			stat, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !stat.IsDir() {
				c.FileFromFS(p, files)
				return
			}
		}
		if _, err := os.Stat(index); err != nil {
			abortWithError(c, http.StatusNotFound, "Not found")
			return
		}
		c.File(index)
	}
}
