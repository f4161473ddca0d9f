package http

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NewSPAHandler отдаёт собранную админку: существующие файлы — как есть,
// любой страничный путь — index.html (клиентский роутинг SPA).
// Пустой dir — текстовая заглушка, чтобы шлюз был работоспособен без фронта.
func NewSPAHandler(dir string) http.Handler {
	if dir == "" {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte("admin-gateway: static dir is not configured\n"))
		})
	}

	fs := http.FileServer(http.Dir(dir))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Защита от выхода за пределы каталога.
		clean := path.Clean(r.URL.Path)
		if strings.Contains(clean, "..") {
			http.NotFound(w, r)
			return
		}

		full := filepath.Join(dir, filepath.FromSlash(clean))
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			fs.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	})
}
