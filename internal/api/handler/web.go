package handler

import (
	"net/http"
	"path/filepath"
)

// WebIndex sirve la página del formulario de registro de ventas
func WebIndex(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
	})
}
