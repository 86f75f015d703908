package httpserver

import (
	"net/http"
)

// RegisterStaticRoutes mounts:
// - /web/* -> board UI assets
// - /      -> redirect to /web/
func RegisterStaticRoutes(mux *http.ServeMux, webDir string) {
	if mux == nil {
		return
	}
	if webDir == "" {
		webDir = "."
	}

	mux.Handle("/web/", http.StripPrefix("/web/", http.FileServer(http.Dir(webDir))))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/", "/web":
			http.Redirect(w, r, "/web/", http.StatusFound)
		default:
			http.NotFound(w, r)
		}
	})
}
