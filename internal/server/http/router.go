package httpserver

import "net/http"

// NewRouter 把 /api/* 交给 Handler，其余走静态页面
func NewRouter(h *Handler, webDir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", h)
	RegisterStaticRoutes(mux, webDir)
	return mux
}
