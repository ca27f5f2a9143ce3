package handlers

import "net/http"

// Root serves the health line at / and a 404 for everything unrouted.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("University Payment API is running."))
}
