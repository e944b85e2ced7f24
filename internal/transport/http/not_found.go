package http

import "net/http"

// NotFoundHandler is the catch-all for paths outside the api surface,
// answering with the same JSON error envelope the rest of the handlers
// use.
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no such route")
	})
}
